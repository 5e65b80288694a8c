package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/internal/logging"
	"github.com/gogpu/fontmap/internal/parallel"
)

// ErrNoRecognizer is returned when a Resolver has no recognizer.
var ErrNoRecognizer = errors.New("resolve: recognizer is nil")

const imageExt = ".png"

// Resolver recovers characters from glyph images.
type Resolver struct {
	rec      Recognizer
	fastPath bool
	timeout  time.Duration
	workers  int
}

// New creates a Resolver that uses rec for the slow path.
func New(rec Recognizer, opts ...Option) *Resolver {
	r := &Resolver{rec: rec, fastPath: true, workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// slowTask is one recognizer call, shared by every codepoint that is drawn
// with the same glyph and has no standard name.
type slowTask struct {
	path    string
	entries []font.Entry
	text    string
	err     error
	done    bool
}

// Resolve walks the *.png files of dir in name order and resolves every
// codepoint of m. Files whose stem is not a glyph ID of m are left over
// from another font and are skipped. Codepoints whose glyph has no image
// are recorded as StatusMissing.
//
// Only a directory read failure or a cancelled ctx yield an error; the
// result is complete in both the success and the cancelled case.
func (r *Resolver) Resolve(ctx context.Context, m *font.Mapping, dir string) (*Result, error) {
	if r.rec == nil {
		return nil, ErrNoRecognizer
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve: read image dir: %w", err)
	}

	log := logging.Logger()
	entries := make([]Entry, 0, m.Len())
	var tasks []*slowTask
	stale := 0
	for _, de := range files {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, imageExt) {
			continue
		}
		id := strings.TrimSuffix(name, imageExt)
		shared := m.ByID(id)
		if shared == nil {
			stale++
			log.Debug("resolve: skipping image not in mapping", slog.String("file", name))
			continue
		}

		task := &slowTask{path: filepath.Join(dir, name)}
		for _, e := range shared {
			if r.fastPath && HasStandardName(e.Codepoint) {
				entries = append(entries, Entry{Codepoint: e.Codepoint, ID: id, Text: string(e.Codepoint), Status: StatusNamed})
				continue
			}
			task.entries = append(task.entries, e)
		}
		if len(task.entries) > 0 {
			tasks = append(tasks, task)
		}
	}

	work := make([]func(), len(tasks))
	for i, task := range tasks {
		work[i] = func() {
			task.text, task.err = r.classify(ctx, task.path)
			task.done = true
		}
	}
	pool := parallel.NewWorkerPool(r.workers)
	pool.ExecuteAll(ctx, work)
	pool.Close()

	for _, task := range tasks {
		err := task.err
		if !task.done {
			err = ctx.Err()
		}
		for _, e := range task.entries {
			out := Entry{Codepoint: e.Codepoint, ID: e.ID, Text: task.text, Status: StatusRecognized}
			if task.text == "" {
				out.Text, out.Status, out.Err = "", StatusUnresolved, err
			}
			entries = append(entries, out)
		}
	}

	seen := make(map[rune]bool, len(entries))
	for _, e := range entries {
		seen[e.Codepoint] = true
	}
	for _, e := range m.Entries() {
		if !seen[e.Codepoint] {
			entries = append(entries, Entry{Codepoint: e.Codepoint, ID: e.ID, Status: StatusMissing})
		}
	}

	res := NewResult(entries)
	named, recognized := res.Count(StatusNamed), res.Count(StatusRecognized)
	unresolved, missing := res.Count(StatusUnresolved), res.Count(StatusMissing)
	log.Info("resolve: finished",
		slog.Int("codepoints", res.Len()),
		slog.Int("named", named),
		slog.Int("recognized", recognized),
		slog.Int("recognizer_calls", len(tasks)),
		slog.Int("stale_files", stale))
	if unresolved+missing > 0 {
		ids := make([]string, 0, unresolved+missing)
		for _, e := range res.Failed() {
			ids = append(ids, e.ID)
		}
		log.Warn("resolve: some codepoints were not resolved",
			slog.Int("unresolved", unresolved),
			slog.Int("missing", missing),
			slog.Any("ids", ids))
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// classify reads one image and runs the recognizer on it.
func (r *Resolver) classify(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from ReadDir of the image dir
	if err != nil {
		return "", fmt.Errorf("resolve: %w", err)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	text, err := r.recognize(ctx, data)
	if err != nil {
		logging.Logger().Warn("resolve: recognizer failed",
			slog.String("file", filepath.Base(path)), slog.Any("error", err))
		return "", err
	}
	return norm.NFC.String(strings.TrimSpace(text)), nil
}

// recognize calls the recognizer, turning a panic into an error so that a
// crashing engine leaves one glyph unresolved instead of ending the run.
func (r *Resolver) recognize(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("resolve: recognizer panic: %v", p)
		}
	}()
	return r.rec.Classify(ctx, data)
}
