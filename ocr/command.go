package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gogpu/fontmap/resolve"
)

// ImagePlaceholder in Command.Args is replaced by the path of a temporary
// file holding the image. Without it the image is piped to stdin.
const ImagePlaceholder = "{image}"

// ErrEmptyCommand is returned by ParseCommand for a blank command line.
var ErrEmptyCommand = errors.New("ocr: empty command")

// Command runs an external program per image and returns its trimmed
// standard output.
//
//	rec := &ocr.Command{Path: "tesseract", Args: []string{"stdin", "stdout", "--psm", "10"}}
type Command struct {
	Path string
	Args []string

	// Env, when non-nil, replaces the environment of the process.
	Env []string
}

var _ resolve.Recognizer = (*Command)(nil)

// ParseCommand splits a command line on white space.
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Command{Path: fields[0], Args: fields[1:]}, nil
}

// Classify implements resolve.Recognizer.
func (c *Command) Classify(ctx context.Context, png []byte) (string, error) {
	args := make([]string, len(c.Args))
	copy(args, c.Args)

	var stdin *bytes.Reader
	if containsPlaceholder(args) {
		tmp, err := os.CreateTemp("", "fontmap-*.png")
		if err != nil {
			return "", fmt.Errorf("ocr: %w", err)
		}
		name := tmp.Name()
		defer func() { _ = os.Remove(name) }()
		_, err = tmp.Write(png)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("ocr: write temp image: %w", err)
		}
		for i, a := range args {
			args[i] = strings.ReplaceAll(a, ImagePlaceholder, name)
		}
	} else {
		stdin = bytes.NewReader(png)
	}

	cmd := exec.CommandContext(ctx, c.Path, args...) // #nosec G204 -- the command is configured by the user
	if stdin != nil {
		cmd.Stdin = stdin
	}
	if c.Env != nil {
		cmd.Env = c.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("ocr: %s: %w: %s", c.Path, err, msg)
		}
		return "", fmt.Errorf("ocr: %s: %w", c.Path, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func containsPlaceholder(args []string) bool {
	for _, a := range args {
		if strings.Contains(a, ImagePlaceholder) {
			return true
		}
	}
	return false
}
