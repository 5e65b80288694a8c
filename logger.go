package fontmap

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/fontmap/internal/logging"
)

// SetLogger configures the logger for fontmap and all its sub-packages.
// By default, fontmap produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior). The logger
// is also handed to gogpu/gg, which backs raster.BackendGG.
//
// Log levels used by fontmap:
//   - [slog.LevelDebug]: per-glyph progress, skipped stale images
//   - [slog.LevelInfo]: phase summaries (render batch, resolution)
//   - [slog.LevelWarn]: per-glyph failures, the unresolved summary
//
// Example:
//
//	fontmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger used by fontmap.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
