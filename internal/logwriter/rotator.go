package logwriter

import (
	"log/slog"
	"os"
	"time"

	"rodan/internal/logging"
)

// Rotator renames the active log file once it has aged past a configured
// period, then recreates an empty file at the active path.
type Rotator struct {
	path   string
	period time.Duration
	logger *slog.Logger
}

// NewRotator returns a Rotator for path, due once the file is older than
// period. A nil logger discards output.
func NewRotator(path string, period time.Duration, logger *slog.Logger) *Rotator {
	return &Rotator{path: path, period: period, logger: logging.Default(logger)}
}

// Rotate is best-effort: a missing file is skipped silently, and stat
// failures and rename/create errors are logged and swallowed, never returned
// to the caller.
func (r *Rotator) Rotate() {
	info, err := os.Stat(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Error("failed to stat log file", "path", r.path, "error", err)
		}
		return
	}

	if time.Since(info.ModTime()) < r.period {
		return
	}

	rotated := r.path + "." + time.Now().UTC().Format("20060102150405")
	if err := os.Rename(r.path, rotated); err != nil {
		r.logger.Error("failed to rotate log file", "path", r.path, "error", err)
		return
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.logger.Error("failed to create log file after rotation", "path", r.path, "error", err)
		return
	}
	f.Close()
}
