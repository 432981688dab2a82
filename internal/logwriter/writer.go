// Package logwriter drains a logbuffer.Buffer to a newline-delimited JSON
// file and rotates that file on a time-driven schedule.
//
// Flush drains the buffer, serializes each record as one JSON line, ensures
// the parent directory exists, then opens the file in append mode and
// writes the batch. I/O errors are logged and swallowed rather than
// propagated to the caller that triggered the flush (a scheduler tick or
// process shutdown); the affected batch is dropped and the service
// continues.
package logwriter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"rodan/internal/logbuffer"
	"rodan/internal/logging"
)

// Writer flushes a logbuffer.Buffer to a single active log file.
type Writer struct {
	buf    *logbuffer.Buffer
	path   string
	logger *slog.Logger
}

// New returns a Writer draining buf to path. A nil logger discards output.
func New(buf *logbuffer.Buffer, path string, logger *slog.Logger) *Writer {
	return &Writer{buf: buf, path: path, logger: logging.Default(logger)}
}

// Flush drains the buffer and appends the batch to the active log file as
// newline-delimited JSON. It is idempotent on an empty buffer: no I/O is
// performed when there is nothing to write. On any I/O error the batch is
// dropped after being logged; Flush itself still returns nil so that a
// scheduler loop never aborts because of a single bad write.
func (w *Writer) Flush() error {
	records := w.buf.Drain()
	if len(records) == 0 {
		return nil
	}

	var batch bytes.Buffer
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			w.logger.Error("failed to marshal log record", "error", err)
			continue
		}
		batch.Write(line)
		batch.WriteByte('\n')
	}
	if batch.Len() == 0 {
		return nil
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			w.logger.Error("failed to create log directory", "path", dir, "error", err)
			return nil
		}
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		w.logger.Error("failed to open log file", "path", w.path, "error", err)
		return nil
	}
	defer f.Close()

	if _, err := f.Write(batch.Bytes()); err != nil {
		w.logger.Error("failed to write log batch", "path", w.path, "error", err)
	}
	return nil
}
