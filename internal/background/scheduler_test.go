package background

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rodan/internal/logbuffer"
	"rodan/internal/logging"
	"rodan/internal/logwriter"
)

func TestSchedulerFlushesOnInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")

	buf := logbuffer.NewBuffer()
	buf.Enqueue(logbuffer.NewLogRecord(time.Now(), "hello"))

	writer := logwriter.New(buf, path, logging.Discard())
	rotator := logwriter.NewRotator(path, time.Hour, logging.Discard())

	s, err := New(writer, rotator, 20*time.Millisecond, time.Hour, logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected flush job to write the buffered record to disk")
}
