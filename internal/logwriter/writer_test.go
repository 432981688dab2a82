package logwriter

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rodan/internal/logbuffer"
)

func TestFlushWritesNDJSONAndCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "events.log")

	buf := logbuffer.NewBuffer()
	buf.Enqueue(logbuffer.NewLogRecord(time.Now(), "E1"))
	buf.Enqueue(logbuffer.NewLogRecord(time.Now(), "E2"))

	w := New(buf, path, nil)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var rec logbuffer.LogRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if rec.Message != "E1" {
		t.Fatalf("expected E1, got %q", rec.Message)
	}
}

func TestFlushOnEmptyBufferPerformsNoIO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")

	w := New(logbuffer.NewBuffer(), path, nil)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected no file to be created for an empty buffer")
	}
}

func TestFlushAppendsAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")
	buf := logbuffer.NewBuffer()
	w := New(buf, path, nil)

	buf.Enqueue(logbuffer.NewLogRecord(time.Now(), "first"))
	if err := w.Flush(); err != nil {
		t.Fatalf("first flush: %v", err)
	}
	buf.Enqueue(logbuffer.NewLogRecord(time.Now(), "second"))
	if err := w.Flush(); err != nil {
		t.Fatalf("second flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Fatalf("expected 2 lines across both flushes, got %d", lines)
	}
}

func TestRotatorRotatesAgedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	r := NewRotator(path, time.Hour, nil)
	r.Rotate()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected fresh empty file at path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fresh file: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected fresh file to be empty, got %q", data)
	}

	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one rotated file, got %v", matches)
	}
}

func TestRotatorSkipsFreshFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")
	if err := os.WriteFile(path, []byte("fresh\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	r := NewRotator(path, time.Hour, nil)
	r.Rotate()

	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no rotation for a fresh file, got %v", matches)
	}
}

func TestRotatorSkipsMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")

	r := NewRotator(path, time.Hour, nil)
	r.Rotate() // must not panic or create the file
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected Rotate on a missing file to be a no-op")
	}
}
