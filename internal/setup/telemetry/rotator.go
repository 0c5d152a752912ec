package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// lineWindow keeps the most recent lines written to a log file.
type lineWindow struct {
	lines []string
	next  int
	size  int
	seen  int
}

func newLineWindow(capacity int) *lineWindow {
	return &lineWindow{lines: make([]string, capacity)}
}

func (w *lineWindow) push(line string) {
	w.lines[w.next] = line
	w.next = (w.next + 1) % len(w.lines)

	if w.size < len(w.lines) {
		w.size++
	}

	w.seen++
}

// snapshot returns the retained lines oldest first.
func (w *lineWindow) snapshot() []string {
	result := make([]string, 0, w.size)
	start := (w.next - w.size + len(w.lines)) % len(w.lines)

	for i := range w.size {
		result = append(result, w.lines[(start+i)%len(w.lines)])
	}

	return result
}

// TrimmingWriter appends to a log file and periodically rewrites it so that
// only the last maxLines lines remain.
type TrimmingWriter struct {
	file   *os.File
	path   string
	window *lineWindow
	mu     sync.Mutex
}

// OpenTrimmingWriter opens path for appending. A maxLines below 1 disables trimming.
func OpenTrimmingWriter(path string, maxLines int) (*TrimmingWriter, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	w := &TrimmingWriter{file: file, path: path}
	if maxLines > 0 {
		w.window = newLineWindow(maxLines)
	}

	return w, nil
}

// Write implements io.Writer.
func (w *TrimmingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil || w.window == nil {
		return n, err
	}

	for line := range strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}

		w.window.push(line)

		// Rewriting on every line would be quadratic, so wait for a full extra window
		if w.window.seen >= 2*len(w.window.lines) {
			if err := w.trim(); err != nil {
				return n, fmt.Errorf("failed to trim log file: %w", err)
			}

			w.window.seen = w.window.size
		}
	}

	return n, nil
}

// Sync flushes the underlying file.
func (w *TrimmingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Sync()
}

// Close closes the underlying file.
func (w *TrimmingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Close()
}

// trim swaps the file for one holding only the retained window.
func (w *TrimmingWriter) trim() error {
	temp, err := os.CreateTemp(filepath.Dir(w.path), "trim-*.log")
	if err != nil {
		return err
	}

	tempPath := temp.Name()
	content := strings.Join(w.window.snapshot(), "\n") + "\n"

	if err := writeAndClose(temp, content); err != nil {
		os.Remove(tempPath)
		return err
	}

	w.file.Close()
	os.Remove(w.path)

	if err := os.Rename(tempPath, w.path); err != nil {
		return err
	}

	w.file, err = os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)

	return err
}

func writeAndClose(f *os.File, content string) error {
	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
