package history

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	ruleDouble = "=============================================="
	ruleSingle = "----------------------------------------------"
	ruleTable  = "+--------+-----------------+------------+-----------------+-----------------+"
	stampFmt   = "2006-01-02 15:04:05"
)

// FileRecorder appends records to a text log. The file is opened for each
// record, so a recorder whose file is unavailable keeps working once it
// becomes available.
type FileRecorder struct {
	mu   sync.Mutex
	path string
}

// NewFileRecorder creates a recorder appending to the file at path.
func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{path: path}
}

// Path returns the log file path.
func (f *FileRecorder) Path() string {
	return f.path
}

// Record appends r to the log.
func (f *FileRecorder) Record(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	w := bufio.NewWriter(file)
	WriteText(w, r)
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write history log: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close history log: %w", err)
	}
	return nil
}

// Close does nothing; the file is closed after each record.
func (f *FileRecorder) Close() error {
	return nil
}

// WriteText writes the text form of a record. Write errors are left to the
// caller to discover, e.g. through bufio.Writer.Flush.
func WriteText(w io.Writer, r Record) {
	fmt.Fprintln(w, ruleDouble)
	fmt.Fprintf(w, "OPERATION LOGGED: %s\n", r.Time.Format(stampFmt))
	fmt.Fprintf(w, "Original Expression (%s): %s\n", r.OriginalKind, r.Original)
	fmt.Fprintf(w, "Converted Expression (%s): %s\n", r.ConvertedKind, r.Converted)
	if r.Steps != nil {
		fmt.Fprintln(w, ruleSingle)
		fmt.Fprintln(w, "Evaluation Steps:")
		fmt.Fprintf(w, "| %-6s | %-15s | %-10s | %-15s | %-15s |\n", "Step", "Operand 1", "Operator", "Operand 2", "Result")
		fmt.Fprintln(w, ruleTable)
		for i, s := range r.Steps {
			fmt.Fprintf(w, "| %-6d | %-15.4f | %-10c | %-15.4f | %-15.4f |\n", i+1, s.Operand1, s.Operator, s.Operand2, s.Result)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, ruleSingle)
	fmt.Fprintf(w, "Final Numeric Result: %.4f\n", r.Result)
	fmt.Fprintln(w, ruleDouble)
	fmt.Fprintln(w)
}
