package feed

import (
	"bufio"
	"fmt"
	"io"
)

// Writer emits one action line per turn.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteAction writes action's wire form followed by a newline and flushes,
// so the referee sees the action before the next turn is read.
func (w *Writer) WriteAction(action fmt.Stringer) error {
	if _, err := w.w.WriteString(action.String() + "\n"); err != nil {
		return fmt.Errorf("feed: writing action: %w", err)
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("feed: flushing action: %w", err)
	}
	return nil
}
