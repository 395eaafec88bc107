// Package errors implements critterc's two-layer diagnostic shape:
// structured CompilerErrors while a pass is running, flattened to the
// "Line L: message" strings the CLI contract requires at the boundary.
package errors

import (
	"fmt"
	"sort"
)

// CompilerError is one diagnostic raised by the parser or checker.
type CompilerError struct {
	Line    int
	Message string
}

func (e CompilerError) String() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

// Errorf builds a CompilerError with a formatted message.
func Errorf(line int, format string, args ...any) CompilerError {
	return CompilerError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// FormatErrors renders a batch of CompilerErrors to the flat string slice
// the pipeline and CLI exchange, sorted by line for deterministic output.
func FormatErrors(errs []CompilerError) []string {
	sorted := make([]CompilerError, len(errs))
	copy(sorted, errs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Line < sorted[j].Line })

	out := make([]string, len(sorted))
	for i, e := range sorted {
		out[i] = e.String()
	}
	return out
}
