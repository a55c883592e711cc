package validation

import (
	"errors"
	"fmt"
)

const (
	// DefaultMaxLines bounds each side of a comparison. The LCS table grows with
	// the product of both line counts, so this keeps it under 25M cells.
	DefaultMaxLines = 5000
)

// ErrTooLarge is returned when an input exceeds the configured bound.
var ErrTooLarge = errors.New("input too large")

// ValidateLineCounts checks both sides of a comparison against maxLines.
// A non-positive maxLines falls back to DefaultMaxLines.
func ValidateLineCounts(beforeLines, afterLines, maxLines int) error {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if beforeLines > maxLines {
		return fmt.Errorf("%w: before has %d lines (limit %d)", ErrTooLarge, beforeLines, maxLines)
	}
	if afterLines > maxLines {
		return fmt.Errorf("%w: after has %d lines (limit %d)", ErrTooLarge, afterLines, maxLines)
	}
	return nil
}

// ValidateSources checks the two source arguments of a comparison.
func ValidateSources(before, after string) error {
	if before == "" || after == "" {
		return fmt.Errorf("source cannot be empty")
	}
	if before == "-" && after == "-" {
		return fmt.Errorf("stdin can only be used for one side")
	}
	return nil
}
