package pipeline

import (
	"errors"
	"fmt"
)

// ErrOutput is matched by errors.Is for every output write failure.
var ErrOutput = errors.New("output write failed")

// OutputError reports a failed write to the output sink. It is the only
// error that stops the pipeline before the input ends.
type OutputError struct {
	// LineNum is the input line whose output could not be written.
	LineNum int
	// Cause is the error returned by the writer.
	Cause error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing output for line %d: %v", e.LineNum, e.Cause)
}

// Unwrap returns the writer's error.
func (e *OutputError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrOutput.
func (e *OutputError) Is(target error) bool { return target == ErrOutput }
