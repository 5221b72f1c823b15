package commands

import (
	"context"
	"errors"

	"github.com/ccollicutt/prettylog/pkg/pipeline"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitOutputFailure = 1
	ExitConfigError   = 2
	ExitInterrupted   = 130
)

// ExitCode maps the error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, pipeline.ErrOutput):
		return ExitOutputFailure
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitConfigError
	}
}
