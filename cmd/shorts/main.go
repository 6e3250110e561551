package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"shorts/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var already *reportedError
		if !errors.Is(err, context.Canceled) && !errors.As(err, &already) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(services.ExitCode(err))
	}
}

// reportedError marks a failure whose user-facing message has already been
// written to stderr.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}
