package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveExecution is returned by event calls made from a worker
	// that has no open execution.
	ErrNoActiveExecution = errors.New("no active execution for this worker")
	ErrRunNotStarted     = errors.New("run not started")
)

// ArtifactError reports a run artifact that could not be read or written.
type ArtifactError struct {
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("run artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }
