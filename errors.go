package loopexec

import "errors"

var (
	// ErrAlreadyStarted is returned when a task is started on an executor that
	// already has one.
	ErrAlreadyStarted = errors.New("loopexec: executor already started")

	// ErrNotRunning is the panic value when the host ticks an executor that
	// has no running task.
	ErrNotRunning = errors.New("loopexec: executor is not running")

	// ErrNilTask is returned when a nil task is started.
	ErrNilTask = errors.New("loopexec: task is required")
)
