package loopexec

import (
	"context"
	"log/slog"

	"github.com/fogfish/opts"
)

var (
	// Name sets the executor name. It shows up in log lines and names the
	// event channel.
	//
	// Example:
	//  loopexec.New(loop, loopexec.Name("editor"))
	Name = opts.ForName[Executor, string]("name")

	// Logger sets the structured logger. Defaults to slog.Default() tagged
	// with the executor's logger name.
	//
	// Example:
	//  loopexec.New(loop, loopexec.Logger(slog.New(handler)))
	Logger = opts.ForName[Executor, *slog.Logger]("logger")

	// Context sets the context handed to the task on every poll through
	// poll.Context. The executor never cancels it.
	Context = opts.ForName[Executor, context.Context]("ctx")
)
