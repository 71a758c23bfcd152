package loopexec

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/casualjim/loopexec/broker"
	"github.com/casualjim/loopexec/events"
	"github.com/casualjim/loopexec/host"
	"github.com/casualjim/loopexec/pkg/slogx"
	"github.com/casualjim/loopexec/pkg/stdx"
	"github.com/casualjim/loopexec/poll"
	"github.com/casualjim/loopexec/stream"
	"github.com/fogfish/opts"
)

// Executor drives a single root task from a host event loop.
//
// An Executor moves through Idle, Running and Terminated exactly once. It is
// meant to be used from the host loop's thread; the event channel behind it is
// safe for concurrent use, so streams may be created from other goroutines.
type Executor struct {
	name   string
	logger *slog.Logger
	ctx    context.Context

	loop    host.EventLoop
	channel *broker.Channel[events.Event]
	task    Task

	state     atomic.Uint32
	ticks     atomic.Uint64
	published atomic.Uint64
	skipped   atomic.Uint64
}

// New creates an executor around a host loop. The executor owns a fresh
// event channel; nothing is published until the task is started.
//
// Example usage:
//
//	ex := loopexec.New(loop,
//	    loopexec.Name("demo"),
//	    loopexec.Logger(logger),
//	)
//
// Parameters:
//   - loop: the host loop RunWith will hand the tick handler to
//   - options: optional configuration (Name, Logger, Context)
func New(loop host.EventLoop, options ...opts.Option[Executor]) *Executor {
	e := &Executor{
		name: "loopexec",
		loop: loop,
		ctx:  context.Background(),
	}
	if err := opts.Apply(e, options); err != nil {
		panic(err)
	}
	if e.logger == nil {
		e.logger = slog.Default().With(slogx.LoggerName(e.name))
	}
	e.name = stdx.Or(e.name, "loopexec")
	e.ctx = stdx.Or(e.ctx, context.Background())
	e.channel = broker.New[events.Event](broker.Named(e.name), broker.WithLogger(e.logger))
	return e
}

// Loop returns the wrapped host loop, e.g. to create windows before running.
func (e *Executor) Loop() host.EventLoop { return e.loop }

// Name returns the executor name.
func (e *Executor) Name() string { return e.name }

// State returns the current lifecycle state.
func (e *Executor) State() State { return State(e.state.Load()) }

// Start installs the root task and moves the executor to Running.
func (e *Executor) Start(t Task) error {
	if t == nil {
		return ErrNilTask
	}
	if !e.state.CompareAndSwap(uint32(Idle), uint32(Running)) {
		return fmt.Errorf("%w: state is %s", ErrAlreadyStarted, e.State())
	}
	e.task = t
	e.logger.Debug("task started")
	return nil
}

// Tick handles one host callback: it publishes the owned form of raw, polls
// the task once and reports what the host loop should do next. A nil raw event
// is an idle tick.
//
// Ticking an executor that is not running is a host bug and panics with
// ErrNotRunning.
func (e *Executor) Tick(raw host.Event) host.ControlFlow {
	if st := e.State(); st != Running {
		panic(fmt.Errorf("%w: tick in state %s", ErrNotRunning, st))
	}
	n := e.ticks.Add(1)

	if ev, ok := owned(raw); ok {
		stdx.Must0(e.channel.Publish(ev))
		e.published.Add(1)
		e.logger.Debug("published", slogx.Tick(n), slogx.Kind(ev.Kind()))
	} else {
		e.skipped.Add(1)
		if raw != nil {
			e.logger.Debug("skipped host event", slogx.Tick(n), slog.String("event", fmt.Sprintf("%T", raw)))
		}
	}

	cx := poll.NewContext(e.ctx, n, poll.NoopWaker())
	if e.task.Poll(cx) == poll.Pending {
		return host.Wait
	}

	e.state.Store(uint32(Terminated))
	e.channel.Close()
	e.logger.Debug("task completed", slogx.Tick(n))
	return host.Exit
}

func owned(raw host.Event) (events.Event, bool) {
	if raw == nil {
		return nil, false
	}
	return raw.Owned()
}

// RunWith starts t and hands control to the host loop until the loop returns.
// The event channel is closed on the way out, so streams drain and then end.
func (e *Executor) RunWith(t Task) error {
	if err := e.Start(t); err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("running")
	err := e.loop.Run(func(ev host.Event, cf *host.ControlFlow) {
		*cf = e.Tick(ev)
	})
	stats := e.Stats()
	e.logger.Info("host loop returned",
		slogx.Stringer("state", stats.State),
		slog.Uint64("ticks", stats.Ticks),
		slog.Uint64("published", stats.Published),
	)
	if err != nil {
		return fmt.Errorf("host loop: %w", err)
	}
	return nil
}

// Close terminates the executor and closes the event channel. Streams see the
// end of the sequence once their backlog is drained; any later tick panics
// with ErrNotRunning. RunWith calls Close when the host loop returns.
func (e *Executor) Close() {
	e.state.Store(uint32(Terminated))
	e.channel.Close()
}

// Subscribe registers a new cursor on the event channel. It makes the executor
// a stream.Source.
func (e *Executor) Subscribe() *broker.Receiver[events.Event] {
	return e.channel.Subscribe()
}

// Events returns a stream of every event published from now on.
func (e *Executor) Events() *stream.Producer {
	return stream.Events(e)
}

// DeviceEvents returns a stream of device events published from now on.
func (e *Executor) DeviceEvents() *stream.Filter[events.DeviceEvent] {
	return stream.Device(e)
}

// WindowEvents returns a stream of window events published from now on.
func (e *Executor) WindowEvents() *stream.Filter[events.WindowEvent] {
	return stream.Window(e)
}

// Stats returns a snapshot of the executor counters.
func (e *Executor) Stats() Stats {
	return Stats{
		State:       e.State(),
		Ticks:       e.ticks.Load(),
		Published:   e.published.Load(),
		Skipped:     e.skipped.Load(),
		Subscribers: e.channel.Subscribers(),
	}
}
