/*
Package loopexec runs one cooperative task on top of a synchronous, callback
driven host event loop and exposes the loop's events as pollable streams.

A host loop (a windowing toolkit, a terminal, a scripted test loop) owns the
thread and calls a handler once per event and once per idle tick. The Executor
is that handler. On every tick it:

 1. converts the raw host event into an owned event record, skipping events
    that have no owned form,
 2. publishes the record to a broadcast channel,
 3. polls the root task exactly once,
 4. answers host.Wait while the task is pending and host.Exit once it is done.

The task reads events through stream adapters. Every adapter holds its own
subscription to the channel, so independent consumers see the full sequence
of events published after they subscribed, each at its own pace.

# Basic Usage

	loop := sim.New(...)
	ex := loopexec.New(loop, loopexec.Name("app"))

	windows := ex.WindowEvents()
	root := task.ForEach(windows, func(_ *poll.Context, ev events.WindowEvent) bool {
		fmt.Println(ev.Payload.PayloadKind())
		return true
	})

	if err := ex.RunWith(root); err != nil {
		// Handle error
	}

# Suspension

There is no waker-driven scheduling. A task that returns poll.Pending is
resumed on the next tick, whatever that tick carries. Streams report
stream.Pending when nothing is buffered and stream.Done once the executor has
finished and its buffered events are drained.

# Subscriptions

Adapters must be created before the events they care about are published.
Events published before a subscription exists are not replayed to it.
*/
package loopexec
