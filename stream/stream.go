// Package stream exposes the event channel as lazily-pollable sequences.
//
// Every adapter holds its own subscription, taken when it is constructed, so
// adapters never share a cursor. Polling never blocks: an adapter with nothing
// buffered reports Pending and is expected to be polled again on a later tick.
//
//	events := stream.Window(exec)
//	for {
//	    ev, st := events.PollNext(cx)
//	    switch st {
//	    case stream.Item:
//	        handle(ev)
//	        continue
//	    case stream.Pending:
//	        return poll.Pending
//	    case stream.Done:
//	        return poll.Ready
//	    }
//	}
package stream

import (
	"errors"

	"github.com/casualjim/loopexec/broker"
	"github.com/casualjim/loopexec/events"
	"github.com/casualjim/loopexec/pkg/stdx"
	"github.com/casualjim/loopexec/poll"
)

// State is the outcome of one PollNext call.
type State uint8

const (
	// Item means a value was yielded and the sequence continues.
	Item State = iota
	// Pending means nothing is available yet; poll again on a later tick.
	Pending
	// Done means the sequence has ended for good.
	Done
)

func (s State) String() string {
	switch s {
	case Item:
		return "item"
	case Pending:
		return "pending"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Stream is a lazily-pollable sequence of T.
type Stream[T any] interface {
	PollNext(cx *poll.Context) (T, State)
}

// Source hands out subscriptions to the event channel.
type Source interface {
	Subscribe() *broker.Receiver[events.Event]
}

// Producer is the generic adapter: every event published after it was created.
type Producer struct {
	rx   *broker.Receiver[events.Event]
	done bool
}

// Events subscribes to src and returns a stream of all events.
func Events(src Source) *Producer {
	return &Producer{rx: src.Subscribe()}
}

// PollNext yields the next buffered event, Pending when none is buffered, or
// Done once the writer is gone and the backlog is drained. Done is permanent.
func (p *Producer) PollNext(_ *poll.Context) (events.Event, State) {
	if p.done {
		return nil, Done
	}
	ev, err := p.rx.TryRecv()
	switch {
	case err == nil:
		return ev, Item
	case errors.Is(err, broker.ErrEmpty):
		return nil, Pending
	default:
		p.done = true
		return nil, Done
	}
}

// Backlog returns the number of events buffered for this adapter.
func (p *Producer) Backlog() int {
	return p.rx.Len()
}

// Close releases the subscription. The stream reports Done afterwards.
func (p *Producer) Close() {
	p.rx.Unsubscribe()
	p.done = true
}

// Filter projects the event stream down to one category, discarding events
// the projection rejects.
type Filter[T any] struct {
	inner     *Producer
	project   func(events.Event) (T, bool)
	discarded uint64
}

// Filtered subscribes to src and keeps only events for which project returns
// true. The subscription is taken immediately, so the filter sees every event
// published from this call on.
//
// Example usage:
//
//	users := stream.Filtered(ex, func(ev events.Event) (events.User, bool) {
//	    u, ok := ev.(events.User)
//	    return u, ok
//	})
//
// Parameters:
//   - src: the source to subscribe to, usually the executor
//   - project: converts an event to T, or reports false to discard it
//
// Returns:
//   - A stream of projected values with its own cursor into the channel.
func Filtered[T any](src Source, project func(events.Event) (T, bool)) *Filter[T] {
	return &Filter[T]{inner: Events(src), project: project}
}

// Device returns a stream of device-scoped events only.
func Device(src Source) *Filter[events.DeviceEvent] {
	return Filtered(src, events.AsDevice)
}

// Window returns a stream of window-scoped events only.
func Window(src Source) *Filter[events.WindowEvent] {
	return Filtered(src, events.AsWindow)
}

// PollNext pulls from the underlying stream until an event matches, the
// stream runs dry (Pending) or it ends (Done). Rejected events are dropped in
// arrival order.
func (f *Filter[T]) PollNext(cx *poll.Context) (T, State) {
	for {
		ev, st := f.inner.PollNext(cx)
		if st != Item {
			return stdx.Zero[T](), st
		}
		if v, ok := f.project(ev); ok {
			return v, Item
		}
		f.discarded++
	}
}

// Discarded returns how many events this filter has dropped.
func (f *Filter[T]) Discarded() uint64 {
	return f.discarded
}

// Backlog returns the number of events buffered for this adapter, matching or not.
func (f *Filter[T]) Backlog() int {
	return f.inner.Backlog()
}

// Close releases the subscription.
func (f *Filter[T]) Close() {
	f.inner.Close()
}
