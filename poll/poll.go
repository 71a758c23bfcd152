// Package poll holds the vocabulary shared by everything the executor drives:
// the outcome of one poll step and the context handed to it.
//
// Nothing here schedules anything. A Pending result is resolved only by the
// host loop ticking the executor again; the Waker carried in a Context is a
// no-op and exists so adapters have the same shape as a waker-driven design.
package poll

import "context"

// Status is the outcome of polling a task once.
type Status uint8

const (
	// Pending means the task cannot make progress until a later tick.
	Pending Status = iota
	// Ready means the task has completed.
	Ready
)

func (s Status) String() string {
	if s == Ready {
		return "ready"
	}
	return "pending"
}

// Waker is the signal a suspended computation would use to ask to be polled again.
type Waker interface {
	Wake()
}

type noopWaker struct{}

func (noopWaker) Wake() {}

// NoopWaker returns a Waker that does nothing.
func NoopWaker() Waker {
	return noopWaker{}
}

// Context is passed to every poll step.
type Context struct {
	ctx   context.Context
	waker Waker
	tick  uint64
}

// NewContext builds a poll context for the given host loop tick. A nil waker
// is replaced by NoopWaker.
func NewContext(ctx context.Context, tick uint64, waker Waker) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if waker == nil {
		waker = NoopWaker()
	}
	return &Context{ctx: ctx, waker: waker, tick: tick}
}

// Background returns a context for polling outside an executor, e.g. in tests.
func Background() *Context {
	return NewContext(context.Background(), 0, nil)
}

// Context returns the context.Context the executor was configured with.
func (c *Context) Context() context.Context { return c.ctx }

// Waker returns the waker for this poll.
func (c *Context) Waker() Waker { return c.waker }

// Tick returns the host loop tick that triggered this poll, starting at 1.
func (c *Context) Tick() uint64 { return c.tick }
