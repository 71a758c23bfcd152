package broker

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/loopexec/pkg/slogx"
	"github.com/casualjim/loopexec/pkg/uuidx"
	"github.com/eapache/queue"
	"github.com/fogfish/opts"
)

var (
	// ErrClosed is returned by Publish once the channel has been closed.
	ErrClosed = errors.New("broker: channel closed")
	// ErrEmpty is returned by TryRecv when nothing is buffered but the writer is alive.
	ErrEmpty = errors.New("broker: no event available")
	// ErrDisconnected is returned by TryRecv once the writer is gone and the backlog is drained.
	ErrDisconnected = errors.New("broker: channel disconnected")
)

// Channel is a multi-subscriber broadcast of T values.
type Channel[T any] struct {
	name      string
	logger    *slog.Logger
	receivers *haxmap.Map[string, *Receiver[T]]

	mu     sync.RWMutex
	closed bool
}

type config struct {
	name   string
	logger *slog.Logger
}

var (
	// Named sets the channel name used in log lines.
	Named = opts.ForName[config, string]("name")
	// WithLogger sets the logger used for subscription lifecycle messages.
	WithLogger = opts.ForName[config, *slog.Logger]("logger")
)

// New creates an open channel with no subscribers.
func New[T any](options ...opts.Option[config]) *Channel[T] {
	cfg := config{name: "events", logger: slog.Default()}
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	return &Channel[T]{
		name:      cfg.name,
		logger:    cfg.logger.With(slogx.LoggerName("broker"), slog.String("channel", cfg.name)),
		receivers: haxmap.New[string, *Receiver[T]](),
	}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string {
	return c.name
}

// Publish appends v to the queue of every live receiver.
// Publishes are serialized so every receiver observes the same order.
func (c *Channel[T]) Publish(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	c.receivers.ForEach(func(_ string, rx *Receiver[T]) bool {
		rx.push(v)
		return true
	})
	return nil
}

// Subscribe attaches a new receiver. It observes every value published from
// now on; earlier values are not visible to it. Subscribing to a closed
// channel returns a receiver that is already disconnected.
func (c *Channel[T]) Subscribe() *Receiver[T] {
	id := uuidx.NewString()
	rx := &Receiver[T]{
		id:    id,
		queue: queue.New(),
	}
	rx.onDetach = func() { c.receivers.Del(id) }

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		rx.disconnected = true
		return rx
	}
	c.receivers.Set(id, rx)
	c.logger.Debug("subscribed", slog.String("subscription", id))
	return rx
}

// Close marks the writer gone. Receivers keep their buffered values and report
// ErrDisconnected once drained. Closing twice is a no-op.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true

	c.receivers.ForEach(func(_ string, rx *Receiver[T]) bool {
		rx.disconnect()
		return true
	})
	c.logger.Debug("closed", slog.Int("subscribers", int(c.receivers.Len())))
}

// Closed reports whether Close has been called.
func (c *Channel[T]) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Subscribers returns the number of attached receivers.
func (c *Channel[T]) Subscribers() int {
	return int(c.receivers.Len())
}
