package broker

import (
	"sync"

	"github.com/casualjim/loopexec/pkg/stdx"
	"github.com/eapache/queue"
)

// Receiver is one subscriber's private read cursor into a Channel.
type Receiver[T any] struct {
	id       string
	onDetach func()

	mu           sync.Mutex
	queue        *queue.Queue
	disconnected bool
	detached     bool
	detachOnce   sync.Once
}

// ID returns the subscription id.
func (r *Receiver[T]) ID() string {
	return r.id
}

// TryRecv returns the oldest buffered value without blocking. It returns
// ErrEmpty when nothing is buffered and the writer is alive, and
// ErrDisconnected once the writer is gone and the backlog is drained.
func (r *Receiver[T]) TryRecv() (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.queue.Length() > 0 {
		v, _ := r.queue.Remove().(T)
		return v, nil
	}
	if r.disconnected {
		return stdx.Zero[T](), ErrDisconnected
	}
	return stdx.Zero[T](), ErrEmpty
}

// Len returns the number of buffered, unconsumed values.
func (r *Receiver[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queue.Length()
}

// Unsubscribe detaches the receiver from its channel and drops its backlog.
// Subsequent TryRecv calls return ErrDisconnected.
func (r *Receiver[T]) Unsubscribe() {
	r.detachOnce.Do(func() {
		if r.onDetach != nil {
			r.onDetach()
		}
		r.mu.Lock()
		r.detached = true
		r.disconnected = true
		r.queue = queue.New()
		r.mu.Unlock()
	})
}

func (r *Receiver[T]) push(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return
	}
	r.queue.Add(v)
}

func (r *Receiver[T]) disconnect() {
	r.mu.Lock()
	r.disconnected = true
	r.mu.Unlock()
}
