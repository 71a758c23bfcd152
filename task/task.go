// Package task defines the root task the executor drives and a small set of
// combinators for writing one.
//
// A task is a resumable state machine: each Poll advances it as far as it can
// without blocking and reports Pending or Ready. Nothing re-polls a Pending
// task except the next host loop tick, so a task must only suspend on things
// a tick can change, in practice a stream adapter with nothing buffered.
package task

import (
	"github.com/casualjim/loopexec/poll"
	"github.com/casualjim/loopexec/stream"
)

// Task is one unit of cooperative asynchronous work.
type Task interface {
	Poll(cx *poll.Context) poll.Status
}

// Func adapts a function to a Task.
type Func func(cx *poll.Context) poll.Status

// Poll calls f.
func (f Func) Poll(cx *poll.Context) poll.Status {
	return f(cx)
}

// Done returns a task that is ready on its first poll.
func Done() Task {
	return Func(func(*poll.Context) poll.Status { return poll.Ready })
}

type forEach[T any] struct {
	s    stream.Stream[T]
	fn   func(*poll.Context, T) bool
	done bool
}

// ForEach consumes s, calling fn for every item. Each poll handles every item
// currently available. The task completes when s ends or fn returns false.
func ForEach[T any](s stream.Stream[T], fn func(cx *poll.Context, v T) bool) Task {
	return &forEach[T]{s: s, fn: fn}
}

func (f *forEach[T]) Poll(cx *poll.Context) poll.Status {
	for !f.done {
		v, st := f.s.PollNext(cx)
		switch st {
		case stream.Item:
			if !f.fn(cx, v) {
				f.done = true
			}
		case stream.Pending:
			return poll.Pending
		default:
			f.done = true
		}
	}
	return poll.Ready
}

// Take consumes exactly n items from s, or fewer if s ends first.
func Take[T any](s stream.Stream[T], n int, fn func(cx *poll.Context, v T)) Task {
	seen := 0
	if n <= 0 {
		return Done()
	}
	return ForEach(s, func(cx *poll.Context, v T) bool {
		fn(cx, v)
		seen++
		return seen < n
	})
}

type join struct {
	tasks []Task
	ready []bool
	left  int
}

// Join polls every unfinished task on each poll and completes once all have.
// Tasks are polled in the order given.
func Join(tasks ...Task) Task {
	return &join{tasks: tasks, ready: make([]bool, len(tasks)), left: len(tasks)}
}

func (j *join) Poll(cx *poll.Context) poll.Status {
	for i, t := range j.tasks {
		if j.ready[i] {
			continue
		}
		if t.Poll(cx) == poll.Ready {
			j.ready[i] = true
			j.left--
		}
	}
	if j.left == 0 {
		return poll.Ready
	}
	return poll.Pending
}

type sequence struct {
	tasks []Task
	next  int
}

// Sequence runs tasks one after another. When one completes the next is
// polled within the same step.
func Sequence(tasks ...Task) Task {
	return &sequence{tasks: tasks}
}

func (s *sequence) Poll(cx *poll.Context) poll.Status {
	for s.next < len(s.tasks) {
		if s.tasks[s.next].Poll(cx) == poll.Pending {
			return poll.Pending
		}
		s.next++
	}
	return poll.Ready
}
