package loopexec

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/casualjim/loopexec/events"
	"github.com/casualjim/loopexec/host"
	"github.com/casualjim/loopexec/host/sim"
	"github.com/casualjim/loopexec/poll"
	"github.com/casualjim/loopexec/stream"
	"github.com/casualjim/loopexec/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resized(win events.WindowID, w int) host.Window {
	return host.Window{ID: win, Payload: events.Resized{Width: w, Height: w}}
}

func requireNotRunningPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, ErrNotRunning)
	}()
	fn()
}

func TestExecutorStart(t *testing.T) {
	ex := New(sim.New())
	assert.Equal(t, Idle, ex.State())
	assert.Equal(t, "loopexec", ex.Name())

	assert.ErrorIs(t, ex.Start(nil), ErrNilTask)
	assert.Equal(t, Idle, ex.State())

	require.NoError(t, ex.Start(task.Done()))
	assert.Equal(t, Running, ex.State())

	assert.ErrorIs(t, ex.Start(task.Done()), ErrAlreadyStarted)
	assert.ErrorIs(t, ex.RunWith(task.Done()), ErrAlreadyStarted)
}

func TestExecutorTickBeforeStartPanics(t *testing.T) {
	ex := New(sim.New())
	requireNotRunningPanic(t, func() { ex.Tick(nil) })
}

func TestExecutorTerminatesOnKthTick(t *testing.T) {
	for _, k := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			loop := sim.New()
			win := loop.NewWindow()
			ex := New(loop)

			var sizes []int
			root := task.Take(ex.WindowEvents(), k, func(_ *poll.Context, ev events.WindowEvent) {
				sizes = append(sizes, ev.Payload.(events.Resized).Width)
			})
			require.NoError(t, ex.Start(root))

			for i := 1; i < k; i++ {
				assert.Equal(t, host.Wait, ex.Tick(resized(win, i)), "tick %d", i)
			}
			assert.Equal(t, host.Exit, ex.Tick(resized(win, k)))
			assert.Equal(t, Terminated, ex.State())
			assert.Len(t, sizes, k)

			requireNotRunningPanic(t, func() { ex.Tick(resized(win, k+1)) })
		})
	}
}

func TestExecutorSkipsUnrepresentableEvents(t *testing.T) {
	loop := sim.New()
	win := loop.NewWindow()
	ex := New(loop)
	all := ex.Events()

	var polls int
	require.NoError(t, ex.Start(task.Func(func(*poll.Context) poll.Status {
		polls++
		return poll.Pending
	})))

	size := &host.Size{Width: 1, Height: 1}
	for _, raw := range []host.Event{
		nil,
		host.NewEvents{Cause: host.StartPoll},
		host.AboutToWait{},
		host.ScaleFactorChanged{ID: win, Scale: 2, NewInnerSize: size},
		host.Window{ID: win},
	} {
		assert.Equal(t, host.Wait, ex.Tick(raw))
	}

	stats := ex.Stats()
	assert.Equal(t, uint64(5), stats.Ticks)
	assert.Equal(t, uint64(5), stats.Skipped)
	assert.Zero(t, stats.Published)
	assert.Equal(t, 5, polls, "the task is polled on every tick")

	_, st := all.PollNext(poll.Background())
	assert.Equal(t, stream.Pending, st)
}

func TestExecutorCloseTerminates(t *testing.T) {
	loop := sim.New()
	win := loop.NewWindow()
	ex := New(loop)
	windows := ex.WindowEvents()
	require.NoError(t, ex.Start(task.Func(func(*poll.Context) poll.Status { return poll.Pending })))

	assert.Equal(t, host.Wait, ex.Tick(resized(win, 1)))
	ex.Close()
	ex.Close()
	assert.Equal(t, Terminated, ex.State())

	requireNotRunningPanic(t, func() { ex.Tick(resized(win, 2)) })

	_, st := windows.PollNext(poll.Background())
	assert.Equal(t, stream.Item, st)
	_, st = windows.PollNext(poll.Background())
	assert.Equal(t, stream.Done, st)
}

func TestExecutorPollContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")
	ex := New(sim.New(), Name("ctx"), Context(ctx))

	var ticks []uint64
	require.NoError(t, ex.Start(task.Func(func(cx *poll.Context) poll.Status {
		ticks = append(ticks, cx.Tick())
		assert.Equal(t, "value", cx.Context().Value(key{}))
		assert.NotNil(t, cx.Waker())
		cx.Waker().Wake()
		if len(ticks) == 3 {
			return poll.Ready
		}
		return poll.Pending
	})))

	ex.Tick(nil)
	ex.Tick(host.User{Name: "a"})
	assert.Equal(t, host.Exit, ex.Tick(nil))
	assert.Equal(t, []uint64{1, 2, 3}, ticks)
}

func TestExecutorRunWith(t *testing.T) {
	t.Run("exits once the task is done", func(t *testing.T) {
		loop := sim.New()
		win := loop.NewWindow()
		dev := loop.NewDevice()
		loop.Push(
			resized(win, 1),
			host.Device{ID: dev, Payload: events.MouseMotion{DX: 1}},
			resized(win, 2),
			host.Device{ID: dev, Payload: events.MouseMotion{DX: 2}},
		)
		ex := New(loop, Name("run"))
		observer := ex.Events()

		var devices []events.DeviceEvent
		var windows []events.WindowEvent
		root := task.Join(
			task.Take(ex.DeviceEvents(), 1, func(_ *poll.Context, ev events.DeviceEvent) {
				devices = append(devices, ev)
			}),
			task.Take(ex.WindowEvents(), 2, func(_ *poll.Context, ev events.WindowEvent) {
				windows = append(windows, ev)
			}),
		)

		require.NoError(t, ex.RunWith(root))
		assert.Equal(t, Terminated, ex.State())

		// window 1, idle, device 1, idle, window 2
		assert.Equal(t, []host.ControlFlow{host.Wait, host.Wait, host.Wait, host.Wait, host.Exit}, loop.Directives())
		assert.Equal(t, 1, loop.Remaining())
		assert.Len(t, devices, 1)
		assert.Len(t, windows, 2)

		stats := ex.Stats()
		assert.Equal(t, uint64(5), stats.Ticks)
		assert.Equal(t, uint64(3), stats.Published)
		assert.Equal(t, uint64(2), stats.Skipped)

		var seen int
		for {
			_, st := observer.PollNext(poll.Background())
			if st != stream.Item {
				assert.Equal(t, stream.Done, st)
				break
			}
			seen++
		}
		assert.Equal(t, 3, seen)
	})

	t.Run("returns the loop error and closes the channel", func(t *testing.T) {
		loop := sim.New()
		win := loop.NewWindow()
		loop.Push(resized(win, 1), resized(win, 2))
		ex := New(loop)
		windows := ex.WindowEvents()

		err := ex.RunWith(task.Func(func(*poll.Context) poll.Status { return poll.Pending }))
		require.Error(t, err)
		assert.True(t, errors.Is(err, sim.ErrScriptExhausted))
		assert.Equal(t, Terminated, ex.State())

		var got []int
		for {
			ev, st := windows.PollNext(poll.Background())
			if st != stream.Item {
				assert.Equal(t, stream.Done, st)
				break
			}
			got = append(got, ev.Payload.(events.Resized).Width)
		}
		assert.Equal(t, []int{1, 2}, got)

		_, st := windows.PollNext(poll.Background())
		assert.Equal(t, stream.Done, st)
	})
}

func TestExecutorFanOut(t *testing.T) {
	loop := sim.New()
	win := loop.NewWindow()
	for i := 1; i <= 3; i++ {
		loop.Push(resized(win, i))
	}
	ex := New(loop)

	var a, b []int
	collect := func(dst *[]int) func(*poll.Context, events.WindowEvent) {
		return func(_ *poll.Context, ev events.WindowEvent) {
			*dst = append(*dst, ev.Payload.(events.Resized).Width)
		}
	}
	root := task.Join(
		task.Take(ex.WindowEvents(), 3, collect(&a)),
		task.Take(ex.WindowEvents(), 3, collect(&b)),
	)
	assert.Equal(t, 2, ex.Stats().Subscribers)

	require.NoError(t, ex.RunWith(root))
	assert.Equal(t, []int{1, 2, 3}, a)
	assert.Equal(t, []int{1, 2, 3}, b)
}

func TestExecutorLateSubscriberMissesEarlierEvents(t *testing.T) {
	loop := sim.New()
	win := loop.NewWindow()
	ex := New(loop)

	var late *stream.Filter[events.WindowEvent]
	var got []int
	root := task.Sequence(
		task.Func(func(cx *poll.Context) poll.Status {
			if cx.Tick() < 2 {
				return poll.Pending
			}
			late = ex.WindowEvents()
			return poll.Ready
		}),
		task.Func(func(cx *poll.Context) poll.Status {
			for {
				ev, st := late.PollNext(cx)
				if st != stream.Item {
					return poll.Pending
				}
				got = append(got, ev.Payload.(events.Resized).Width)
				if len(got) == 1 {
					return poll.Ready
				}
			}
		}),
	)
	require.NoError(t, ex.Start(root))

	assert.Equal(t, host.Wait, ex.Tick(resized(win, 1)))
	assert.Equal(t, host.Wait, ex.Tick(resized(win, 2)))
	assert.Equal(t, host.Exit, ex.Tick(resized(win, 3)))
	assert.Equal(t, []int{3}, got)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "unknown", State(7).String())
}
