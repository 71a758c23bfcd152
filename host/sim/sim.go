// Package sim provides a scripted, in-memory host event loop.
package sim

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/casualjim/loopexec/events"
	"github.com/casualjim/loopexec/host"
	"github.com/casualjim/loopexec/pkg/slogx"
	"github.com/casualjim/loopexec/pkg/uuidx"
)

// ErrScriptExhausted is returned by Run when every scripted event was
// delivered and the handler never asked the loop to exit.
var ErrScriptExhausted = errors.New("sim: script exhausted")

// Loop replays a script of raw events. After each event it delivers an
// AboutToWait idle tick, the way a real loop does before it blocks.
type Loop struct {
	mu         sync.Mutex
	script     []host.Event
	next       int
	directives []host.ControlFlow
	running    bool
	logger     *slog.Logger
}

// New creates a loop that will replay the given events in order.
func New(script ...host.Event) *Loop {
	return &Loop{
		script: script,
		logger: slog.Default().With(slogx.LoggerName("sim")),
	}
}

// Push appends events to the script. It may be called from the handler while
// the loop runs.
func (l *Loop) Push(evs ...host.Event) {
	l.mu.Lock()
	l.script = append(l.script, evs...)
	l.mu.Unlock()
}

// NewWindow allocates a window id for scripted window events.
func (l *Loop) NewWindow() events.WindowID {
	return uuidx.NewTyped[events.WindowID]()
}

// NewDevice allocates a device id for scripted device events.
func (l *Loop) NewDevice() events.DeviceID {
	return uuidx.NewTyped[events.DeviceID]()
}

// Directives returns what the handler answered, one entry per call.
func (l *Loop) Directives() []host.ControlFlow {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]host.ControlFlow(nil), l.directives...)
}

// Remaining reports how many scripted events have not been delivered yet.
func (l *Loop) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.script) - l.next
}

func (l *Loop) pop() (host.Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.next >= len(l.script) {
		return nil, false
	}
	ev := l.script[l.next]
	l.next++
	return ev, true
}

func (l *Loop) dispatch(handler host.Handler, ev host.Event) host.ControlFlow {
	cf := host.Wait
	handler(ev, &cf)
	l.mu.Lock()
	l.directives = append(l.directives, cf)
	l.mu.Unlock()
	return cf
}

// Run delivers the script to handler. It returns nil as soon as the handler
// answers Exit and ErrScriptExhausted when the script runs out first.
func (l *Loop) Run(handler host.Handler) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		panic("sim: loop is already running")
	}
	l.running = true
	l.mu.Unlock()

	for {
		ev, ok := l.pop()
		if !ok {
			l.logger.Debug("script exhausted")
			return ErrScriptExhausted
		}
		if l.dispatch(handler, ev) == host.Exit {
			return nil
		}
		if l.dispatch(handler, host.AboutToWait{}) == host.Exit {
			return nil
		}
	}
}
