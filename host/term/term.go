// Package term runs the executor on a terminal. The terminal is treated as a
// single window; the keyboard and the mouse are its two devices.
package term

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/casualjim/loopexec/events"
	"github.com/casualjim/loopexec/host"
	"github.com/casualjim/loopexec/pkg/slogx"
	"github.com/casualjim/loopexec/pkg/uuidx"
	"github.com/fogfish/opts"
	"github.com/gdamore/tcell/v2"
)

// WithLogger sets the logger used for screen errors.
var WithLogger = opts.ForName[Loop, *slog.Logger]("logger")

// Loop is a host event loop backed by a tcell screen.
type Loop struct {
	screen   tcell.Screen
	logger   *slog.Logger
	window   events.WindowID
	keyboard events.DeviceID
	mouse    events.DeviceID

	finiOnce sync.Once

	// mouse state between events
	buttons tcell.ButtonMask
	lastX   int
	lastY   int
	seen    bool

	pasting bool
	paste   strings.Builder
}

// New wraps an uninitialized screen. Run initializes and finalizes it.
//
// The loop allocates one window id for the terminal and one device id each for
// the keyboard and the mouse; every converted event carries one of them.
//
// Parameters:
//   - screen: a tcell screen, real or tcell.NewSimulationScreen in tests
//   - options: optional configuration (WithLogger)
//
// Returns:
//   - A loop ready to be handed to loopexec.New.
func New(screen tcell.Screen, options ...opts.Option[Loop]) *Loop {
	l := &Loop{
		screen:   screen,
		logger:   slog.Default().With(slogx.LoggerName("term")),
		window:   uuidx.NewTyped[events.WindowID](),
		keyboard: uuidx.NewTyped[events.DeviceID](),
		mouse:    uuidx.NewTyped[events.DeviceID](),
	}
	if err := opts.Apply(l, options); err != nil {
		panic(err)
	}
	return l
}

// NewTerminal creates a loop on the process terminal.
func NewTerminal(options ...opts.Option[Loop]) (*Loop, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return New(screen, options...), nil
}

// Window is the id used for every window event of this terminal.
func (l *Loop) Window() events.WindowID { return l.window }

// Keyboard is the device id of the keyboard.
func (l *Loop) Keyboard() events.DeviceID { return l.keyboard }

// Mouse is the device id of the mouse.
func (l *Loop) Mouse() events.DeviceID { return l.mouse }

// Screen exposes the underlying screen for drawing.
func (l *Loop) Screen() tcell.Screen { return l.screen }

// Post injects a user event. It is safe to call from any goroutine once Run
// has started.
func (l *Loop) Post(u events.User) error {
	if err := l.screen.PostEvent(tcell.NewEventInterrupt(u)); err != nil {
		return fmt.Errorf("post user event %q: %w", u.Name, err)
	}
	return nil
}

// Stop finalizes the screen, which makes Run return after a final Exiting
// lifecycle event.
func (l *Loop) Stop() {
	l.finiOnce.Do(l.screen.Fini)
}

// Run initializes the screen and feeds its events to handler until the
// handler answers Exit or the screen is finalized.
func (l *Loop) Run(handler host.Handler) error {
	if err := l.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer l.Stop()
	l.screen.EnableMouse()
	l.screen.EnablePaste()

	cf := host.Wait
	dispatch := func(ev host.Event) bool {
		handler(ev, &cf)
		return cf == host.Exit
	}

	if dispatch(host.Lifecycle{Phase: events.PhaseStarted, When: time.Now()}) {
		return nil
	}
	w, h := l.screen.Size()
	if dispatch(host.Window{ID: l.window, Payload: events.Resized{Width: w, Height: h}, When: time.Now()}) {
		return nil
	}

	for {
		ev := l.screen.PollEvent()
		if ev == nil {
			l.logger.Debug("screen finalized")
			dispatch(host.Lifecycle{Phase: events.PhaseExiting, When: time.Now()})
			return nil
		}
		for _, raw := range l.convert(ev) {
			if dispatch(raw) {
				return nil
			}
		}
		if dispatch(host.AboutToWait{}) {
			return nil
		}
	}
}

// eventTime reads the event timestamp. Events built as struct literals
// instead of through tcell constructors carry no timestamp and read as now.
func eventTime(ev tcell.Event) (when time.Time) {
	defer func() {
		if recover() != nil {
			when = time.Now()
		}
	}()
	return ev.When()
}

func (l *Loop) convert(ev tcell.Event) []host.Event {
	when := eventTime(ev)
	switch e := ev.(type) {
	case *tcell.EventKey:
		return l.convertKey(e, when)

	case *tcell.EventMouse:
		return l.convertMouse(e, when)

	case *tcell.EventResize:
		w, h := e.Size()
		return []host.Event{host.Window{ID: l.window, Payload: events.Resized{Width: w, Height: h}, When: when}}

	case *tcell.EventFocus:
		return []host.Event{host.Window{ID: l.window, Payload: events.Focused{Focused: e.Focused}, When: when}}

	case *tcell.EventPaste:
		if e.Start() {
			l.pasting = true
			l.paste.Reset()
			return nil
		}
		l.pasting = false
		text := l.paste.String()
		l.paste.Reset()
		if text == "" {
			return nil
		}
		return []host.Event{host.Window{ID: l.window, Payload: events.ReceivedText{Text: text}, When: when}}

	case *tcell.EventInterrupt:
		if u, ok := e.Data().(events.User); ok {
			return []host.Event{host.User{Name: u.Name, Meta: u.Meta, When: when}}
		}
		return []host.Event{host.User{Name: fmt.Sprint(e.Data()), When: when}}

	case *tcell.EventError:
		l.logger.Warn("screen error", slogx.Error(e))
		return nil

	default:
		return nil
	}
}

func (l *Loop) convertKey(e *tcell.EventKey, when time.Time) []host.Event {
	var r rune
	if e.Key() == tcell.KeyRune {
		r = e.Rune()
	}
	if l.pasting {
		switch {
		case r != 0:
			l.paste.WriteRune(r)
		case e.Key() == tcell.KeyEnter:
			l.paste.WriteByte('\n')
		case e.Key() == tcell.KeyTab:
			l.paste.WriteByte('\t')
		}
		return nil
	}

	code := uint32(e.Key())
	return []host.Event{
		host.Device{ID: l.keyboard, Payload: events.Key{Code: code, Rune: r, State: events.Pressed}, When: when},
		host.Window{ID: l.window, Payload: events.KeyboardInput{
			Code:  code,
			Rune:  r,
			Mods:  convertMod(e.Modifiers()),
			State: events.Pressed,
		}, When: when},
	}
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button events.MouseButton
}{
	{tcell.Button1, events.MouseLeft},
	{tcell.Button2, events.MouseRight},
	{tcell.Button3, events.MouseMiddle},
}

func (l *Loop) convertMouse(e *tcell.EventMouse, when time.Time) []host.Event {
	var out []host.Event
	x, y := e.Position()
	mods := convertMod(e.Modifiers())

	if !l.seen || x != l.lastX || y != l.lastY {
		if l.seen {
			out = append(out, host.Device{ID: l.mouse, Payload: events.MouseMotion{
				DX: float64(x - l.lastX),
				DY: float64(y - l.lastY),
			}, When: when})
		}
		out = append(out, host.Window{ID: l.window, Payload: events.CursorMoved{X: x, Y: y, Mods: mods}, When: when})
		l.lastX, l.lastY, l.seen = x, y, true
	}

	btns := e.Buttons()
	for _, b := range mouseButtons {
		was, is := l.buttons&b.mask != 0, btns&b.mask != 0
		if was == is {
			continue
		}
		state := events.Released
		if is {
			state = events.Pressed
		}
		out = append(out, host.Window{ID: l.window, Payload: events.MouseInput{Button: b.button, State: state, Mods: mods}, When: when})
	}
	l.buttons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if dx, dy := wheelDelta(btns); dx != 0 || dy != 0 {
		out = append(out,
			host.Device{ID: l.mouse, Payload: events.DeviceWheel{DX: dx, DY: dy}, When: when},
			host.Window{ID: l.window, Payload: events.MouseWheel{DX: dx, DY: dy}, When: when},
		)
	}
	return out
}

func wheelDelta(b tcell.ButtonMask) (dx, dy float64) {
	if b&tcell.WheelUp != 0 {
		dy++
	}
	if b&tcell.WheelDown != 0 {
		dy--
	}
	if b&tcell.WheelLeft != 0 {
		dx--
	}
	if b&tcell.WheelRight != 0 {
		dx++
	}
	return dx, dy
}

func convertMod(m tcell.ModMask) events.Modifiers {
	var result events.Modifiers
	if m&tcell.ModShift != 0 {
		result |= events.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= events.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= events.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= events.ModMeta
	}
	return result
}
