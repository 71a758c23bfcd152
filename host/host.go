// Package host describes the contract between the executor and the
// synchronous event loop that drives it.
//
// A host loop owns the thread. It calls its handler once per event and once
// per idle tick (with a nil event), handing it a ControlFlow slot. The handler
// writes Exit to stop the loop; otherwise the loop blocks until the next event.
package host

import (
	"time"

	"github.com/casualjim/loopexec/events"
	"github.com/go-openapi/strfmt"
	"github.com/tidwall/gjson"
)

// ControlFlow tells the host loop what to do after the handler returns.
type ControlFlow uint8

const (
	// Wait blocks until the next event, then calls the handler again.
	Wait ControlFlow = iota
	// Exit stops the loop; the handler is not called again.
	Exit
)

func (c ControlFlow) String() string {
	if c == Exit {
		return "exit"
	}
	return "wait"
}

// Handler is invoked by the host loop for every event and idle tick.
type Handler func(ev Event, cf *ControlFlow)

// EventLoop is a host event loop. Run blocks until the loop stops, either
// because the handler asked it to or because its event source went away.
type EventLoop interface {
	Run(handler Handler) error
}

// Event is a raw host event. It may reference loop-internal state that is only
// valid during the handler call; Owned converts it into a record that can
// outlive the call, or reports false when there is nothing representable.
type Event interface {
	Owned() (events.Event, bool)
}

func stamp(t time.Time) strfmt.DateTime {
	if t.IsZero() {
		return strfmt.DateTime{}
	}
	return strfmt.DateTime(t)
}

// Device is raw device input.
type Device struct {
	ID      events.DeviceID
	Payload events.DevicePayload
	When    time.Time
}

// Owned returns a DeviceEvent, or false when the payload is missing.
func (d Device) Owned() (events.Event, bool) {
	if d.Payload == nil {
		return nil, false
	}
	return events.DeviceEvent{DeviceID: d.ID, Payload: d.Payload, Timestamp: stamp(d.When)}, true
}

// Window is raw window input.
type Window struct {
	ID      events.WindowID
	Payload events.WindowPayload
	When    time.Time
}

// Owned returns a WindowEvent, or false when the payload is missing.
func (w Window) Owned() (events.Event, bool) {
	if w.Payload == nil {
		return nil, false
	}
	return events.WindowEvent{WindowID: w.ID, Payload: w.Payload, Timestamp: stamp(w.When)}, true
}

// RedrawRequested asks for a window to be redrawn.
type RedrawRequested struct {
	ID   events.WindowID
	When time.Time
}

// Owned returns an events.Redraw for the window.
func (r RedrawRequested) Owned() (events.Event, bool) {
	return events.Redraw{WindowID: r.ID, Timestamp: stamp(r.When)}, true
}

// Lifecycle is a loop lifecycle signal.
type Lifecycle struct {
	Phase events.Phase
	When  time.Time
}

// Owned returns the lifecycle record. It always succeeds.
func (l Lifecycle) Owned() (events.Event, bool) {
	return events.Lifecycle{Phase: l.Phase, Timestamp: stamp(l.When)}, true
}

// User is an event the application posted into the loop.
type User struct {
	Name string
	Meta gjson.Result
	When time.Time
}

// Owned copies the user event. Meta is an immutable gjson result and is
// shared, not copied.
func (u User) Owned() (events.Event, bool) {
	return events.User{Name: u.Name, Meta: u.Meta, Timestamp: stamp(u.When)}, true
}

// StartCause says why the loop woke up.
type StartCause uint8

const (
	StartInit StartCause = iota
	StartWaitCancelled
	StartPoll
)

// NewEvents marks the start of a batch of events. It is loop bookkeeping and
// is never published.
type NewEvents struct {
	Cause StartCause
}

// Owned always reports false.
func (NewEvents) Owned() (events.Event, bool) { return nil, false }

// AboutToWait marks the end of a batch, right before the loop blocks. It is
// never published.
type AboutToWait struct{}

// Owned always reports false.
func (AboutToWait) Owned() (events.Event, bool) { return nil, false }

// Size is a window size in pixels or cells.
type Size struct {
	Width  int
	Height int
}

// ScaleFactorChanged hands the handler a slot it may rewrite to choose the new
// inner size. The slot belongs to the loop, so the event has no owned form.
type ScaleFactorChanged struct {
	ID           events.WindowID
	Scale        float64
	NewInnerSize *Size
}

// Owned always reports false; the size slot cannot outlive the call.
func (ScaleFactorChanged) Owned() (events.Event, bool) { return nil, false }
