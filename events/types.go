package events

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Kind classifies an event record.
type Kind uint8

const (
	KindDevice Kind = iota + 1
	KindWindow
	KindRedraw
	KindLifecycle
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindDevice:
		return "device"
	case KindWindow:
		return "window"
	case KindRedraw:
		return "redraw"
	case KindLifecycle:
		return "lifecycle"
	case KindUser:
		return "user"
	default:
		return "unknown"
	}
}

// Event is an owned snapshot of one host loop event.
type Event interface {
	Kind() Kind
	loopEvent()
}

// DeviceID identifies an input device. It is opaque to the core.
type DeviceID uuid.UUID

func (d DeviceID) String() string { return uuid.UUID(d).String() }

// WindowID identifies a window owned by the host loop.
type WindowID uuid.UUID

func (w WindowID) String() string { return uuid.UUID(w).String() }

// DeviceEvent is the device projection: raw input tied to a device rather than a window.
type DeviceEvent struct {
	DeviceID  DeviceID
	Payload   DevicePayload
	Timestamp strfmt.DateTime
}

func (DeviceEvent) loopEvent() {}
func (DeviceEvent) Kind() Kind { return KindDevice }

// WindowEvent is the window projection: input and state changes for one window.
type WindowEvent struct {
	WindowID  WindowID
	Payload   WindowPayload
	Timestamp strfmt.DateTime
}

func (WindowEvent) loopEvent() {}
func (WindowEvent) Kind() Kind { return KindWindow }

// Redraw reports that a window should be redrawn. It is window scoped but is
// not a WindowEvent, so neither projection matches it.
type Redraw struct {
	WindowID  WindowID
	Timestamp strfmt.DateTime
}

func (Redraw) loopEvent() {}
func (Redraw) Kind() Kind { return KindRedraw }

// Phase is a loop lifecycle phase.
type Phase string

const (
	PhaseStarted   Phase = "started"
	PhaseResumed   Phase = "resumed"
	PhaseSuspended Phase = "suspended"
	PhaseExiting   Phase = "exiting"
)

// Lifecycle signals a change in the loop or application state.
type Lifecycle struct {
	Phase     Phase
	Timestamp strfmt.DateTime
}

func (Lifecycle) loopEvent() {}
func (Lifecycle) Kind() Kind { return KindLifecycle }

// User is an event posted by the application into the host loop.
type User struct {
	Name      string
	Meta      gjson.Result
	Timestamp strfmt.DateTime
}

func (User) loopEvent() {}
func (User) Kind() Kind { return KindUser }

// AsDevice returns the device projection of e, if e is device scoped.
func AsDevice(e Event) (DeviceEvent, bool) {
	d, ok := e.(DeviceEvent)
	return d, ok
}

// AsWindow returns the window projection of e, if e is window scoped.
func AsWindow(e Event) (WindowEvent, bool) {
	w, ok := e.(WindowEvent)
	return w, ok
}

// ElementState is the state of a key or button.
type ElementState string

const (
	Pressed  ElementState = "pressed"
	Released ElementState = "released"
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// MouseButton names a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota + 1
	MouseMiddle
	MouseRight
	MouseOther
)
