package events

// WindowPayload is the window-level part of a WindowEvent.
type WindowPayload interface {
	PayloadKind() string
	windowPayload()
}

// Resized carries the new inner size of the window.
type Resized struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Moved carries the new outer position of the window.
type Moved struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// Destroyed is sent once the window is gone.
type Destroyed struct{}

// Focused reports focus gain or loss.
type Focused struct {
	Focused bool `json:"focused"`
}

// KeyboardInput is a key event delivered to the focused window.
type KeyboardInput struct {
	Code  uint32       `json:"code"`
	Rune  rune         `json:"rune,omitempty"`
	Mods  Modifiers    `json:"mods,omitempty"`
	State ElementState `json:"state"`
}

// ReceivedText is text delivered to the window, e.g. from a paste.
type ReceivedText struct {
	Text string `json:"text"`
}

// CursorMoved reports the cursor position in window coordinates.
type CursorMoved struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Mods Modifiers `json:"mods,omitempty"`
}

// CursorEntered is sent when the cursor enters the window.
type CursorEntered struct{}

// CursorLeft is sent when the cursor leaves the window.
type CursorLeft struct{}

// MouseInput is a mouse button press or release over the window.
type MouseInput struct {
	Button MouseButton  `json:"button"`
	State  ElementState `json:"state"`
	Mods   Modifiers    `json:"mods,omitempty"`
}

// MouseWheel is a scroll over the window.
type MouseWheel struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (Resized) windowPayload()        {}
func (Moved) windowPayload()          {}
func (CloseRequested) windowPayload() {}
func (Destroyed) windowPayload()      {}
func (Focused) windowPayload()        {}
func (KeyboardInput) windowPayload()  {}
func (ReceivedText) windowPayload()   {}
func (CursorMoved) windowPayload()    {}
func (CursorEntered) windowPayload()  {}
func (CursorLeft) windowPayload()     {}
func (MouseInput) windowPayload()     {}
func (MouseWheel) windowPayload()     {}

func (Resized) PayloadKind() string        { return "resized" }
func (Moved) PayloadKind() string          { return "moved" }
func (CloseRequested) PayloadKind() string { return "close_requested" }
func (Destroyed) PayloadKind() string      { return "destroyed" }
func (Focused) PayloadKind() string        { return "focused" }
func (KeyboardInput) PayloadKind() string  { return "keyboard_input" }
func (ReceivedText) PayloadKind() string   { return "received_text" }
func (CursorMoved) PayloadKind() string    { return "cursor_moved" }
func (CursorEntered) PayloadKind() string  { return "cursor_entered" }
func (CursorLeft) PayloadKind() string     { return "cursor_left" }
func (MouseInput) PayloadKind() string     { return "mouse_input" }
func (MouseWheel) PayloadKind() string     { return "mouse_wheel" }

func init() {
	registerWindow[Resized]()
	registerWindow[Moved]()
	registerWindow[CloseRequested]()
	registerWindow[Destroyed]()
	registerWindow[Focused]()
	registerWindow[KeyboardInput]()
	registerWindow[ReceivedText]()
	registerWindow[CursorMoved]()
	registerWindow[CursorEntered]()
	registerWindow[CursorLeft]()
	registerWindow[MouseInput]()
	registerWindow[MouseWheel]()
}
