package events

// DevicePayload is the device-level part of a DeviceEvent.
type DevicePayload interface {
	PayloadKind() string
	devicePayload()
}

// Added reports a device was plugged in.
type Added struct{}

// Removed reports a device was unplugged.
type Removed struct{}

// MouseMotion is an unaccelerated pointer delta.
type MouseMotion struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// DeviceWheel is a scroll delta reported by a device.
type DeviceWheel struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Motion is movement on an arbitrary device axis.
type Motion struct {
	Axis  uint32  `json:"axis"`
	Value float64 `json:"value"`
}

// Button is a press or release of a device button.
type Button struct {
	Button uint32       `json:"button"`
	State  ElementState `json:"state"`
}

// Key is a raw key press or release, independent of any window focus.
type Key struct {
	Code  uint32       `json:"code"`
	Rune  rune         `json:"rune,omitempty"`
	State ElementState `json:"state"`
}

// Text is a character produced by a device.
type Text struct {
	Rune rune `json:"rune"`
}

func (Added) devicePayload()       {}
func (Removed) devicePayload()     {}
func (MouseMotion) devicePayload() {}
func (DeviceWheel) devicePayload() {}
func (Motion) devicePayload()      {}
func (Button) devicePayload()      {}
func (Key) devicePayload()         {}
func (Text) devicePayload()        {}

func (Added) PayloadKind() string       { return "added" }
func (Removed) PayloadKind() string     { return "removed" }
func (MouseMotion) PayloadKind() string { return "mouse_motion" }
func (DeviceWheel) PayloadKind() string { return "device_wheel" }
func (Motion) PayloadKind() string      { return "motion" }
func (Button) PayloadKind() string      { return "button" }
func (Key) PayloadKind() string         { return "key" }
func (Text) PayloadKind() string        { return "text" }

func init() {
	registerDevice[Added]()
	registerDevice[Removed]()
	registerDevice[MouseMotion]()
	registerDevice[DeviceWheel]()
	registerDevice[Motion]()
	registerDevice[Button]()
	registerDevice[Key]()
	registerDevice[Text]()
}
