package events

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	deviceJSON    = `{"type":"device"}`
	windowJSON    = `{"type":"window"}`
	redrawJSON    = `{"type":"redraw"}`
	lifecycleJSON = `{"type":"lifecycle"}`
	userJSON      = `{"type":"user"}`
)

// ToJSON marshals any event record into its tagged JSON form.
func ToJSON(e Event) ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes a tagged JSON record produced by ToJSON.
func FromJSON(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}

	switch typ := gjson.GetBytes(data, "type").String(); typ {
	case "device":
		var e DeviceEvent
		err := e.UnmarshalJSON(data)
		return e, err
	case "window":
		var e WindowEvent
		err := e.UnmarshalJSON(data)
		return e, err
	case "redraw":
		var e Redraw
		err := e.UnmarshalJSON(data)
		return e, err
	case "lifecycle":
		var e Lifecycle
		err := e.UnmarshalJSON(data)
		return e, err
	case "user":
		var e User
		err := e.UnmarshalJSON(data)
		return e, err
	default:
		return nil, fmt.Errorf("unknown event type: %q", typ)
	}
}

func marshalPayload(kind string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return sjson.SetBytes(b, "kind", kind)
}

func checkType(data []byte, expected string) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}
	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != expected {
		return fmt.Errorf("missing or invalid type, expected '%s'", expected)
	}
	return nil
}

func required(data []byte, field string) (gjson.Result, error) {
	res := gjson.GetBytes(data, field)
	if !res.Exists() {
		return res, fmt.Errorf("missing required field '%s'", field)
	}
	return res, nil
}

// MarshalJSON implements custom JSON marshaling for DeviceEvent
func (d DeviceEvent) MarshalJSON() ([]byte, error) {
	if d.Payload == nil {
		return nil, fmt.Errorf("device event has no payload")
	}
	result := []byte(deviceJSON)

	var err error
	result, err = sjson.SetBytes(result, "device_id", d.DeviceID.String())
	if err != nil {
		return nil, err
	}

	payload, err := marshalPayload(d.Payload.PayloadKind(), d.Payload)
	if err != nil {
		return nil, err
	}
	result, err = sjson.SetRawBytes(result, "payload", payload)
	if err != nil {
		return nil, err
	}

	if !d.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", d.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for DeviceEvent
func (d *DeviceEvent) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "device"); err != nil {
		return err
	}

	id, err := required(data, "device_id")
	if err != nil {
		return err
	}
	if err := (*uuid.UUID)(&d.DeviceID).UnmarshalText([]byte(id.String())); err != nil {
		return fmt.Errorf("invalid device_id: %w", err)
	}

	payload, err := required(data, "payload")
	if err != nil {
		return err
	}
	kind := payload.Get("kind")
	if !kind.Exists() {
		return fmt.Errorf("missing required field 'payload.kind'")
	}
	d.Payload, err = lookup(devicePayloads, kind.String(), []byte(payload.Raw))
	if err != nil {
		return err
	}

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := d.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	return nil
}

// MarshalJSON implements custom JSON marshaling for WindowEvent
func (w WindowEvent) MarshalJSON() ([]byte, error) {
	if w.Payload == nil {
		return nil, fmt.Errorf("window event has no payload")
	}
	result := []byte(windowJSON)

	var err error
	result, err = sjson.SetBytes(result, "window_id", w.WindowID.String())
	if err != nil {
		return nil, err
	}

	payload, err := marshalPayload(w.Payload.PayloadKind(), w.Payload)
	if err != nil {
		return nil, err
	}
	result, err = sjson.SetRawBytes(result, "payload", payload)
	if err != nil {
		return nil, err
	}

	if !w.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", w.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for WindowEvent
func (w *WindowEvent) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "window"); err != nil {
		return err
	}

	id, err := required(data, "window_id")
	if err != nil {
		return err
	}
	if err := (*uuid.UUID)(&w.WindowID).UnmarshalText([]byte(id.String())); err != nil {
		return fmt.Errorf("invalid window_id: %w", err)
	}

	payload, err := required(data, "payload")
	if err != nil {
		return err
	}
	kind := payload.Get("kind")
	if !kind.Exists() {
		return fmt.Errorf("missing required field 'payload.kind'")
	}
	w.Payload, err = lookup(windowPayloads, kind.String(), []byte(payload.Raw))
	if err != nil {
		return err
	}

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := w.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	return nil
}

// MarshalJSON implements custom JSON marshaling for Redraw
func (r Redraw) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes([]byte(redrawJSON), "window_id", r.WindowID.String())
	if err != nil {
		return nil, err
	}
	if !r.Timestamp.IsZero() {
		return sjson.SetBytes(result, "timestamp", r.Timestamp.String())
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Redraw
func (r *Redraw) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "redraw"); err != nil {
		return err
	}
	id, err := required(data, "window_id")
	if err != nil {
		return err
	}
	if err := (*uuid.UUID)(&r.WindowID).UnmarshalText([]byte(id.String())); err != nil {
		return fmt.Errorf("invalid window_id: %w", err)
	}
	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := r.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	return nil
}

// MarshalJSON implements custom JSON marshaling for Lifecycle
func (l Lifecycle) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes([]byte(lifecycleJSON), "phase", string(l.Phase))
	if err != nil {
		return nil, err
	}
	if !l.Timestamp.IsZero() {
		return sjson.SetBytes(result, "timestamp", l.Timestamp.String())
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Lifecycle
func (l *Lifecycle) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "lifecycle"); err != nil {
		return err
	}
	phase, err := required(data, "phase")
	if err != nil {
		return err
	}
	l.Phase = Phase(phase.String())
	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := l.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	return nil
}

// MarshalJSON implements custom JSON marshaling for User
func (u User) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes([]byte(userJSON), "name", u.Name)
	if err != nil {
		return nil, err
	}
	if u.Meta.Exists() {
		result, err = sjson.SetRawBytes(result, "meta", []byte(u.Meta.Raw))
		if err != nil {
			return nil, err
		}
	}
	if !u.Timestamp.IsZero() {
		return sjson.SetBytes(result, "timestamp", u.Timestamp.String())
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for User
func (u *User) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "user"); err != nil {
		return err
	}
	name, err := required(data, "name")
	if err != nil {
		return err
	}
	u.Name = name.String()
	if meta := gjson.GetBytes(data, "meta"); meta.Exists() {
		u.Meta = meta
	}
	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := u.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	return nil
}
