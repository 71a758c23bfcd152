// Package events defines the owned event records that flow from the host
// event loop through the broker to stream adapters.
//
// A record is an immutable value with no references into host loop state, so
// it can outlive the callback that produced it and be duplicated across any
// number of subscribers.
//
// Event hierarchy:
//   - Event: base interface for all records
//     ├── DeviceEvent: device-scoped input (raw motion, buttons, keys)
//     ├── WindowEvent: window-scoped input and state (resize, close, keyboard)
//     ├── Redraw: a window asked to be redrawn
//     ├── Lifecycle: loop started, resumed, suspended, exiting
//     └── User: application-posted events
//
// Two projections pick out one category each. AsDevice and AsWindow never both
// succeed for the same record; Redraw, Lifecycle and User match neither.
//
//	switch e := ev.(type) {
//	case events.WindowEvent:
//	    if _, ok := e.Payload.(events.CloseRequested); ok {
//	        // stop
//	    }
//	case events.DeviceEvent:
//	    // raw device input
//	}
//
// Every record marshals to a JSON object tagged with a "type" field, and
// payloads carry a "kind" field resolved through a registry on decode. See
// ToJSON, FromJSON and PayloadKinds.
package events
