package events

import (
	"fmt"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type payloadDecoder[I any] func(data []byte) (I, error)

var (
	devicePayloads = orderedmap.New[string, payloadDecoder[DevicePayload]]()
	windowPayloads = orderedmap.New[string, payloadDecoder[WindowPayload]]()
)

func registerDevice[P DevicePayload]() {
	var zero P
	devicePayloads.Set(zero.PayloadKind(), func(data []byte) (DevicePayload, error) {
		p, err := decodePayload[P](data)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

func registerWindow[P WindowPayload]() {
	var zero P
	windowPayloads.Set(zero.PayloadKind(), func(data []byte) (WindowPayload, error) {
		p, err := decodePayload[P](data)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

func decodePayload[P any](data []byte) (P, error) {
	var p P
	if err := json.Unmarshal(data, &p); err != nil {
		return p, err
	}
	return p, nil
}

// PayloadKinds lists the registered payload kinds, device kinds first, each
// group in registration order.
func PayloadKinds() []string {
	kinds := make([]string, 0, devicePayloads.Len()+windowPayloads.Len())
	for pair := devicePayloads.Oldest(); pair != nil; pair = pair.Next() {
		kinds = append(kinds, pair.Key)
	}
	for pair := windowPayloads.Oldest(); pair != nil; pair = pair.Next() {
		kinds = append(kinds, pair.Key)
	}
	return kinds
}

func lookup[I any](registry *orderedmap.OrderedMap[string, payloadDecoder[I]], kind string, data []byte) (I, error) {
	decode, ok := registry.Get(kind)
	if !ok {
		var zero I
		return zero, fmt.Errorf("unknown payload kind '%s'", kind)
	}
	return decode(data)
}
