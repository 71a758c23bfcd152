package host

import (
	"testing"
	"time"

	"github.com/casualjim/loopexec/events"
	"github.com/casualjim/loopexec/pkg/uuidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwned(t *testing.T) {
	win := uuidx.NewTyped[events.WindowID]()
	dev := uuidx.NewTyped[events.DeviceID]()
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("representable", func(t *testing.T) {
		tests := []struct {
			name string
			raw  Event
			kind events.Kind
		}{
			{"device", Device{ID: dev, Payload: events.Added{}, When: when}, events.KindDevice},
			{"window", Window{ID: win, Payload: events.CloseRequested{}}, events.KindWindow},
			{"redraw", RedrawRequested{ID: win}, events.KindRedraw},
			{"lifecycle", Lifecycle{Phase: events.PhaseSuspended}, events.KindLifecycle},
			{"user", User{Name: "x"}, events.KindUser},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ev, ok := tt.raw.Owned()
				require.True(t, ok)
				assert.Equal(t, tt.kind, ev.Kind())
			})
		}
	})

	t.Run("timestamps carry over", func(t *testing.T) {
		ev, ok := Device{ID: dev, Payload: events.Added{}, When: when}.Owned()
		require.True(t, ok)
		d, _ := events.AsDevice(ev)
		assert.Equal(t, when, time.Time(d.Timestamp))

		ev, _ = Window{ID: win, Payload: events.Destroyed{}}.Owned()
		w, _ := events.AsWindow(ev)
		assert.True(t, w.Timestamp.IsZero())
	})

	t.Run("not representable", func(t *testing.T) {
		size := &Size{Width: 10, Height: 10}
		for _, raw := range []Event{
			NewEvents{Cause: StartInit},
			AboutToWait{},
			ScaleFactorChanged{ID: win, Scale: 2, NewInnerSize: size},
			Device{ID: dev},
			Window{ID: win},
		} {
			_, ok := raw.Owned()
			assert.False(t, ok, "%T", raw)
		}
	})
}

func TestControlFlowString(t *testing.T) {
	assert.Equal(t, "wait", Wait.String())
	assert.Equal(t, "exit", Exit.String())
}
