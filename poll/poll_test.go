package poll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ctxKey struct{}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "ready", Ready.String())
}

func TestNewContext(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cx := NewContext(nil, 3, nil) //nolint:staticcheck // nil context is replaced
		assert.NotNil(t, cx.Context())
		assert.NotNil(t, cx.Waker())
		assert.Equal(t, uint64(3), cx.Tick())
		assert.NotPanics(t, cx.Waker().Wake)
	})

	t.Run("carries values", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ctxKey{}, "v")
		cx := NewContext(ctx, 1, NoopWaker())
		assert.Equal(t, "v", cx.Context().Value(ctxKey{}))
	})

	t.Run("background", func(t *testing.T) {
		cx := Background()
		assert.Equal(t, uint64(0), cx.Tick())
	})
}
