package slogx

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type kind string

func (k kind) String() string { return string(k) }

func TestAttrs(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		attr := Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.String())
	})

	t.Run("tick", func(t *testing.T) {
		attr := Tick(42)
		assert.Equal(t, KeyTick, attr.Key)
		assert.Equal(t, slog.KindUint64, attr.Value.Kind())
		assert.Equal(t, uint64(42), attr.Value.Uint64())
	})

	t.Run("kind", func(t *testing.T) {
		attr := Kind(kind("window"))
		assert.Equal(t, KeyKind, attr.Key)
		assert.Equal(t, "window", attr.Value.String())
	})

	t.Run("logger name", func(t *testing.T) {
		attr := LoggerName("executor")
		assert.Equal(t, KeyLoggerName, attr.Key)
		assert.Equal(t, "executor", attr.Value.String())
	})
}
