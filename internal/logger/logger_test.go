package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferLoggerRecords(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("cycle %d starting", 3)
	l.Info("collected %d rows", 5)
	l.Warn("docker roster query failed")
	l.Error("cache write failed: %v", "disk full")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "cycle 3 starting", l.Messages[0].Message)
	assert.Equal(t, "collected 5 rows", l.Messages[1].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.True(t, l.HasLevel("error"))
	assert.False(t, l.HasLevel("fatal"))
}

func TestBufferLoggerClear(t *testing.T) {
	l := NewBufferLogger()
	l.Info("something")
	require.NotEmpty(t, l.Messages)

	l.Clear()
	assert.Empty(t, l.Messages)
	assert.False(t, l.HasLevel("info"))
}

func TestNoopDiscards(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("d")
		l.Info("i")
		l.Warn("w")
		l.Error("e")
	})
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("routed")

	require.Len(t, buf.Messages, 1)
	assert.Equal(t, "routed", buf.Messages[0].Message)
}
