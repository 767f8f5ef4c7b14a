package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits exactly", "edge01", 6, "edge01"},
		{"shorter than width", "edge", 10, "edge"},
		{"truncated with marker", "conduit-relay-eu-west-1", 10, "conduit-r~"},
		{"width one", "edge01", 1, "~"},
		{"width zero", "edge01", 0, ""},
		{"negative width", "edge01", -3, ""},
		{"empty input", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.width, 0))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "edge  ", Pad("edge", 6))
	assert.Equal(t, "edge0~", Pad("edge0123", 6))
	assert.Equal(t, "      ", Pad("", 6))
	assert.Len(t, Pad("anything", 12), 12)
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "  42", PadLeft("42", 4))
	assert.Equal(t, "123~", PadLeft("12345", 4))
	assert.Len(t, PadLeft("7", 8), 8)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already safe", "conduit-edge01.service", "conduit-edge01.service"},
		{"slashes and spaces", "conduit/relay 2", "conduit_relay_2"},
		{"colons", "conduit:8443", "conduit_8443"},
		{"non-ascii", "conduit-émile", "conduit-_mile"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestJoinOrDefault(t *testing.T) {
	assert.Equal(t, "none", JoinOrDefault(nil, "none"))
	assert.Equal(t, "a", JoinOrDefault([]string{"a"}, "none"))
	assert.Equal(t, "a; b", JoinOrDefault([]string{"a", "b"}, "none"))
}
