package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		want       Capacity
	}{
		{
			name:       "both flags",
			descriptor: "/usr/bin/conduit -max-conns 200 -bw 50mbit",
			want:       Capacity{MaxConns: "200", Bandwidth: "50mbit"},
		},
		{
			name:       "underscore and long spellings",
			descriptor: "/usr/bin/conduit --max_conns 64 --bandwidth 10mbit",
			want:       Capacity{MaxConns: "64", Bandwidth: "10mbit"},
		},
		{
			name:       "max-conns only",
			descriptor: "/usr/bin/conduit -max-conns 128",
			want:       Capacity{MaxConns: "128", Bandwidth: "-"},
		},
		{
			name:       "no flags",
			descriptor: "/usr/bin/conduit -listen :8443",
			want:       NoCapacity(),
		},
		{
			name:       "flag at end of line",
			descriptor: "/usr/bin/conduit -bw",
			want:       NoCapacity(),
		},
		{
			name:       "flag followed by another flag",
			descriptor: "/usr/bin/conduit -max-conns -bw 10mbit",
			want:       Capacity{MaxConns: "-", Bandwidth: "10mbit"},
		},
		{
			name:       "systemd execstart wrapping",
			descriptor: "{ path=/usr/bin/conduit ; argv[]=/usr/bin/conduit -max-conns 200 -bw 50mbit ; ignore_errors=no }",
			want:       Capacity{MaxConns: "200", Bandwidth: "50mbit"},
		},
		{
			name:       "empty descriptor",
			descriptor: "",
			want:       NoCapacity(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCapacity(tt.descriptor))
		})
	}
}

func TestCapacityIsEmpty(t *testing.T) {
	assert.True(t, NoCapacity().IsEmpty())
	assert.False(t, Capacity{MaxConns: "10", Bandwidth: "-"}.IsEmpty())
	assert.False(t, Capacity{MaxConns: "-", Bandwidth: "5mbit"}.IsEmpty())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ok", StateOK.String())
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "down", StateDown.String())
	assert.Equal(t, "unknown", StateUnknown.String())
}
