package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidatePositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "3", false},
		{"large", "120", false},
		{"zero", "0", true},
		{"negative", "-1", true},
		{"non-numeric", "three", true},
		{"empty", "", true},
		{"decimal", "2.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePositiveInt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitFileShape(t *testing.T) {
	out, err := yaml.Marshal(initFile{Refresh: "5s", Interface: "eth0", MaxWidth: 100})
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "5s", back["refresh"])
	assert.Equal(t, "eth0", back["interface"])
	assert.Equal(t, 100, back["max_width"])
}

func TestInitFileOmitsEmptyInterface(t *testing.T) {
	out, err := yaml.Marshal(initFile{Refresh: "3s", MaxWidth: 120})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "interface")
}
