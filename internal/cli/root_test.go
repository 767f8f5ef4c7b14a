package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["dashboard"], "dashboard command registered")
	assert.True(t, names["init"], "init command registered")
	assert.True(t, names["version"], "version command registered")
}

func TestRootConfigFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestDashboardAlias(t *testing.T) {
	assert.Contains(t, dashboardCmd.Aliases, "dash")
}

func TestDashboardFlags(t *testing.T) {
	for _, name := range []string{"interval", "interface", "width", "concurrency"} {
		assert.NotNil(t, dashboardCmd.Flags().Lookup(name), "flag %s", name)
	}
}
