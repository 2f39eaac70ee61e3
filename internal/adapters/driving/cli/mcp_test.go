package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/services/servicestest"
)

func TestMCPCmd_HasServe(t *testing.T) {
	var names []string
	for _, c := range mcpCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_NotSignedIn(t *testing.T) {
	_, err := execute(t, servicestest.New(t), "mcp", "serve")

	assert.ErrorIs(t, err, ErrNotSignedIn)
}
