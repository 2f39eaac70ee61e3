package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/services/servicestest"
)

func portsFor(sess *servicestest.Session) *Ports {
	return &Ports{
		Search:        sess.Search,
		Documents:     sess.Documents,
		Notifications: sess.Notifications,
		Dashboard:     sess.Dashboard,
	}
}

func newTestServer(t *testing.T) (*Server, *servicestest.Session) {
	t.Helper()
	sess := servicestest.SignedIn(t)
	server, err := NewServer(portsFor(sess))
	require.NoError(t, err)
	return server, sess
}

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
	})

	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, _ := newTestServer(t)
		assert.NotNil(t, server)
	})

	t.Run("optional ports may be nil", func(t *testing.T) {
		sess := servicestest.New(t)
		server, err := NewServer(&Ports{Search: sess.Search, Documents: sess.Documents})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	sess := servicestest.New(t)

	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{Documents: sess.Documents}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSearchService)
	})

	t.Run("nil document service returns error", func(t *testing.T) {
		ports := &Ports{Search: sess.Search}
		assert.ErrorIs(t, ports.Validate(), ErrMissingDocumentService)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		assert.NoError(t, portsFor(sess).Validate())
	})
}
