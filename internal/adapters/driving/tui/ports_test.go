package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/services/servicestest"
)

func TestNewPorts(t *testing.T) {
	sess := servicestest.New(t)

	ports := NewPorts(sess.Search, sess.Documents, sess.Notifications)

	require.NotNil(t, ports)
	assert.Equal(t, sess.Search, ports.Search)
	assert.Equal(t, sess.Documents, ports.Documents)
	assert.Equal(t, sess.Notifications, ports.Notifications)
	assert.Nil(t, ports.Dashboard)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	sess := servicestest.New(t)

	tests := []struct {
		name    string
		mutate  func(p *Ports)
		wantErr error
	}{
		{"all set", func(*Ports) {}, nil},
		{"optional ports missing", func(p *Ports) {
			p.Auth = nil
			p.Dashboard = nil
			p.Settings = nil
		}, nil},
		{"missing search", func(p *Ports) { p.Search = nil }, ErrMissingSearchService},
		{"missing documents", func(p *Ports) { p.Documents = nil }, ErrMissingDocumentService},
		{"missing notifications", func(p *Ports) { p.Notifications = nil }, ErrMissingNotificationService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports := portsFor(sess)
			tt.mutate(ports)

			err := ports.Validate()

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
