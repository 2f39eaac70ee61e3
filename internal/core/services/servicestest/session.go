// Package servicestest wires the core services to a fake API server for
// adapter tests.
package servicestest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/api/apitest"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/services"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// Debounce is the suggestion delay used by test sessions.
const Debounce = 10 * time.Millisecond

// Session holds every service sharing one store and one fake server.
type Session struct {
	Server *apitest.Server
	Store  *state.Store
	Tokens *memory.TokenStore
	Config *memory.ConfigStore
	Client *api.Client

	// Journal is an empty upload journal for folder-watch tests.
	Journal *memory.UploadJournal

	Auth          *services.AuthService
	Documents     *services.DocumentService
	Notifications *services.NotificationService
	Dashboard     *services.DashboardService
	Search        *services.SearchService
	Users         *services.UserService
	Settings      *services.SettingsService
}

// New returns a signed-out session against a fresh fake server.
func New(t testing.TB) *Session {
	t.Helper()

	srv := apitest.NewServer(t)
	store := state.NewStore()
	tokens := memory.NewTokenStore()
	cfg := memory.NewConfigStore()

	client, err := api.New(api.Config{
		BaseURL:       srv.BaseURL(),
		Timeout:       5 * time.Second,
		RatePerSecond: -1,
		Token:         store.Auth.Token,
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Set("api.base_url", srv.BaseURL()))

	return &Session{
		Server:        srv,
		Store:         store,
		Tokens:        tokens,
		Config:        cfg,
		Client:        client,
		Journal:       memory.NewUploadJournal(),
		Auth:          services.NewAuthService(store, client, tokens),
		Documents:     services.NewDocumentService(store, client, tokens, 0),
		Notifications: services.NewNotificationService(store, client, tokens),
		Dashboard:     services.NewDashboardService(store, client, tokens),
		Search:        services.NewSearchService(store, client, client, tokens, Debounce),
		Users:         services.NewUserService(store, client, tokens),
		Settings:      services.NewSettingsService(cfg),
	}
}

// SignedIn returns a session logged in as apitest.Username.
func SignedIn(t testing.TB) *Session {
	t.Helper()

	s := New(t)
	err := s.Auth.Login(context.Background(), domain.Credentials{
		Username: apitest.Username,
		Password: apitest.Password,
	})
	require.NoError(t, err)
	return s
}
