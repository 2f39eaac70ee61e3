// Command docdesk is the terminal client for the document management API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/cache"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdesk-cli/internal/core/services"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errReported marks a command failure cobra has already printed.
var errReported = errors.New("command failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	overrides, err := env.Load()
	if err != nil {
		return err
	}
	if overrides.Verbose {
		logger.SetVerbose(true)
	}

	configDir := overrides.Home
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(cfg)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	overrides.Apply(settings)
	if settings.Log.Verbose {
		logger.SetVerbose(true)
	}

	if err := logger.SetFile(settings.Log.File); err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logger.Close()

	var dataDir string
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	store := state.NewStore()
	rate := settings.API.RatePerSecond
	if rate == 0 {
		rate = -1
	}
	client, err := api.New(api.Config{
		BaseURL:       settings.API.BaseURL,
		Timeout:       settings.API.Timeout(),
		RatePerSecond: rate,
		Token:         store.Auth.Token,
	})
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}
	logger.Debug("API base URL: %s", settings.API.BaseURL)

	tokens := db.TokenStore()
	cli.SetServices(cli.Services{
		Auth:          services.NewAuthService(store, client, tokens),
		Documents:     services.NewDocumentService(store, client, tokens, settings.Documents.PageSize),
		Notifications: services.NewNotificationService(store, client, tokens),
		Dashboard:     services.NewDashboardService(store, client, tokens),
		Search: services.NewSearchService(store, client, cache.NewSuggestions(client, sessionUser(store), 0),
			tokens, settings.Search.Debounce()),
		Users:    services.NewUserService(store, client, tokens),
		Settings: settingsService,
		Journal:  db.UploadJournal(),
	})
	cli.SetVersion(version)

	if err := cli.Execute(ctx); err != nil {
		return errReported
	}
	return nil
}

// sessionUser returns the id of the signed-in user, or "" when signed out.
func sessionUser(store *state.Store) func() string {
	return func() string {
		if u := store.Auth.Snapshot().Session.User; u != nil {
			return u.ID
		}
		return ""
	}
}
