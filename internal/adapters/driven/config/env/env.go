// Package env reads environment overrides for the docdesk settings.
package env

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Overrides are settings taken from the environment. Zero values mean the
// variable was not set.
type Overrides struct {
	APIURL     string        `env:"DOCDESK_API_URL"`
	Timeout    time.Duration `env:"DOCDESK_TIMEOUT"`
	Home       string        `env:"DOCDESK_HOME"`
	LogFile    string        `env:"DOCDESK_LOG_FILE"`
	DebounceMS int           `env:"DOCDESK_DEBOUNCE_MS"`
	Verbose    bool          `env:"DOCDESK_VERBOSE"`
}

// Load parses overrides from the process environment.
func Load() (Overrides, error) {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// LoadFrom parses overrides from vars instead of the process environment.
func LoadFrom(vars map[string]string) (Overrides, error) {
	var o Overrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: vars}); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply copies the set overrides onto settings.
func (o Overrides) Apply(settings *domain.AppSettings) {
	if u := strings.TrimSpace(o.APIURL); u != "" {
		settings.API.BaseURL = strings.TrimRight(u, "/")
	}
	if o.Timeout > 0 {
		settings.API.TimeoutSeconds = int(math.Ceil(o.Timeout.Seconds()))
	}
	if o.DebounceMS > 0 {
		settings.Search.DebounceMS = o.DebounceMS
	}
	if o.LogFile != "" {
		settings.Log.File = o.LogFile
	}
}
