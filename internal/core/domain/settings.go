package domain

import (
	"net/url"
	"time"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// APISettings holds the remote API connection settings.
type APISettings struct {
	// BaseURL is the API root, e.g. https://docs.example.com/api/v1.
	BaseURL string

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond float64
}

// Timeout returns the request timeout as a duration.
func (a APISettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// IsConfigured returns true if BaseURL is an absolute http(s) URL.
func (a APISettings) IsConfigured() bool {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SearchSettings holds search behaviour settings.
type SearchSettings struct {
	// DebounceMS is the suggestion debounce in milliseconds.
	DebounceMS int
}

// Debounce returns the debounce as a duration.
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// DocumentSettings holds document listing settings.
type DocumentSettings struct {
	// PageSize is the number of documents requested per page.
	PageSize int
}

// LogSettings holds logging settings.
type LogSettings struct {
	// File is an optional path for a rotating log file.
	File string
	// Verbose turns on debug logging without --verbose.
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	API       APISettings
	Search    SearchSettings
	Documents DocumentSettings
	Log       LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
			RatePerSecond:  10,
		},
		Search: SearchSettings{
			DebounceMS: int(DefaultSuggestDebounce / time.Millisecond),
		},
		Documents: DocumentSettings{
			PageSize: 20,
		},
	}
}
