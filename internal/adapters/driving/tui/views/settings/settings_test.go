package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/services"
)

func loadedView(t *testing.T) (*View, *services.SettingsService) {
	t.Helper()
	svc := services.NewSettingsService(memory.NewConfigStore())
	view := NewView(nil, nil, svc)
	view.SetDimensions(100, 30)
	run(t, view, view.Init())
	return view, svc
}

func run(t *testing.T, view *View, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	view.Update(msg)
	return msg
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// edit replaces the selected field's value and saves it.
func edit(t *testing.T, view *View, value string) tea.Msg {
	t.Helper()
	view.Update(key("enter"))
	require.True(t, view.Editing())
	view.input.SetValue(value)
	_, cmd := view.Update(key("enter"))
	msg := run(t, view, cmd)
	if saved, ok := msg.(messages.SettingsSaved); ok && saved.Err == nil {
		// Saving triggers a reload
		_, reload := view.Update(msg)
		run(t, view, reload)
	}
	return msg
}

func TestView_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := run(t, view, view.Init())

	assert.Equal(t, messages.SettingsLoaded{Err: ErrNoSettingsService}, msg)
	assert.Nil(t, view.Settings())
	assert.Contains(t, view.View(), "Error:")

	_, cmd := view.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.False(t, view.Editing())
	_, cmd = view.Update(key("D"))
	assert.Nil(t, cmd)
}

func TestView_Load(t *testing.T) {
	view, _ := loadedView(t)

	require.NoError(t, view.Err())
	require.NotNil(t, view.Settings())
	assert.Equal(t, domain.DefaultBaseURL, view.Settings().API.BaseURL)

	out := view.View()
	assert.Contains(t, out, "API base URL: "+domain.DefaultBaseURL)
	assert.Contains(t, out, "Suggestion debounce (ms): 300")
	assert.Contains(t, out, "Log file: Not Set")
	assert.Contains(t, out, "Configuration is valid")
}

func TestView_EditBaseURL(t *testing.T) {
	view, svc := loadedView(t)

	msg := edit(t, view, "https://docs.example.com/api/v1/")

	assert.Equal(t, messages.SettingsSaved{}, msg)
	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/api/v1", got.API.BaseURL)
	assert.Equal(t, "https://docs.example.com/api/v1", view.Settings().API.BaseURL)
	assert.Contains(t, view.View(), "API base URL saved")
}

func TestView_EditBaseURL_Invalid(t *testing.T) {
	view, svc := loadedView(t)

	msg := edit(t, view, "not a url")

	saved := msg.(messages.SettingsSaved)
	assert.ErrorIs(t, saved.Err, domain.ErrInvalidInput)
	assert.ErrorIs(t, view.Err(), domain.ErrInvalidInput)
	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBaseURL, got.API.BaseURL)
}

func TestView_EditNumericFields(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr bool
		check   func(t *testing.T, s *domain.AppSettings)
	}{
		{"timeout", FieldTimeout, "5", false, func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 5, s.API.TimeoutSeconds)
		}},
		{"zero timeout", FieldTimeout, "0", true, nil},
		{"rate", FieldRate, "2.5", false, func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 2.5, s.API.RatePerSecond, 0.001)
		}},
		{"negative rate", FieldRate, "-1", true, nil},
		{"zero debounce", FieldDebounce, "0", false, func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 0, s.Search.DebounceMS)
		}},
		{"page size", FieldPageSize, "50", false, func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 50, s.Documents.PageSize)
		}},
		{"page size not a number", FieldPageSize, "many", true, nil},
		{"log file", FieldLogFile, "/tmp/docdesk.log", false, func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/tmp/docdesk.log", s.Log.File)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, svc := loadedView(t)
			for range int(tt.field) {
				view.Update(key("j"))
			}
			require.Equal(t, int(tt.field), view.SelectedIndex())

			msg := edit(t, view, tt.value)

			saved := msg.(messages.SettingsSaved)
			if tt.wantErr {
				assert.ErrorIs(t, saved.Err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, saved.Err)
			got, err := svc.Get()
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestView_EditCancel(t *testing.T) {
	view, svc := loadedView(t)

	view.Update(key("enter"))
	view.input.SetValue("https://elsewhere.example.com")
	_, cmd := view.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.False(t, view.Editing())
	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBaseURL, got.API.BaseURL)
}

func TestView_RestoreDefaults(t *testing.T) {
	view, svc := loadedView(t)
	require.NoError(t, svc.SetBaseURL("https://docs.example.com"))

	_, cmd := view.Update(key("D"))
	msg := run(t, view, cmd)
	_, reload := view.Update(msg)
	run(t, view, reload)

	assert.Equal(t, domain.DefaultBaseURL, view.Settings().API.BaseURL)
	assert.Contains(t, view.View(), "Defaults restored")
}

func TestView_ValidationWarning(t *testing.T) {
	cfg := memory.NewConfigStore()
	require.NoError(t, cfg.Set("api.timeout_seconds", -1))
	view := NewView(nil, nil, services.NewSettingsService(cfg))
	run(t, view, view.Init())

	assert.Contains(t, view.View(), "Warning: api.timeout_seconds must be positive")
}

func TestView_NavigationAndBack(t *testing.T) {
	view, _ := loadedView(t)

	view.Update(key("k"))
	assert.Equal(t, 0, view.SelectedIndex())
	for range 10 {
		view.Update(key("j"))
	}
	assert.Equal(t, int(FieldLogFile), view.SelectedIndex())

	_, cmd := view.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	view, _ := loadedView(t)
	view.Update(key("j"))
	view.Update(key("enter"))

	view.Reset()

	assert.Zero(t, view.SelectedIndex())
	assert.False(t, view.Editing())
	assert.NoError(t, view.Err())
}
