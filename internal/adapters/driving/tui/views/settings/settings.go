// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

// Field identifies an editable setting.
type Field int

const (
	FieldBaseURL Field = iota
	FieldTimeout
	FieldRate
	FieldDebounce
	FieldPageSize
	FieldLogFile
)

var fieldLabels = []string{
	"API base URL",
	"Request timeout (s)",
	"Rate limit (req/s)",
	"Suggestion debounce (ms)",
	"Page size",
	"Log file",
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	notice   string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	return &View{
		styles:          s,
		keymap:          km,
		settingsService: settingsService,
		input:           ti,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			v.notice = ""
			return v, nil
		}
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(fieldLabels)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if v.settings == nil {
			return v, nil
		}
		v.editing = true
		v.notice = ""
		v.input.SetValue(v.value(Field(v.selected)))
		v.input.CursorEnd()
		return v, v.input.Focus()
	case k == "D":
		if v.settingsService == nil {
			return v, nil
		}
		v.notice = "Defaults restored"
		return v, v.resetDefaults()
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.loadSettings()
	}

	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.stopEditing()
		return v, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(v.input.Value())
		field := Field(v.selected)
		v.stopEditing()
		v.notice = fieldLabels[field] + " saved"
		return v, v.save(field, raw)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.input.Blur()
	v.input.SetValue("")
}

// save applies one edited field and persists the result.
func (v *View) save(field Field, raw string) tea.Cmd {
	svc := v.settingsService
	var current domain.AppSettings
	if v.settings != nil {
		current = *v.settings
	}
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		if field == FieldBaseURL {
			return messages.SettingsSaved{Err: svc.SetBaseURL(raw)}
		}
		if err := apply(&current, field, raw); err != nil {
			return messages.SettingsSaved{Err: err}
		}
		return messages.SettingsSaved{Err: svc.Save(&current)}
	}
}

func (v *View) resetDefaults() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		defaults := svc.GetDefaults()
		return messages.SettingsSaved{Err: svc.Save(&defaults)}
	}
}

// apply parses raw into the given field of s.
func apply(s *domain.AppSettings, field Field, raw string) error {
	switch field {
	case FieldBaseURL:
		s.API.BaseURL = raw
	case FieldLogFile:
		s.Log.File = raw
	case FieldRate:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%s: %q is not a non-negative number: %w", fieldLabels[field], raw, domain.ErrInvalidInput)
		}
		s.API.RatePerSecond = f
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || (n == 0 && field != FieldDebounce) {
			return fmt.Errorf("%s: %q is out of range: %w", fieldLabels[field], raw, domain.ErrInvalidInput)
		}
		switch field {
		case FieldTimeout:
			s.API.TimeoutSeconds = n
		case FieldDebounce:
			s.Search.DebounceMS = n
		case FieldPageSize:
			s.Documents.PageSize = n
		}
	}
	return nil
}

func (v *View) value(field Field) string {
	s := v.settings
	switch field {
	case FieldBaseURL:
		return s.API.BaseURL
	case FieldTimeout:
		return strconv.Itoa(s.API.TimeoutSeconds)
	case FieldRate:
		return strconv.FormatFloat(s.API.RatePerSecond, 'f', -1, 64)
	case FieldDebounce:
		return strconv.Itoa(s.Search.DebounceMS)
	case FieldPageSize:
		return strconv.Itoa(s.Documents.PageSize)
	case FieldLogFile:
		return s.Log.File
	}
	return ""
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		return b.String()
	}

	for i, label := range fieldLabels {
		val := v.value(Field(i))
		if val == "" {
			val = "Not Set"
		}
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("> %s: %s", label, val)))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %s: %s", label, val)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Subtitle.Render(fieldLabels[v.selected] + ": "))
		b.WriteString(v.styles.InputField.Render(v.input.View()))
		b.WriteString("\n\n")
	}

	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}
	if v.notice != "" && v.err == nil {
		b.WriteString(v.styles.Muted.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [D] restore defaults  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings, nil before the first load.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Editing reports whether a field is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// SelectedIndex returns the selected field.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.selected = 0
	v.err = nil
	v.notice = ""
	v.stopEditing()
}
