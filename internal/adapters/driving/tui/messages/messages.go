// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
// Results of service calls carry only the error; views read the new state
// from the service snapshot.
package messages

import (
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// QueryChanged is sent when the search query input changes.
type QueryChanged struct {
	Query string
}

// SuggestionsLoaded reports a finished suggestion fetch. Fetched is false
// when a later keystroke superseded the request.
type SuggestionsLoaded struct {
	Fetched bool
	Err     error
}

// SearchCompleted reports a finished search.
type SearchCompleted struct {
	Query string
	Err   error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewDocuments is the paged document list.
	ViewDocuments
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewDocDetails shows a single document with its workflow.
	ViewDocDetails
	// ViewNotifications is the notification inbox.
	ViewNotifications
	// ViewDashboard is the overview and analytics view.
	ViewDashboard
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewDocuments:
		return "documents"
	case ViewHelp:
		return "help"
	case ViewDocDetails:
		return "doc_details"
	case ViewNotifications:
		return "notifications"
	case ViewDashboard:
		return "dashboard"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded reports a finished document list fetch.
type DocumentsLoaded struct {
	Err error
}

// DocumentSelected asks for a document to be opened in the detail view.
type DocumentSelected struct {
	ID string
}

// DocumentLoaded reports a finished detail fetch of a document.
type DocumentLoaded struct {
	ID  string
	Err error
}

// DocumentAction names a mutation applied to a document.
type DocumentAction string

// Document actions.
const (
	ActionApprove  DocumentAction = "approve"
	ActionReject   DocumentAction = "reject"
	ActionBookmark DocumentAction = "bookmark"
	ActionDelete   DocumentAction = "delete"
	ActionComment  DocumentAction = "comment"
)

// DocumentActionDone reports a finished document mutation.
type DocumentActionDone struct {
	ID     string
	Action DocumentAction
	Err    error
}

// NotificationsLoaded reports a finished notification fetch.
type NotificationsLoaded struct {
	Err error
}

// NotificationChanged reports a finished read or delete.
type NotificationChanged struct {
	ID  string
	Err error
}

// OverviewLoaded reports a finished dashboard fetch.
type OverviewLoaded struct {
	Err error
}

// AnalyticsLoaded reports a finished analytics fetch.
type AnalyticsLoaded struct {
	Metric string
	Err    error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
