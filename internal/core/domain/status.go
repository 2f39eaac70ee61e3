package domain

// RequestStatus is the lifecycle state of one concern.
type RequestStatus string

// Request lifecycle states. A concern moves idle -> loading ->
// succeeded|failed and may be triggered again from any state.
const (
	StatusIdle      RequestStatus = "idle"
	StatusLoading   RequestStatus = "loading"
	StatusSucceeded RequestStatus = "succeeded"
	StatusFailed    RequestStatus = "failed"
)

// String returns the string representation.
func (s RequestStatus) String() string {
	return string(s)
}

// IsLoading returns true while a request is in flight.
func (s RequestStatus) IsLoading() bool {
	return s == StatusLoading
}

// Concern names a sub-operation tracked with its own status and error slot.
type Concern string

// String returns the string representation.
func (c Concern) String() string {
	return string(c)
}

// Auth concerns.
const (
	ConcernAuthLogin   Concern = "auth.login"
	ConcernAuthProfile Concern = "auth.profile"
	ConcernAuthUpdate  Concern = "auth.update"
	ConcernAuthLogout  Concern = "auth.logout"
)

// Document concerns.
const (
	ConcernDocumentsList     Concern = "documents.list"
	ConcernDocumentsDetail   Concern = "documents.detail"
	ConcernDocumentsUpload   Concern = "documents.upload"
	ConcernDocumentsAction   Concern = "documents.action"
	ConcernDocumentsDelete   Concern = "documents.delete"
	ConcernDocumentsWorkflow Concern = "documents.workflow"
	ConcernDocumentsComments Concern = "documents.comments"
	ConcernDocumentsDownload Concern = "documents.download"

	// ConcernDocumentsCommentAction tracks comment writes apart from the
	// comment list so a write never supersedes a list fetch.
	ConcernDocumentsCommentAction Concern = "documents.comment_action"
)

// Notification concerns.
const (
	ConcernNotificationsList     Concern = "notifications.list"
	ConcernNotificationsRead     Concern = "notifications.read"
	ConcernNotificationsDelete   Concern = "notifications.delete"
	ConcernNotificationsSettings Concern = "notifications.settings"
)

// Dashboard concerns.
const (
	ConcernDashboardOverview  Concern = "dashboard.overview"
	ConcernDashboardAnalytics Concern = "dashboard.analytics"
)

// Search concerns.
const (
	ConcernSearchResults     Concern = "search.results"
	ConcernSearchSuggestions Concern = "search.suggestions"
)

// User administration concerns.
const (
	ConcernUsersList   Concern = "users.list"
	ConcernUsersDetail Concern = "users.detail"
	ConcernUsersAction Concern = "users.action"
)
