package driven

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// AuthGateway is the authentication surface of the document API.
// Failures are returned as *domain.RemoteError.
type AuthGateway interface {
	// Login exchanges credentials for a token and the user's profile.
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)

	// Logout ends the server-side session.
	Logout(ctx context.Context) error

	// CurrentUser fetches the profile of the token holder.
	CurrentUser(ctx context.Context) (*domain.User, error)

	// UpdateProfile applies self-service profile changes.
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
}

// DocumentGateway is the document surface of the document API.
type DocumentGateway interface {
	// ListDocuments returns one page of documents. Filter values of "all"
	// or "" are not transmitted.
	ListDocuments(ctx context.Context, filters domain.DocumentFilters) (*domain.DocumentList, error)

	GetDocument(ctx context.Context, id string) (*domain.Document, error)
	UploadDocument(ctx context.Context, req domain.UploadRequest) (*domain.Document, error)
	UpdateDocument(ctx context.Context, id string, update domain.DocumentUpdate) (*domain.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	// ApproveDocument and RejectDocument return the updated document.
	ApproveDocument(ctx context.Context, id, comments string) (*domain.Document, error)
	RejectDocument(ctx context.Context, id, comments string) (*domain.Document, error)

	// BookmarkDocument toggles the caller's bookmark and returns the
	// updated document.
	BookmarkDocument(ctx context.Context, id string) (*domain.Document, error)

	WorkflowHistory(ctx context.Context, id string) ([]domain.WorkflowEntry, error)
	RequestRevision(ctx context.Context, id string, req domain.RevisionRequest) error
	DownloadLink(ctx context.Context, id string) (string, error)
}

// CommentGateway is the comment surface of the document API.
type CommentGateway interface {
	// ListComments returns the comments of a document, oldest first.
	ListComments(ctx context.Context, documentID string) ([]domain.Comment, error)

	AddComment(ctx context.Context, documentID, text string) (*domain.Comment, error)

	// UpdateComment changes the text and/or resolved flag. Empty text and
	// nil resolved leave the field unchanged.
	UpdateComment(ctx context.Context, id, text string, resolved *bool) (*domain.Comment, error)

	DeleteComment(ctx context.Context, id string) error
}

// NotificationGateway is the notification surface of the document API.
type NotificationGateway interface {
	ListNotifications(ctx context.Context, filters domain.NotificationFilters) (*domain.NotificationList, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	NotificationSettings(ctx context.Context) (*domain.NotificationSettings, error)
	UpdateNotificationSettings(ctx context.Context, settings domain.NotificationSettings) (*domain.NotificationSettings, error)
}

// DashboardGateway is the dashboard surface of the document API.
type DashboardGateway interface {
	Overview(ctx context.Context) (*domain.Overview, error)
	Analytics(ctx context.Context, query domain.AnalyticsQuery) (*domain.Analytics, error)
}

// UserGateway is the admin user surface of the document API.
type UserGateway interface {
	ListUsers(ctx context.Context, filters domain.UserFilters) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.NewUser) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	DeactivateUser(ctx context.Context, id string) error
}

// SuggestionSource provides typeahead completions for a partial query.
type SuggestionSource interface {
	Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error)
}

// Gateway is the full remote API.
type Gateway interface {
	AuthGateway
	DocumentGateway
	CommentGateway
	NotificationGateway
	DashboardGateway
	UserGateway
	SuggestionSource
}
