package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// Ensure mockGateway implements the full remote API.
var _ driven.Gateway = (*mockGateway)(nil)

// mockGateway implements driven.Gateway for testing. Every method records
// its name and returns errs[name] if set.
type mockGateway struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error

	login         *domain.LoginResult
	user          *domain.User
	docs          []domain.Document
	doc           *domain.Document
	comments      []domain.Comment
	workflow      []domain.WorkflowEntry
	notifications []domain.Notification
	settings      *domain.NotificationSettings
	overview      *domain.Overview
	analytics     *domain.Analytics
	users         []domain.User
	suggestions   []domain.Suggestion

	lastFilters   domain.DocumentFilters
	lastAnalytics domain.AnalyticsQuery
	lastSuggest   string
}

func newMockGateway() *mockGateway {
	return &mockGateway{errs: make(map[string]error)}
}

func (m *mockGateway) call(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	return m.errs[name]
}

func (m *mockGateway) failWith(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[name] = err
}

func (m *mockGateway) called(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *mockGateway) Login(_ context.Context, _ domain.Credentials) (*domain.LoginResult, error) {
	if err := m.call("Login"); err != nil {
		return nil, err
	}
	return m.login, nil
}

func (m *mockGateway) Logout(_ context.Context) error {
	return m.call("Logout")
}

func (m *mockGateway) CurrentUser(_ context.Context) (*domain.User, error) {
	if err := m.call("CurrentUser"); err != nil {
		return nil, err
	}
	return m.user, nil
}

func (m *mockGateway) UpdateProfile(_ context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if err := m.call("UpdateProfile"); err != nil {
		return nil, err
	}
	u := *m.user
	update.Apply(&u)
	return &u, nil
}

func (m *mockGateway) ListDocuments(_ context.Context, filters domain.DocumentFilters) (*domain.DocumentList, error) {
	if err := m.call("ListDocuments"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.lastFilters = filters
	m.mu.Unlock()
	return &domain.DocumentList{
		Documents:  m.docs,
		Pagination: &domain.Pagination{Page: 1, Limit: filters.Limit, Total: len(m.docs), Pages: 1},
	}, nil
}

func (m *mockGateway) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	if err := m.call("GetDocument"); err != nil {
		return nil, err
	}
	if m.doc != nil {
		return m.doc, nil
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			d := m.docs[i]
			return &d, nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.ErrorKindNotFound, StatusCode: 404, Message: "Document not found"}
}

func (m *mockGateway) UploadDocument(_ context.Context, req domain.UploadRequest) (*domain.Document, error) {
	if err := m.call("UploadDocument"); err != nil {
		return nil, err
	}
	return &domain.Document{
		ID:         "new",
		Title:      req.Title,
		Type:       req.Type,
		Department: req.Department,
		Status:     domain.DocumentStatusPending,
		File:       domain.FileInfo{Name: req.FileName, Size: int64(len(req.Content))},
	}, nil
}

func (m *mockGateway) UpdateDocument(_ context.Context, _ string, _ domain.DocumentUpdate) (*domain.Document, error) {
	if err := m.call("UpdateDocument"); err != nil {
		return nil, err
	}
	return m.doc, nil
}

func (m *mockGateway) DeleteDocument(_ context.Context, _ string) error {
	return m.call("DeleteDocument")
}

func (m *mockGateway) ApproveDocument(_ context.Context, _, _ string) (*domain.Document, error) {
	if err := m.call("ApproveDocument"); err != nil {
		return nil, err
	}
	return m.doc, nil
}

func (m *mockGateway) RejectDocument(_ context.Context, _, _ string) (*domain.Document, error) {
	if err := m.call("RejectDocument"); err != nil {
		return nil, err
	}
	return m.doc, nil
}

func (m *mockGateway) BookmarkDocument(_ context.Context, _ string) (*domain.Document, error) {
	if err := m.call("BookmarkDocument"); err != nil {
		return nil, err
	}
	return m.doc, nil
}

func (m *mockGateway) WorkflowHistory(_ context.Context, _ string) ([]domain.WorkflowEntry, error) {
	if err := m.call("WorkflowHistory"); err != nil {
		return nil, err
	}
	return m.workflow, nil
}

func (m *mockGateway) RequestRevision(_ context.Context, _ string, _ domain.RevisionRequest) error {
	return m.call("RequestRevision")
}

func (m *mockGateway) DownloadLink(_ context.Context, id string) (string, error) {
	if err := m.call("DownloadLink"); err != nil {
		return "", err
	}
	return "https://files.example.com/" + id, nil
}

func (m *mockGateway) ListComments(_ context.Context, _ string) ([]domain.Comment, error) {
	if err := m.call("ListComments"); err != nil {
		return nil, err
	}
	return m.comments, nil
}

func (m *mockGateway) AddComment(_ context.Context, documentID, text string) (*domain.Comment, error) {
	if err := m.call("AddComment"); err != nil {
		return nil, err
	}
	return &domain.Comment{ID: "c-new", DocumentID: documentID, Text: text}, nil
}

func (m *mockGateway) UpdateComment(_ context.Context, id, text string, resolved *bool) (*domain.Comment, error) {
	if err := m.call("UpdateComment"); err != nil {
		return nil, err
	}
	c := domain.Comment{ID: id, Text: text}
	if resolved != nil {
		c.Resolved = *resolved
	}
	return &c, nil
}

func (m *mockGateway) DeleteComment(_ context.Context, _ string) error {
	return m.call("DeleteComment")
}

func (m *mockGateway) ListNotifications(_ context.Context, _ domain.NotificationFilters) (*domain.NotificationList, error) {
	if err := m.call("ListNotifications"); err != nil {
		return nil, err
	}
	return &domain.NotificationList{Notifications: m.notifications, Total: len(m.notifications)}, nil
}

func (m *mockGateway) MarkAsRead(_ context.Context, _ string) error {
	return m.call("MarkAsRead")
}

func (m *mockGateway) MarkAllAsRead(_ context.Context) error {
	return m.call("MarkAllAsRead")
}

func (m *mockGateway) DeleteNotification(_ context.Context, _ string) error {
	return m.call("DeleteNotification")
}

func (m *mockGateway) NotificationSettings(_ context.Context) (*domain.NotificationSettings, error) {
	if err := m.call("NotificationSettings"); err != nil {
		return nil, err
	}
	return m.settings, nil
}

func (m *mockGateway) UpdateNotificationSettings(
	_ context.Context, settings domain.NotificationSettings,
) (*domain.NotificationSettings, error) {
	if err := m.call("UpdateNotificationSettings"); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (m *mockGateway) Overview(_ context.Context) (*domain.Overview, error) {
	if err := m.call("Overview"); err != nil {
		return nil, err
	}
	return m.overview, nil
}

func (m *mockGateway) Analytics(_ context.Context, query domain.AnalyticsQuery) (*domain.Analytics, error) {
	if err := m.call("Analytics"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.lastAnalytics = query
	m.mu.Unlock()
	return m.analytics, nil
}

func (m *mockGateway) ListUsers(_ context.Context, _ domain.UserFilters) ([]domain.User, error) {
	if err := m.call("ListUsers"); err != nil {
		return nil, err
	}
	return m.users, nil
}

func (m *mockGateway) GetUser(_ context.Context, id string) (*domain.User, error) {
	if err := m.call("GetUser"); err != nil {
		return nil, err
	}
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, &domain.RemoteError{Kind: domain.ErrorKindNotFound, StatusCode: 404, Message: "User not found"}
}

func (m *mockGateway) CreateUser(_ context.Context, user domain.NewUser) (*domain.User, error) {
	if err := m.call("CreateUser"); err != nil {
		return nil, err
	}
	return &domain.User{ID: "u-new", Username: user.Username, Email: user.Email, Role: user.Role, IsActive: true}, nil
}

func (m *mockGateway) UpdateUser(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	if err := m.call("UpdateUser"); err != nil {
		return nil, err
	}
	u := domain.User{ID: id, IsActive: true}
	if update.Role != nil {
		u.Role = *update.Role
	}
	return &u, nil
}

func (m *mockGateway) DeactivateUser(_ context.Context, _ string) error {
	return m.call("DeactivateUser")
}

func (m *mockGateway) Suggest(_ context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if err := m.call("Suggest"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.lastSuggest = query
	m.mu.Unlock()
	if limit < len(m.suggestions) {
		return m.suggestions[:limit], nil
	}
	return m.suggestions, nil
}

// unauthorized is the error the gateway returns for a 401.
func unauthorized() error {
	return &domain.RemoteError{Kind: domain.ErrorKindAuthentication, StatusCode: 401, Message: "Could not validate credentials"}
}
