package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// flexID decodes an identifier sent as a JSON number or string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string {
	return string(f)
}

// wireTime decodes timestamps with or without a zone. Naive timestamps
// are taken as UTC.
type wireTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unrecognised format", s)
}

// --- auth and users ---

type loginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        *userDTO `json:"user"`
}

type userDTO struct {
	ID                 flexID   `json:"id"`
	Username           string   `json:"username"`
	Email              string   `json:"email"`
	FullName           string   `json:"full_name"`
	Role               string   `json:"role"`
	Department         string   `json:"department"`
	LanguagePreference string   `json:"language_preference"`
	Permissions        []string `json:"permissions"`
	IsActive           bool     `json:"is_active"`
	IsVerified         bool     `json:"is_verified"`
	CreatedAt          wireTime `json:"created_at"`
	LastLogin          wireTime `json:"last_login"`
}

func (u *userDTO) toDomain() *domain.User {
	if u == nil {
		return nil
	}
	return &domain.User{
		ID:                 u.ID.String(),
		Username:           u.Username,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               domain.Role(u.Role),
		Department:         u.Department,
		LanguagePreference: u.LanguagePreference,
		Permissions:        u.Permissions,
		IsActive:           u.IsActive,
		IsVerified:         u.IsVerified,
		CreatedAt:          u.CreatedAt.Time,
		LastLogin:          u.LastLogin.Time,
	}
}

type profileUpdateBody struct {
	Email              *string `json:"email,omitempty"`
	FullName           *string `json:"full_name,omitempty"`
	LanguagePreference *string `json:"language_preference,omitempty"`
}

type newUserBody struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name,omitempty"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

type userUpdateBody struct {
	Email      *string `json:"email,omitempty"`
	FullName   *string `json:"full_name,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// --- documents ---

type documentDTO struct {
	ID            flexID   `json:"id"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Type          string   `json:"type"`
	Department    string   `json:"department"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	FileName      string   `json:"file_name"`
	FileType      string   `json:"file_type"`
	FileSize      int64    `json:"file_size"`
	Version       flexID   `json:"version"`
	PageCount     int      `json:"page_count"`
	UploadedBy    flexID   `json:"uploaded_by"`
	BookmarkedBy  []flexID `json:"bookmarked_by"`
	ViewCount     int      `json:"view_count"`
	DownloadCount int      `json:"download_count"`
	CreatedAt     wireTime `json:"created_at"`
	UpdatedAt     wireTime `json:"updated_at"`
	ApprovedAt    wireTime `json:"approved_at"`
	Deadline      wireTime `json:"deadline"`
}

// toDomain converts d. userID decides the bookmark flag.
func (d *documentDTO) toDomain(userID string) domain.Document {
	bookmarked := false
	if userID != "" {
		for _, id := range d.BookmarkedBy {
			if id.String() == userID {
				bookmarked = true
				break
			}
		}
	}
	return domain.Document{
		ID:         d.ID.String(),
		Title:      d.Title,
		Summary:    d.Summary,
		Type:       domain.DocumentType(d.Type),
		Department: d.Department,
		Status:     domain.DocumentStatus(d.Status),
		Priority:   domain.Priority(d.Priority),
		UploadedBy: d.UploadedBy.String(),
		Bookmarked: bookmarked,
		File: domain.FileInfo{
			Name:      d.FileName,
			Type:      d.FileType,
			Size:      d.FileSize,
			Version:   d.Version.String(),
			PageCount: d.PageCount,
		},
		ViewCount:     d.ViewCount,
		DownloadCount: d.DownloadCount,
		CreatedAt:     d.CreatedAt.Time,
		UpdatedAt:     d.UpdatedAt.Time,
		ApprovedAt:    d.ApprovedAt.Time,
		Deadline:      d.Deadline.Time,
	}
}

func documentsToDomain(dtos []documentDTO, userID string) []domain.Document {
	out := make([]domain.Document, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].toDomain(userID))
	}
	return out
}

type documentListResponse struct {
	Documents []documentDTO `json:"documents"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	Limit     int           `json:"limit"`
	Pages     int           `json:"pages"`
}

type documentUpdateBody struct {
	Title      *string    `json:"title,omitempty"`
	Summary    *string    `json:"summary,omitempty"`
	Type       *string    `json:"type,omitempty"`
	Department *string    `json:"department,omitempty"`
	Priority   *string    `json:"priority,omitempty"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

type actionBody struct {
	Comments string `json:"comments"`
}

type revisionBody struct {
	RequestedChanges []string   `json:"requested_changes"`
	Deadline         *time.Time `json:"deadline,omitempty"`
}

type workflowResponse struct {
	Workflow []struct {
		ID             flexID   `json:"id"`
		Action         string   `json:"action"`
		Comments       string   `json:"comments"`
		PreviousStatus string   `json:"previous_status"`
		NewStatus      string   `json:"new_status"`
		UserID         flexID   `json:"user_id"`
		Timestamp      wireTime `json:"timestamp"`
	} `json:"workflow"`
}

type downloadResponse struct {
	DownloadURL string `json:"download_url"`
}

// --- comments ---

type commentDTO struct {
	ID         flexID   `json:"id"`
	DocumentID flexID   `json:"document_id"`
	AuthorID   flexID   `json:"author_id"`
	Content    string   `json:"content"`
	IsResolved bool     `json:"is_resolved"`
	CreatedAt  wireTime `json:"created_at"`
	Author     *struct {
		Username string `json:"username"`
		FullName string `json:"full_name"`
	} `json:"author"`
}

func (c *commentDTO) toDomain() domain.Comment {
	author := c.AuthorID.String()
	if c.Author != nil {
		author = c.Author.Username
		if c.Author.FullName != "" {
			author = c.Author.FullName
		}
	}
	return domain.Comment{
		ID:         c.ID.String(),
		DocumentID: c.DocumentID.String(),
		Author:     author,
		Text:       c.Content,
		Resolved:   c.IsResolved,
		Timestamp:  c.CreatedAt.Time,
	}
}

type commentListResponse struct {
	Comments []commentDTO `json:"comments"`
	Total    int          `json:"total"`
}

type commentBody struct {
	Content    string `json:"content,omitempty"`
	IsResolved *bool  `json:"is_resolved,omitempty"`
}

// --- notifications ---

type notificationDTO struct {
	ID             flexID   `json:"id"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Priority       string   `json:"priority"`
	DocumentID     flexID   `json:"document_id"`
	ActionRequired bool     `json:"action_required"`
	IsRead         bool     `json:"is_read"`
	CreatedAt      wireTime `json:"created_at"`
}

func (n *notificationDTO) toDomain() domain.Notification {
	return domain.Notification{
		ID:             n.ID.String(),
		Type:           domain.NotificationType(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Priority:       domain.Priority(n.Priority),
		DocumentID:     n.DocumentID.String(),
		ActionRequired: n.ActionRequired,
		IsRead:         n.IsRead,
		Timestamp:      n.CreatedAt.Time,
	}
}

type notificationListResponse struct {
	Notifications []notificationDTO `json:"notifications"`
	Total         int               `json:"total"`
	UnreadCount   int               `json:"unread_count"`
}

type channelDTO struct {
	DocumentApproval  bool `json:"document_approval"`
	DeadlineReminders bool `json:"deadline_reminders"`
	SystemUpdates     bool `json:"system_updates"`
	Comments          bool `json:"comments"`
}

type notificationSettingsDTO struct {
	Email     channelDTO `json:"email"`
	Push      channelDTO `json:"push"`
	Frequency string     `json:"frequency"`
}

func channelFromDomain(c domain.ChannelSettings) channelDTO {
	return channelDTO(c)
}

func (s *notificationSettingsDTO) toDomain() *domain.NotificationSettings {
	return &domain.NotificationSettings{
		Email:     domain.ChannelSettings(s.Email),
		Push:      domain.ChannelSettings(s.Push),
		Frequency: s.Frequency,
	}
}

// --- dashboard ---

type overviewResponse struct {
	Stats struct {
		TotalDocuments      int     `json:"total_documents"`
		PendingApprovals    int     `json:"pending_approvals"`
		RecentUploads       int     `json:"recent_uploads"`
		ComplianceRate      float64 `json:"compliance_rate"`
		UnreadNotifications int     `json:"unread_notifications"`
	} `json:"stats"`
	RecentDocuments []documentDTO `json:"recent_documents"`
	PendingActions  []struct {
		Type       string   `json:"type"`
		DocumentID flexID   `json:"document_id"`
		Title      string   `json:"title"`
		Priority   string   `json:"priority"`
		CreatedAt  wireTime `json:"created_at"`
	} `json:"pending_actions"`
	Alerts []struct {
		Type     string `json:"type"`
		Message  string `json:"message"`
		Severity string `json:"severity"`
		Count    int    `json:"count"`
	} `json:"alerts"`
}

func (o *overviewResponse) toDomain(userID string) *domain.Overview {
	ov := &domain.Overview{
		Stats: domain.DashboardStats{
			TotalDocuments:      o.Stats.TotalDocuments,
			PendingApprovals:    o.Stats.PendingApprovals,
			RecentUploads:       o.Stats.RecentUploads,
			ComplianceRate:      o.Stats.ComplianceRate,
			UnreadNotifications: o.Stats.UnreadNotifications,
		},
		RecentDocuments: documentsToDomain(o.RecentDocuments, userID),
	}
	for _, a := range o.PendingActions {
		ov.PendingActions = append(ov.PendingActions, domain.PendingAction{
			Type:       a.Type,
			DocumentID: a.DocumentID.String(),
			Title:      a.Title,
			Priority:   domain.Priority(a.Priority),
			CreatedAt:  a.CreatedAt.Time,
		})
	}
	for _, a := range o.Alerts {
		ov.Alerts = append(ov.Alerts, domain.Alert{
			Type:     a.Type,
			Message:  a.Message,
			Severity: a.Severity,
			Count:    a.Count,
		})
	}
	return ov
}

type analyticsResponse struct {
	Period    string `json:"period"`
	DateRange struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"date_range"`
	DocumentTrends []struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	} `json:"document_trends"`
	ApprovalMetrics struct {
		TotalDocuments int     `json:"total_documents"`
		Approved       int     `json:"approved"`
		Rejected       int     `json:"rejected"`
		Pending        int     `json:"pending"`
		ApprovalRate   float64 `json:"approval_rate"`
		RejectionRate  float64 `json:"rejection_rate"`
	} `json:"approval_metrics"`
	DepartmentStats map[string]struct {
		Total        int     `json:"total"`
		Approved     int     `json:"approved"`
		Pending      int     `json:"pending"`
		ApprovalRate float64 `json:"approval_rate"`
	} `json:"department_stats"`
}

func (a *analyticsResponse) toDomain() *domain.Analytics {
	out := &domain.Analytics{
		Period: a.Period,
		Start:  a.DateRange.Start,
		End:    a.DateRange.End,
		Approvals: domain.ApprovalMetrics{
			Total:         a.ApprovalMetrics.TotalDocuments,
			Approved:      a.ApprovalMetrics.Approved,
			Rejected:      a.ApprovalMetrics.Rejected,
			Pending:       a.ApprovalMetrics.Pending,
			ApprovalRate:  a.ApprovalMetrics.ApprovalRate,
			RejectionRate: a.ApprovalMetrics.RejectionRate,
		},
		Departments: make(map[string]domain.DepartmentStat, len(a.DepartmentStats)),
	}
	for _, t := range a.DocumentTrends {
		out.Trends = append(out.Trends, domain.TrendPoint{Date: t.Date, Count: t.Count})
	}
	for name, d := range a.DepartmentStats {
		out.Departments[name] = domain.DepartmentStat{
			Total:        d.Total,
			Approved:     d.Approved,
			Pending:      d.Pending,
			ApprovalRate: d.ApprovalRate,
		}
	}
	return out
}
