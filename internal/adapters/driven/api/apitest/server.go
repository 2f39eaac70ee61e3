// Package apitest provides an in-memory document API for tests of the
// driving adapters. It speaks the same wire format as the real server.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Credentials accepted by the fake server.
const (
	Username = "alice"
	Password = "secret"
	Token    = "test-token"
)

// Doc is a stored document.
type Doc struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Type         string   `json:"type"`
	Department   string   `json:"department"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	FileName     string   `json:"file_name"`
	FileSize     int64    `json:"file_size"`
	UploadedBy   int      `json:"uploaded_by"`
	BookmarkedBy []int    `json:"bookmarked_by"`
	CreatedAt    string   `json:"created_at"`
	Workflow     []Action `json:"-"`
}

// Action is a stored workflow entry.
type Action struct {
	ID             int    `json:"id"`
	Action         string `json:"action"`
	Comments       string `json:"comments"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	UserID         int    `json:"user_id"`
	Timestamp      string `json:"timestamp"`
}

// Comment is a stored comment.
type Comment struct {
	ID         int    `json:"id"`
	DocumentID int    `json:"document_id"`
	AuthorID   int    `json:"author_id"`
	Content    string `json:"content"`
	IsResolved bool   `json:"is_resolved"`
	CreatedAt  string `json:"created_at"`
}

// Notification is a stored notification.
type Notification struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	DocumentID int    `json:"document_id,omitempty"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

// User is a stored account.
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	IsActive   bool   `json:"is_active"`
}

type channel struct {
	DocumentApproval  bool `json:"document_approval"`
	DeadlineReminders bool `json:"deadline_reminders"`
	SystemUpdates     bool `json:"system_updates"`
	Comments          bool `json:"comments"`
}

type settings struct {
	Email     channel `json:"email"`
	Push      channel `json:"push"`
	Frequency string  `json:"frequency"`
}

// Server is a fake document API backed by memory.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	docs          []*Doc
	comments      []*Comment
	notifications []*Notification
	users         []*User
	settings      settings
	nextID        int
	calls         map[string]int
	failures      map[string]int
}

// NewServer starts a seeded server that is closed when t ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextID:   100,
		calls:    make(map[string]int),
		failures: make(map[string]int),
	}
	s.seed()

	mux := http.NewServeMux()
	s.routes(mux)
	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to configure clients with.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v1"
}

// Fail makes the next n calls of route answer with status. route is a
// pattern such as "GET /api/v1/documents".
func (s *Server) Fail(route string, status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route+"#"+strconv.Itoa(status)] = n
}

// Calls returns how often route was served.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Documents returns a copy of the stored documents.
func (s *Server) Documents() []Doc {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Doc, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, *d)
	}
	return out
}

// Notifications returns a copy of the stored notifications.
func (s *Server) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, *n)
	}
	return out
}

func (s *Server) seed() {
	stamp := func(day int) string {
		return time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}
	s.users = []*User{
		{ID: 1, Username: Username, Email: "alice@example.com", FullName: "Alice Admin", Role: "admin", Department: "operations", IsActive: true},
		{ID: 2, Username: "bob", Email: "bob@example.com", Role: "finance", Department: "finance", IsActive: true},
	}
	s.docs = []*Doc{
		{ID: 1, Title: "Safety Manual", Summary: "Track safety procedures", Type: "safety", Department: "operations", Status: "pending", Priority: "high", FileName: "safety.pdf", FileSize: 2048, UploadedBy: 2, CreatedAt: stamp(1)},
		{ID: 2, Title: "Budget Report", Summary: "Quarterly budget and safety spend", Type: "financial", Department: "finance", Status: "approved", Priority: "medium", FileName: "budget.xlsx", FileSize: 4096, UploadedBy: 2, BookmarkedBy: []int{1}, CreatedAt: stamp(2)},
		{ID: 3, Title: "Maintenance Schedule", Summary: "Depot maintenance windows", Type: "maintenance", Department: "engineering", Status: "draft", Priority: "low", FileName: "schedule.docx", FileSize: 1024, UploadedBy: 1, CreatedAt: stamp(3)},
	}
	s.comments = []*Comment{
		{ID: 1, DocumentID: 1, AuthorID: 2, Content: "Please check section 2", CreatedAt: stamp(4)},
	}
	s.notifications = []*Notification{
		{ID: 1, Type: "approval_request", Title: "Approval needed", Message: "Safety Manual awaits review", Priority: "high", DocumentID: 1, CreatedAt: stamp(5)},
		{ID: 2, Type: "comment", Title: "New comment", Message: "bob commented on Safety Manual", Priority: "medium", DocumentID: 1, CreatedAt: stamp(4)},
		{ID: 3, Type: "system", Title: "Maintenance tonight", Message: "Downtime at 22:00", Priority: "low", IsRead: true, CreatedAt: stamp(3)},
	}
	s.settings = settings{
		Email:     channel{DocumentApproval: true, DeadlineReminders: true, SystemUpdates: true, Comments: true},
		Push:      channel{DocumentApproval: true, DeadlineReminders: true, Comments: true},
		Frequency: "immediate",
	}
}

// record counts calls, injects failures and enforces the bearer token.
func (s *Server) record(next *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pattern := next.Handler(r)

		s.mu.Lock()
		s.calls[pattern]++
		status := 0
		for key, n := range s.failures {
			route, code, _ := strings.Cut(key, "#")
			if route == pattern && n > 0 {
				s.failures[key] = n - 1
				status, _ = strconv.Atoi(code)
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
			return
		}
		if pattern != "POST /api/v1/auth/login" && r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) routes(mux *http.ServeMux) {
	const p = "/api/v1"
	mux.HandleFunc("POST "+p+"/auth/login", s.login)
	mux.HandleFunc("POST "+p+"/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	})
	mux.HandleFunc("GET "+p+"/auth/me", s.locked(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.users[0])
	}))
	mux.HandleFunc("PUT "+p+"/auth/profile", s.locked(s.updateProfile))

	mux.HandleFunc("GET "+p+"/documents", s.locked(s.listDocuments))
	mux.HandleFunc("POST "+p+"/documents", s.locked(s.uploadDocument))
	mux.HandleFunc("GET "+p+"/documents/{id}", s.locked(s.withDoc(func(w http.ResponseWriter, _ *http.Request, d *Doc) {
		writeJSON(w, http.StatusOK, d)
	})))
	mux.HandleFunc("PUT "+p+"/documents/{id}", s.locked(s.withDoc(s.updateDocument)))
	mux.HandleFunc("DELETE "+p+"/documents/{id}", s.locked(s.withDoc(s.deleteDocument)))
	mux.HandleFunc("POST "+p+"/documents/{id}/approve", s.locked(s.withDoc(s.transition("approve", "approved"))))
	mux.HandleFunc("POST "+p+"/documents/{id}/reject", s.locked(s.withDoc(s.transition("reject", "rejected"))))
	mux.HandleFunc("POST "+p+"/documents/{id}/request-revision", s.locked(s.withDoc(s.transition("request_revision", "draft"))))
	mux.HandleFunc("POST "+p+"/documents/{id}/bookmark", s.locked(s.withDoc(s.toggleBookmark)))
	mux.HandleFunc("GET "+p+"/documents/{id}/workflow", s.locked(s.withDoc(func(w http.ResponseWriter, _ *http.Request, d *Doc) {
		writeJSON(w, http.StatusOK, map[string]any{"workflow": nonNil(d.Workflow)})
	})))
	mux.HandleFunc("GET "+p+"/documents/{id}/download", s.locked(s.withDoc(func(w http.ResponseWriter, _ *http.Request, d *Doc) {
		writeJSON(w, http.StatusOK, map[string]string{"download_url": fmt.Sprintf("/files/%d/%s", d.ID, d.FileName)})
	})))
	mux.HandleFunc("GET "+p+"/documents/{id}/comments", s.locked(s.withDoc(s.listComments)))
	mux.HandleFunc("POST "+p+"/documents/{id}/comments", s.locked(s.withDoc(s.addComment)))
	mux.HandleFunc("PUT "+p+"/comments/{id}", s.locked(s.updateComment))
	mux.HandleFunc("DELETE "+p+"/comments/{id}", s.locked(s.deleteComment))

	mux.HandleFunc("GET "+p+"/notifications", s.locked(s.listNotifications))
	mux.HandleFunc("PUT "+p+"/notifications/read-all", s.locked(func(w http.ResponseWriter, _ *http.Request) {
		for _, n := range s.notifications {
			n.IsRead = true
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}))
	mux.HandleFunc("GET "+p+"/notifications/settings", s.locked(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.settings)
	}))
	mux.HandleFunc("PUT "+p+"/notifications/settings", s.locked(func(w http.ResponseWriter, r *http.Request) {
		if !decode(w, r, &s.settings) {
			return
		}
		writeJSON(w, http.StatusOK, s.settings)
	}))
	mux.HandleFunc("PUT "+p+"/notifications/{id}/read", s.locked(s.markRead))
	mux.HandleFunc("DELETE "+p+"/notifications/{id}", s.locked(s.deleteNotification))

	mux.HandleFunc("GET "+p+"/dashboard/overview", s.locked(s.overview))
	mux.HandleFunc("GET "+p+"/dashboard/analytics", s.locked(s.analytics))

	mux.HandleFunc("GET "+p+"/users", s.locked(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.users)
	}))
	mux.HandleFunc("POST "+p+"/users", s.locked(s.createUser))
	mux.HandleFunc("GET "+p+"/users/{id}", s.locked(s.withUser(func(w http.ResponseWriter, _ *http.Request, u *User) {
		writeJSON(w, http.StatusOK, u)
	})))
	mux.HandleFunc("PUT "+p+"/users/{id}", s.locked(s.withUser(s.updateUser)))
	mux.HandleFunc("DELETE "+p+"/users/{id}", s.locked(s.withUser(func(w http.ResponseWriter, _ *http.Request, u *User) {
		u.IsActive = false
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deactivated"})
	})))
}

func (s *Server) locked(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		h(w, r)
	}
}

func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

func (s *Server) withDoc(h func(http.ResponseWriter, *http.Request, *Doc)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, d := range s.docs {
			if d.ID == id {
				h(w, r, d)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Document not found"})
	}
}

func (s *Server) withUser(h func(http.ResponseWriter, *http.Request, *User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, u := range s.users {
			if u.ID == id {
				h(w, r, u)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "User not found"})
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	if r.PostForm.Get("username") != Username || r.PostForm.Get("password") != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
		return
	}
	s.mu.Lock()
	user := *s.users[0]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": Token,
		"token_type":   "bearer",
		"expires_in":   3600,
		"user":         user,
	})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    *string `json:"email"`
		FullName *string `json:"full_name"`
	}
	if !decode(w, r, &body) {
		return
	}
	if body.Email != nil {
		s.users[0].Email = *body.Email
	}
	if body.FullName != nil {
		s.users[0].FullName = *body.FullName
	}
	writeJSON(w, http.StatusOK, s.users[0])
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))

	var matched []*Doc
	for _, d := range s.docs {
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Title), search) &&
			!strings.Contains(strings.ToLower(d.Summary), search) {
			continue
		}
		if v := q.Get("type"); v != "" && d.Type != v {
			continue
		}
		if v := q.Get("status"); v != "" && d.Status != v {
			continue
		}
		if v := q.Get("department"); v != "" && d.Department != v {
			continue
		}
		if v := q.Get("priority"); v != "" && d.Priority != v {
			continue
		}
		matched = append(matched, d)
	}

	page, limit := atoiOr(q.Get("page"), 1), atoiOr(q.Get("limit"), 20)
	start := (page - 1) * limit
	end := min(start+limit, len(matched))
	if start > len(matched) {
		start = len(matched)
	}
	pages := (len(matched) + limit - 1) / limit
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": nonNil(matched[start:end]),
		"total":     len(matched),
		"page":      page,
		"limit":     limit,
		"pages":     pages,
	})
}

func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "file is required"})
		return
	}
	defer file.Close()
	size, _ := io.Copy(io.Discard, file)

	d := &Doc{
		ID:         s.id(),
		Title:      r.FormValue("title"),
		Summary:    r.FormValue("summary"),
		Type:       r.FormValue("type"),
		Department: r.FormValue("department"),
		Priority:   r.FormValue("priority"),
		Status:     "pending",
		FileName:   header.Filename,
		FileSize:   size,
		UploadedBy: 1,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	s.docs = append(s.docs, d)
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request, d *Doc) {
	var body struct {
		Title      *string `json:"title"`
		Summary    *string `json:"summary"`
		Type       *string `json:"type"`
		Department *string `json:"department"`
		Priority   *string `json:"priority"`
	}
	if !decode(w, r, &body) {
		return
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&d.Title, body.Title)
	set(&d.Summary, body.Summary)
	set(&d.Type, body.Type)
	set(&d.Department, body.Department)
	set(&d.Priority, body.Priority)
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDocument(w http.ResponseWriter, _ *http.Request, d *Doc) {
	for i := range s.docs {
		if s.docs[i] == d {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted"})
}

// transition moves a document to status and answers with a receipt.
func (s *Server) transition(action, status string) func(http.ResponseWriter, *http.Request, *Doc) {
	return func(w http.ResponseWriter, r *http.Request, d *Doc) {
		var body struct {
			Comments string `json:"comments"`
		}
		if !decode(w, r, &body) {
			return
		}
		if action != "request_revision" && d.Status != "pending" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Document is not pending approval"})
			return
		}
		d.Workflow = append(d.Workflow, Action{
			ID:             s.id(),
			Action:         action,
			Comments:       body.Comments,
			PreviousStatus: d.Status,
			NewStatus:      status,
			UserID:         1,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
		})
		d.Status = status
		writeJSON(w, http.StatusOK, map[string]any{"document_id": d.ID, "action": action})
	}
}

func (s *Server) toggleBookmark(w http.ResponseWriter, _ *http.Request, d *Doc) {
	for i, id := range d.BookmarkedBy {
		if id == 1 {
			d.BookmarkedBy = append(d.BookmarkedBy[:i], d.BookmarkedBy[i+1:]...)
			writeJSON(w, http.StatusOK, d)
			return
		}
	}
	d.BookmarkedBy = append(d.BookmarkedBy, 1)
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listComments(w http.ResponseWriter, _ *http.Request, d *Doc) {
	var out []*Comment
	for _, c := range s.comments {
		if c.DocumentID == d.ID {
			out = append(out, c)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": nonNil(out), "total": len(out)})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request, d *Doc) {
	var body struct {
		Content string `json:"content"`
	}
	if !decode(w, r, &body) {
		return
	}
	c := &Comment{ID: s.id(), DocumentID: d.ID, AuthorID: 1, Content: body.Content, CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	s.comments = append(s.comments, c)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) findComment(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	for i, c := range s.comments {
		if c.ID == id {
			return i, true
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Comment not found"})
	return 0, false
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	i, ok := s.findComment(w, r)
	if !ok {
		return
	}
	var body struct {
		Content    string `json:"content"`
		IsResolved *bool  `json:"is_resolved"`
	}
	if !decode(w, r, &body) {
		return
	}
	if body.Content != "" {
		s.comments[i].Content = body.Content
	}
	if body.IsResolved != nil {
		s.comments[i].IsResolved = *body.IsResolved
	}
	writeJSON(w, http.StatusOK, s.comments[i])
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	i, ok := s.findComment(w, r)
	if !ok {
		return
	}
	s.comments = append(s.comments[:i], s.comments[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var out []*Notification
	unread := 0
	for _, n := range s.notifications {
		if q.Get("unread_only") == "true" && n.IsRead {
			continue
		}
		if v := q.Get("type"); v != "" && n.Type != v {
			continue
		}
		if v := q.Get("priority"); v != "" && n.Priority != v {
			continue
		}
		if !n.IsRead {
			unread++
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": nonNil(out),
		"total":         len(out),
		"unread_count":  unread,
	})
}

func (s *Server) findNotification(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	for i, n := range s.notifications {
		if n.ID == id {
			return i, true
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Notification not found"})
	return 0, false
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	i, ok := s.findNotification(w, r)
	if !ok {
		return
	}
	s.notifications[i].IsRead = true
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	i, ok := s.findNotification(w, r)
	if !ok {
		return
	}
	s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *Server) overview(w http.ResponseWriter, _ *http.Request) {
	pending, unread := 0, 0
	var actions []map[string]any
	for _, d := range s.docs {
		if d.Status == "pending" {
			pending++
			actions = append(actions, map[string]any{
				"type": "approval", "document_id": d.ID, "title": d.Title,
				"priority": d.Priority, "created_at": d.CreatedAt,
			})
		}
	}
	for _, n := range s.notifications {
		if !n.IsRead {
			unread++
		}
	}
	recent := s.docs
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	var alerts []map[string]any
	if pending > 0 {
		alerts = append(alerts, map[string]any{
			"type": "pending_approvals", "message": fmt.Sprintf("%d documents awaiting approval", pending),
			"severity": "warning", "count": pending,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"total_documents":      len(s.docs),
			"pending_approvals":    pending,
			"recent_uploads":       len(recent),
			"compliance_rate":      87.5,
			"unread_notifications": unread,
		},
		"recent_documents": nonNil(recent),
		"pending_actions":  nonNil(actions),
		"alerts":           nonNil(alerts),
	})
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	departments := map[string]map[string]any{}
	for _, d := range s.docs {
		counts[d.Status]++
		dep, ok := departments[d.Department]
		if !ok {
			dep = map[string]any{"total": 0, "approved": 0, "pending": 0, "approval_rate": 0.0}
			departments[d.Department] = dep
		}
		dep["total"] = dep["total"].(int) + 1
		if d.Status == "approved" {
			dep["approved"] = dep["approved"].(int) + 1
		}
		if d.Status == "pending" {
			dep["pending"] = dep["pending"].(int) + 1
		}
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}
	total := len(s.docs)
	rate := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) * 100 / float64(total)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"period":          period,
		"date_range":      map[string]string{"start": "2024-03-01", "end": "2024-03-31"},
		"document_trends": []map[string]any{{"date": "2024-03-01", "count": total}},
		"approval_metrics": map[string]any{
			"total_documents": total,
			"approved":        counts["approved"],
			"rejected":        counts["rejected"],
			"pending":         counts["pending"],
			"approval_rate":   rate(counts["approved"]),
			"rejection_rate":  rate(counts["rejected"]),
		},
		"department_stats": departments,
	})
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var u User
	if !decode(w, r, &u) {
		return
	}
	for _, existing := range s.users {
		if existing.Username == u.Username {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Username already registered"})
			return
		}
	}
	u.ID = s.id()
	u.IsActive = true
	s.users = append(s.users, &u)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request, u *User) {
	var body struct {
		Email      *string `json:"email"`
		FullName   *string `json:"full_name"`
		Role       *string `json:"role"`
		Department *string `json:"department"`
		IsActive   *bool   `json:"is_active"`
	}
	if !decode(w, r, &body) {
		return
	}
	if body.Email != nil {
		u.Email = *body.Email
	}
	if body.FullName != nil {
		u.FullName = *body.FullName
	}
	if body.Role != nil {
		u.Role = *body.Role
	}
	if body.Department != nil {
		u.Department = *body.Department
	}
	if body.IsActive != nil {
		u.IsActive = *body.IsActive
	}
	writeJSON(w, http.StatusOK, u)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
