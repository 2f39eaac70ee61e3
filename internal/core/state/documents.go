package state

import (
	"slices"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// DocumentsSnapshot is a copy of the documents domain.
type DocumentsSnapshot struct {
	Documents  []domain.Document
	Pagination domain.Pagination
	Filters    domain.DocumentFilters

	// Current is the document held by the detail view, nil if none.
	Current *domain.Document

	// Workflow is the approval history of Current.
	Workflow []domain.WorkflowEntry

	// Bookmarked holds every document the user bookmarked that the client
	// has seen.
	Bookmarked []domain.Document

	// DownloadURL is the last download link fetched for Current.
	DownloadURL string

	Stats    domain.DocumentStats
	Concerns Concerns
}

// Documents is the state container for documents, their comments and
// their workflow.
type Documents struct {
	tracker

	documents   []domain.Document
	pagination  domain.Pagination
	filters     domain.DocumentFilters
	current     *domain.Document
	workflow    []domain.WorkflowEntry
	bookmarked  []domain.Document
	downloadURL string
	stats       domain.DocumentStats
}

// NewDocuments returns an empty container with default filters.
func NewDocuments() *Documents {
	return &Documents{
		tracker:    newTracker(),
		pagination: domain.DefaultPagination(),
		filters:    domain.DefaultDocumentFilters(),
	}
}

// Snapshot returns a copy of the current state.
func (d *Documents) Snapshot() DocumentsSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := DocumentsSnapshot{
		Documents:   cloneDocuments(d.documents),
		Pagination:  d.pagination,
		Filters:     d.filters,
		Workflow:    slices.Clone(d.workflow),
		Bookmarked:  cloneDocuments(d.bookmarked),
		DownloadURL: d.downloadURL,
		Stats:       d.stats,
		Concerns:    d.snapshot(),
	}
	if d.current != nil {
		c := cloneDocument(*d.current)
		snap.Current = &c
	}
	return snap
}

// Filters returns the active listing filters.
func (d *Documents) Filters() domain.DocumentFilters {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filters
}

// SetFilters merges f into the active filters and returns the result.
func (d *Documents) SetFilters(f domain.DocumentFilters) domain.DocumentFilters {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = d.filters.Merge(f)
	return d.filters
}

// ClearFilters restores the default filters.
func (d *Documents) ClearFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = domain.DefaultDocumentFilters()
}

// CompleteList replaces the list with a fetched page. Pagination is replaced
// only if the server sent it. Returns false if the ticket was superseded.
func (d *Documents) CompleteList(tk Ticket, list *domain.DocumentList) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.succeed(tk) {
		return false
	}
	d.documents = cloneDocuments(list.Documents)
	if list.Pagination != nil {
		d.pagination = *list.Pagination
	}
	for i := range d.documents {
		d.syncBookmark(d.documents[i])
	}
	d.stats = countStats(d.documents, d.pagination.Total)
	return true
}

// CompleteDetail replaces the held detail document wholesale.
func (d *Documents) CompleteDetail(tk Ticket, doc *domain.Document) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.succeed(tk) {
		return false
	}
	if d.current == nil || d.current.ID != doc.ID {
		d.workflow = nil
		d.downloadURL = ""
	}
	c := cloneDocument(*doc)
	d.current = &c
	return true
}

// CompleteMutation reconciles a server-confirmed document after approve,
// reject, bookmark or update. The list entry, the bookmark list and the
// detail copy are replaced together. The entity is applied even when the
// ticket is stale; only the concern status is left alone.
func (d *Documents) CompleteMutation(tk Ticket, doc *domain.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.succeed(tk)

	prev, known := d.find(doc.ID)
	if known {
		d.stats = moveStatus(d.stats, prev.Status, doc.Status)
	}

	if i := indexOf(d.documents, doc.ID); i >= 0 {
		d.documents[i] = cloneDocument(*doc)
	}
	d.syncBookmark(*doc)
	if d.current != nil && d.current.ID == doc.ID {
		comments := d.current.Comments
		c := cloneDocument(*doc)
		if c.Comments == nil {
			c.Comments = comments
		}
		d.current = &c
	}
}

// CompleteUpload adds a newly created document to the front of the list.
func (d *Documents) CompleteUpload(tk Ticket, doc *domain.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.succeed(tk)
	if indexOf(d.documents, doc.ID) >= 0 {
		return
	}
	d.documents = append([]domain.Document{cloneDocument(*doc)}, d.documents...)
	d.pagination.Total++
	d.stats.Total++
	d.stats = moveStatus(d.stats, "", doc.Status)
}

// CompleteDelete removes a server-deleted document from every list and
// clears the detail copy if it held it.
func (d *Documents) CompleteDelete(tk Ticket, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.succeed(tk)
	if prev, ok := d.find(id); ok {
		d.stats.Total = floor(d.stats.Total - 1)
		d.stats = moveStatus(d.stats, prev.Status, "")
	}
	if i := indexOf(d.documents, id); i >= 0 {
		d.documents = slices.Delete(d.documents, i, i+1)
		d.pagination.Total = floor(d.pagination.Total - 1)
	}
	if i := indexOf(d.bookmarked, id); i >= 0 {
		d.bookmarked = slices.Delete(d.bookmarked, i, i+1)
	}
	if d.current != nil && d.current.ID == id {
		d.current = nil
		d.workflow = nil
		d.downloadURL = ""
	}
}

// CompleteWorkflow stores the approval history of documentID if it is the
// held detail.
func (d *Documents) CompleteWorkflow(tk Ticket, documentID string, entries []domain.WorkflowEntry) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.succeed(tk) {
		return false
	}
	if d.current != nil && d.current.ID == documentID {
		d.workflow = slices.Clone(entries)
	}
	return true
}

// CompleteDownload stores a download link for documentID if it is the held
// detail.
func (d *Documents) CompleteDownload(tk Ticket, documentID, url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.succeed(tk) {
		return false
	}
	if d.current != nil && d.current.ID == documentID {
		d.downloadURL = url
	}
	return true
}

// CompleteComments replaces the comments of the held detail.
func (d *Documents) CompleteComments(tk Ticket, documentID string, comments []domain.Comment) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.succeed(tk) {
		return false
	}
	if d.current != nil && d.current.ID == documentID {
		d.current.Comments = slices.Clone(comments)
	}
	return true
}

// CompleteCommentAdded appends a confirmed comment to the held detail.
func (d *Documents) CompleteCommentAdded(tk Ticket, comment *domain.Comment) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.succeed(tk)
	if d.current == nil || d.current.ID != comment.DocumentID {
		return
	}
	if commentIndex(d.current.Comments, comment.ID) >= 0 {
		return
	}
	d.current.Comments = append(d.current.Comments, *comment)
}

// CompleteCommentUpdated replaces a confirmed comment in the held detail.
func (d *Documents) CompleteCommentUpdated(tk Ticket, comment *domain.Comment) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.succeed(tk)
	if d.current == nil {
		return
	}
	if i := commentIndex(d.current.Comments, comment.ID); i >= 0 {
		d.current.Comments[i] = *comment
	}
}

// CompleteCommentDeleted removes a deleted comment from the held detail.
func (d *Documents) CompleteCommentDeleted(tk Ticket, commentID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.succeed(tk)
	if d.current == nil {
		return
	}
	if i := commentIndex(d.current.Comments, commentID); i >= 0 {
		d.current.Comments = slices.Delete(d.current.Comments, i, i+1)
	}
}

// CloseDetail drops the held detail document.
func (d *Documents) CloseDetail() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = nil
	d.workflow = nil
	d.downloadURL = ""
}

// Reset returns the container to its initial state.
func (d *Documents) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
	d.documents = nil
	d.pagination = domain.DefaultPagination()
	d.filters = domain.DefaultDocumentFilters()
	d.current = nil
	d.workflow = nil
	d.bookmarked = nil
	d.downloadURL = ""
	d.stats = domain.DocumentStats{}
}

// find looks id up in the list, then the detail copy.
func (d *Documents) find(id string) (domain.Document, bool) {
	if i := indexOf(d.documents, id); i >= 0 {
		return d.documents[i], true
	}
	if d.current != nil && d.current.ID == id {
		return *d.current, true
	}
	return domain.Document{}, false
}

// syncBookmark keeps the bookmark list consistent with doc.Bookmarked.
func (d *Documents) syncBookmark(doc domain.Document) {
	i := indexOf(d.bookmarked, doc.ID)
	switch {
	case doc.Bookmarked && i >= 0:
		d.bookmarked[i] = cloneDocument(doc)
	case doc.Bookmarked:
		d.bookmarked = append(d.bookmarked, cloneDocument(doc))
	case i >= 0:
		d.bookmarked = slices.Delete(d.bookmarked, i, i+1)
	}
}

func indexOf(docs []domain.Document, id string) int {
	return slices.IndexFunc(docs, func(d domain.Document) bool { return d.ID == id })
}

func commentIndex(comments []domain.Comment, id string) int {
	return slices.IndexFunc(comments, func(c domain.Comment) bool { return c.ID == id })
}

func cloneDocument(doc domain.Document) domain.Document {
	doc.Comments = slices.Clone(doc.Comments)
	return doc
}

func cloneDocuments(docs []domain.Document) []domain.Document {
	if docs == nil {
		return nil
	}
	out := make([]domain.Document, len(docs))
	for i := range docs {
		out[i] = cloneDocument(docs[i])
	}
	return out
}

// countStats derives the counters from a fetched page. total overrides the
// page length when the server reported one.
func countStats(docs []domain.Document, total int) domain.DocumentStats {
	var s domain.DocumentStats
	for i := range docs {
		s = moveStatus(s, "", docs[i].Status)
	}
	s.Total = max(total, len(docs))
	return s
}

// moveStatus moves one document between status counters. Counters never go
// below zero.
func moveStatus(s domain.DocumentStats, from, to domain.DocumentStatus) domain.DocumentStats {
	if from == to {
		return s
	}
	switch from {
	case domain.DocumentStatusPending:
		s.Pending = floor(s.Pending - 1)
	case domain.DocumentStatusApproved:
		s.Approved = floor(s.Approved - 1)
	case domain.DocumentStatusRejected:
		s.Rejected = floor(s.Rejected - 1)
	}
	switch to {
	case domain.DocumentStatusPending:
		s.Pending++
	case domain.DocumentStatusApproved:
		s.Approved++
	case domain.DocumentStatusRejected:
		s.Rejected++
	}
	return s
}

func floor(n int) int {
	return max(n, 0)
}
