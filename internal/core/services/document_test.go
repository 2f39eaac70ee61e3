package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

func newDocumentFixture() (*DocumentService, *state.Store, *mockGateway) {
	store := state.NewStore()
	store.Auth.RestoreToken(domain.Token{AccessToken: "tok"})
	gw := newMockGateway()
	gw.docs = []domain.Document{
		{ID: "1", Title: "Safety policy", Status: domain.DocumentStatusPending},
		{ID: "2", Title: "Budget", Status: domain.DocumentStatusApproved},
	}
	return NewDocumentService(store, gw, memory.NewTokenStore(), 20), store, gw
}

func TestDocumentService_List(t *testing.T) {
	svc, _, gw := newDocumentFixture()

	err := svc.List(context.Background(), domain.DocumentFilters{Type: "safety"})

	require.NoError(t, err)
	snap := svc.Snapshot()
	assert.Len(t, snap.Documents, 2)
	assert.Equal(t, 1, snap.Stats.Pending)
	assert.Equal(t, 1, snap.Stats.Approved)
	assert.Equal(t, "safety", gw.lastFilters.Type)
	assert.Equal(t, domain.FilterAll, gw.lastFilters.Status)
	assert.Equal(t, 20, gw.lastFilters.Limit)
}

func TestDocumentService_List_ErrorKeepsDocuments(t *testing.T) {
	ctx := context.Background()
	svc, _, gw := newDocumentFixture()
	require.NoError(t, svc.List(ctx, domain.DocumentFilters{}))

	gw.failWith("ListDocuments", &domain.RemoteError{Kind: domain.ErrorKindUnknown, StatusCode: 500, Message: "boom"})
	err := svc.List(ctx, domain.DocumentFilters{})

	require.Error(t, err)
	snap := svc.Snapshot()
	assert.Len(t, snap.Documents, 2)
	assert.Equal(t, domain.StatusFailed, snap.Concerns.Status(domain.ConcernDocumentsList))
}

func TestDocumentService_Unauthorized_EndsSession(t *testing.T) {
	svc, store, gw := newDocumentFixture()
	gw.failWith("ListDocuments", unauthorized())

	err := svc.List(context.Background(), domain.DocumentFilters{})

	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.True(t, store.Auth.Token().IsEmpty())
	assert.ErrorIs(t, store.Auth.Snapshot().Concerns.Err(domain.ConcernAuthProfile), domain.ErrAuthentication)
}

func TestDocumentService_Approve_ReconcilesList(t *testing.T) {
	ctx := context.Background()
	svc, _, gw := newDocumentFixture()
	require.NoError(t, svc.List(ctx, domain.DocumentFilters{}))
	require.NoError(t, svc.Get(ctx, "1"))

	gw.doc = &domain.Document{ID: "1", Title: "Safety policy", Status: domain.DocumentStatusApproved}
	require.NoError(t, svc.Approve(ctx, "1", "ok"))

	snap := svc.Snapshot()
	assert.Equal(t, domain.DocumentStatusApproved, snap.Documents[0].Status)
	require.NotNil(t, snap.Current)
	assert.Equal(t, domain.DocumentStatusApproved, snap.Current.Status)
	assert.Equal(t, 0, snap.Stats.Pending)
	assert.Equal(t, 2, snap.Stats.Approved)
}

func TestDocumentService_Reject_Failure(t *testing.T) {
	svc, _, gw := newDocumentFixture()
	gw.failWith("RejectDocument", &domain.RemoteError{Kind: domain.ErrorKindValidation, StatusCode: 400, Message: "Document is not pending"})

	err := svc.Reject(context.Background(), "2", "no")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StatusFailed, svc.Snapshot().Concerns.Status(domain.ConcernDocumentsAction))

	svc.ClearError(domain.ConcernDocumentsAction)
	assert.NoError(t, svc.Snapshot().Concerns.Err(domain.ConcernDocumentsAction))
}

func TestDocumentService_RequestRevision_Reloads(t *testing.T) {
	ctx := context.Background()
	svc, _, gw := newDocumentFixture()
	require.NoError(t, svc.List(ctx, domain.DocumentFilters{}))

	gw.doc = &domain.Document{ID: "1", Title: "Safety policy", Status: domain.DocumentStatusDraft}
	require.NoError(t, svc.RequestRevision(ctx, "1", domain.RevisionRequest{Changes: []string{"fix typo"}}))

	assert.Equal(t, 1, gw.called("RequestRevision"))
	assert.Equal(t, 1, gw.called("GetDocument"))
	assert.Equal(t, domain.DocumentStatusDraft, svc.Snapshot().Documents[0].Status)
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	svc, _, gw := newDocumentFixture()
	require.NoError(t, svc.List(ctx, domain.DocumentFilters{}))

	doc, err := svc.Upload(ctx, domain.UploadRequest{
		FileName:   "manual.pdf",
		Content:    []byte("%PDF"),
		Title:      "Manual",
		Type:       domain.DocumentTypeTraining,
		Department: "operations",
		Priority:   domain.PriorityLow,
	})

	require.NoError(t, err)
	assert.Equal(t, "new", doc.ID)
	snap := svc.Snapshot()
	assert.Equal(t, "new", snap.Documents[0].ID)
	assert.Equal(t, 3, snap.Pagination.Total)

	_, err = svc.Upload(ctx, domain.UploadRequest{FileName: "x.pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, gw.called("UploadDocument"))
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newDocumentFixture()
	require.NoError(t, svc.List(ctx, domain.DocumentFilters{}))
	require.NoError(t, svc.Get(ctx, "2"))

	require.NoError(t, svc.Delete(ctx, "2"))

	snap := svc.Snapshot()
	assert.Len(t, snap.Documents, 1)
	assert.Nil(t, snap.Current)
}

func TestDocumentService_Get_NotFound(t *testing.T) {
	svc, _, _ := newDocumentFixture()

	err := svc.Get(context.Background(), "99")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.StatusFailed, svc.Snapshot().Concerns.Status(domain.ConcernDocumentsDetail))
}

func TestDocumentService_Comments(t *testing.T) {
	ctx := context.Background()
	svc, _, gw := newDocumentFixture()
	gw.comments = []domain.Comment{{ID: "c1", DocumentID: "1", Text: "first"}}
	require.NoError(t, svc.Get(ctx, "1"))

	require.NoError(t, svc.Comments(ctx, "1"))
	require.NoError(t, svc.AddComment(ctx, "1", "second"))

	current := svc.Snapshot().Current
	require.NotNil(t, current)
	require.Len(t, current.Comments, 2)
	assert.Equal(t, "second", current.Comments[1].Text)

	resolved := true
	require.NoError(t, svc.UpdateComment(ctx, "c1", "first", &resolved))
	assert.True(t, svc.Snapshot().Current.Comments[0].Resolved)

	require.NoError(t, svc.DeleteComment(ctx, "c1"))
	assert.Len(t, svc.Snapshot().Current.Comments, 1)

	err := svc.AddComment(ctx, "1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, gw.called("AddComment"))
}

func TestDocumentService_AddCommentWhileListLoading(t *testing.T) {
	ctx := context.Background()
	svc, store, gw := newDocumentFixture()
	require.NoError(t, svc.Get(ctx, "1"))
	list := store.Documents.Begin(domain.ConcernDocumentsComments)

	require.NoError(t, svc.AddComment(ctx, "1", "second"))
	added := svc.Snapshot().Current.Comments

	assert.True(t, store.Documents.CompleteComments(list, "1",
		append([]domain.Comment{{ID: "c1", DocumentID: "1", Text: "first"}}, added...)))
	snap := svc.Snapshot()
	assert.Len(t, snap.Current.Comments, 2)
	assert.Equal(t, domain.StatusSucceeded, snap.Concerns.Status(domain.ConcernDocumentsComments))
	assert.Equal(t, domain.StatusSucceeded, snap.Concerns.Status(domain.ConcernDocumentsCommentAction))
	assert.Equal(t, 1, gw.called("AddComment"))
}

func TestDocumentService_WorkflowAndDownload(t *testing.T) {
	ctx := context.Background()
	svc, _, gw := newDocumentFixture()
	gw.workflow = []domain.WorkflowEntry{{Action: "approved"}}
	require.NoError(t, svc.Get(ctx, "1"))

	require.NoError(t, svc.Workflow(ctx, "1"))
	url, err := svc.DownloadLink(ctx, "1")

	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/1", url)
	snap := svc.Snapshot()
	assert.Len(t, snap.Workflow, 1)
	assert.Equal(t, url, snap.DownloadURL)

	svc.CloseDetail()
	assert.Nil(t, svc.Snapshot().Current)
}
