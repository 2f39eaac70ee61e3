package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func TestUsers_Lifecycle(t *testing.T) {
	u := NewUsers()
	require.True(t, u.CompleteList(u.Begin(domain.ConcernUsersList), []domain.User{
		{ID: "1", Username: "alice", IsActive: true},
		{ID: "2", Username: "bob", IsActive: true},
	}))
	require.True(t, u.CompleteDetail(u.Begin(domain.ConcernUsersDetail), &domain.User{ID: "2", Username: "bob", IsActive: true}))

	u.CompleteSaved(u.Begin(domain.ConcernUsersAction), &domain.User{ID: "3", Username: "carol", IsActive: true})
	u.CompleteSaved(u.Begin(domain.ConcernUsersAction), &domain.User{ID: "2", Username: "bob", FullName: "Bob B", IsActive: true})
	u.CompleteDeactivated(u.Begin(domain.ConcernUsersAction), "2")

	snap := u.Snapshot()
	require.Len(t, snap.Users, 3)
	assert.Equal(t, "Bob B", snap.Users[1].FullName)
	assert.False(t, snap.Users[1].IsActive)
	assert.False(t, snap.Selected.IsActive)
	assert.Equal(t, "carol", snap.Users[2].Username)
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()
	s.Documents.CompleteList(s.Documents.Begin(domain.ConcernDocumentsList),
		&domain.DocumentList{Documents: []domain.Document{{ID: "1"}}})
	tk := s.Search.BeginSearch("q")
	s.Search.CompleteSearch(tk, "q", nil)

	s.Reset()

	assert.Empty(t, s.Documents.Snapshot().Documents)
	assert.Empty(t, s.Search.Snapshot().Recent)
}
