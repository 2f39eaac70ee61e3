package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func TestAuth_LoginThenProfile(t *testing.T) {
	a := NewAuth()
	user := &domain.User{ID: "7", Username: "alice", Role: domain.RoleAdmin}

	require.True(t, a.CompleteLogin(a.Begin(domain.ConcernAuthLogin), &domain.LoginResult{
		Token: domain.Token{AccessToken: "tok", TokenType: "bearer"},
		User:  user,
	}))

	snap := a.Snapshot()
	assert.False(t, snap.IsAuthenticated(), "not authenticated until the profile fetch succeeds")
	assert.Equal(t, "tok", a.Token().AccessToken)

	require.True(t, a.CompleteProfile(a.Begin(domain.ConcernAuthProfile), user))
	snap = a.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, "alice", snap.Session.User.Username)
}

func TestAuth_RestoreToken(t *testing.T) {
	a := NewAuth()
	a.RestoreToken(domain.Token{AccessToken: "stored"})

	assert.False(t, a.Snapshot().IsAuthenticated())

	a.CompleteProfile(a.Begin(domain.ConcernAuthProfile), &domain.User{ID: "1"})
	assert.True(t, a.Snapshot().IsAuthenticated())
}

func TestAuth_FailProfileKeepsToken(t *testing.T) {
	a := NewAuth()
	a.RestoreToken(domain.Token{AccessToken: "stored"})
	require.True(t, a.CompleteProfile(a.Begin(domain.ConcernAuthProfile), &domain.User{ID: "1"}))

	stale := a.Begin(domain.ConcernAuthProfile)
	tk := a.Begin(domain.ConcernAuthProfile)
	assert.False(t, a.FailProfile(stale, errors.New("old")))
	assert.True(t, a.Snapshot().IsAuthenticated())

	require.True(t, a.FailProfile(tk, errors.New("timeout")))

	snap := a.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Equal(t, "stored", snap.Session.Token.AccessToken)
	assert.EqualError(t, snap.Concerns.Err(domain.ConcernAuthProfile), "timeout")
}

func TestAuth_ProfileAfterClearIsIgnored(t *testing.T) {
	a := NewAuth()
	a.RestoreToken(domain.Token{AccessToken: "stored"})
	tk := a.Begin(domain.ConcernAuthProfile)

	a.Clear()

	assert.False(t, a.CompleteProfile(tk, &domain.User{ID: "1"}))
	assert.False(t, a.Snapshot().IsAuthenticated())
	assert.True(t, a.Token().IsEmpty())
}

func TestAuth_ClearWithError(t *testing.T) {
	a := NewAuth()
	a.RestoreToken(domain.Token{AccessToken: "stored"})
	a.CompleteProfile(a.Begin(domain.ConcernAuthProfile), &domain.User{ID: "1"})

	expired := &domain.RemoteError{Kind: domain.ErrorKindAuthentication, StatusCode: 401, Message: "expired"}
	a.ClearWithError(domain.ConcernAuthProfile, expired)

	snap := a.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Nil(t, snap.Session.User)
	assert.True(t, errors.Is(snap.Concerns.Err(domain.ConcernAuthProfile), domain.ErrAuthentication))
}

func TestAuth_ProfileUpdate(t *testing.T) {
	a := NewAuth()
	a.RestoreToken(domain.Token{AccessToken: "t"})
	a.CompleteProfile(a.Begin(domain.ConcernAuthProfile), &domain.User{ID: "1", FullName: "Old"})

	a.CompleteProfileUpdate(a.Begin(domain.ConcernAuthUpdate), &domain.User{ID: "1", FullName: "New"})

	snap := a.Snapshot()
	assert.Equal(t, "New", snap.Session.User.FullName)
	assert.True(t, snap.IsAuthenticated())
}

func TestAuth_SnapshotUserIsACopy(t *testing.T) {
	a := NewAuth()
	a.RestoreToken(domain.Token{AccessToken: "t"})
	a.CompleteProfile(a.Begin(domain.ConcernAuthProfile), &domain.User{ID: "1", FullName: "A"})

	snap := a.Snapshot()
	snap.Session.User.FullName = "changed"

	assert.Equal(t, "A", a.Snapshot().Session.User.FullName)
}
