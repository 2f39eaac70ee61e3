package state

import (
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// AuthSnapshot is a copy of the session state.
type AuthSnapshot struct {
	Session  domain.Session
	Concerns Concerns
}

// IsAuthenticated reports whether the snapshot holds a verified session.
func (s AuthSnapshot) IsAuthenticated() bool {
	return s.Session.IsAuthenticated()
}

// Auth is the state container for the session.
type Auth struct {
	tracker

	session domain.Session
}

// NewAuth returns a signed-out container.
func NewAuth() *Auth {
	return &Auth{tracker: newTracker()}
}

// Snapshot returns a copy of the current state.
func (a *Auth) Snapshot() AuthSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s := a.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return AuthSnapshot{Session: s, Concerns: a.snapshot()}
}

// Token returns the held token.
func (a *Auth) Token() domain.Token {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Token
}

// RestoreToken installs a token loaded from durable storage. The session is
// not authenticated until a profile fetch succeeds.
func (a *Auth) RestoreToken(token domain.Token) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = domain.Session{Token: token}
}

// CompleteLogin installs the issued token and the user returned with it.
func (a *Auth) CompleteLogin(tk Ticket, res *domain.LoginResult) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.succeed(tk) {
		return false
	}
	a.session = domain.Session{Token: res.Token, User: cloneUser(res.User)}
	return true
}

// CompleteProfile records a successful identity fetch. A profile that
// arrives after the session was cleared is ignored.
func (a *Auth) CompleteProfile(tk Ticket, user *domain.User) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.succeed(tk) {
		return false
	}
	if a.session.Token.IsEmpty() {
		return false
	}
	a.session.User = cloneUser(user)
	a.session.ProfileLoaded = true
	return true
}

// FailProfile records a failed identity fetch. The session stops being
// authenticated but keeps its token so a later fetch can restore it.
func (a *Auth) FailProfile(tk Ticket, err error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.fail(tk, err) {
		return false
	}
	a.session.ProfileLoaded = false
	return true
}

// CompleteProfileUpdate replaces the held user with the server's copy.
func (a *Auth) CompleteProfileUpdate(tk Ticket, user *domain.User) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.succeed(tk)
	if a.session.Token.IsEmpty() {
		return
	}
	a.session.User = cloneUser(user)
}

// Clear destroys the session. Outstanding tickets become stale.
func (a *Auth) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
	a.session = domain.Session{}
}

// ClearWithError destroys the session and records err against c so the
// login view can explain why the user was signed out.
func (a *Auth) ClearWithError(c domain.Concern, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
	a.session = domain.Session{}
	a.concerns[c] = ConcernState{Status: domain.StatusFailed, Err: err}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
