package state

import (
	"slices"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// UsersSnapshot is a copy of the user administration state.
type UsersSnapshot struct {
	Users    []domain.User
	Selected *domain.User
	Concerns Concerns
}

// Users is the state container for user administration.
type Users struct {
	tracker

	users    []domain.User
	selected *domain.User
}

// NewUsers returns an empty container.
func NewUsers() *Users {
	return &Users{tracker: newTracker()}
}

// Snapshot returns a copy of the current state.
func (u *Users) Snapshot() UsersSnapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return UsersSnapshot{
		Users:    slices.Clone(u.users),
		Selected: cloneUser(u.selected),
		Concerns: u.snapshot(),
	}
}

// CompleteList replaces the user list.
func (u *Users) CompleteList(tk Ticket, users []domain.User) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.succeed(tk) {
		return false
	}
	u.users = slices.Clone(users)
	return true
}

// CompleteDetail replaces the selected user.
func (u *Users) CompleteDetail(tk Ticket, user *domain.User) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.succeed(tk) {
		return false
	}
	u.selected = cloneUser(user)
	return true
}

// CompleteSaved reconciles a created or updated user into the list and the
// selection.
func (u *Users) CompleteSaved(tk Ticket, user *domain.User) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.succeed(tk)
	if i := u.index(user.ID); i >= 0 {
		u.users[i] = *user
	} else {
		u.users = append(u.users, *user)
	}
	if u.selected != nil && u.selected.ID == user.ID {
		u.selected = cloneUser(user)
	}
}

// CompleteDeactivated marks a user inactive everywhere it is held.
func (u *Users) CompleteDeactivated(tk Ticket, id string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.succeed(tk)
	if i := u.index(id); i >= 0 {
		u.users[i].IsActive = false
	}
	if u.selected != nil && u.selected.ID == id {
		u.selected.IsActive = false
	}
}

// Reset returns the container to its initial state.
func (u *Users) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.reset()
	u.users = nil
	u.selected = nil
}

func (u *Users) index(id string) int {
	return slices.IndexFunc(u.users, func(x domain.User) bool { return x.ID == id })
}
