package state

import (
	"slices"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// NotificationsSnapshot is a copy of the notifications domain.
type NotificationsSnapshot struct {
	Notifications []domain.Notification

	// UnreadCount always equals the number of unread entries in
	// Notifications.
	UnreadCount int

	// Total is the server-side total for the active filters.
	Total int

	Filters  domain.NotificationFilters
	Settings domain.NotificationSettings
	Concerns Concerns
}

// Notifications is the state container for the notification surface.
//
// The unread count is recomputed from the list inside every transition
// that changes the list or a read flag.
type Notifications struct {
	tracker

	items    []domain.Notification
	unread   int
	total    int
	filters  domain.NotificationFilters
	settings domain.NotificationSettings
}

// NewNotifications returns an empty container.
func NewNotifications() *Notifications {
	return &Notifications{
		tracker:  newTracker(),
		settings: domain.DefaultNotificationSettings(),
	}
}

// Snapshot returns a copy of the current state.
func (n *Notifications) Snapshot() NotificationsSnapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return NotificationsSnapshot{
		Notifications: slices.Clone(n.items),
		UnreadCount:   n.unread,
		Total:         n.total,
		Filters:       n.filters,
		Settings:      n.settings,
		Concerns:      n.snapshot(),
	}
}

// UnreadCount returns the number of unread notifications held.
func (n *Notifications) UnreadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.unread
}

// Filters returns the active listing filters.
func (n *Notifications) Filters() domain.NotificationFilters {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.filters
}

// SetFilters replaces the listing filters.
func (n *Notifications) SetFilters(f domain.NotificationFilters) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.filters = f
}

// CompleteList replaces the held notifications.
func (n *Notifications) CompleteList(tk Ticket, list *domain.NotificationList) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.succeed(tk) {
		return false
	}
	n.items = slices.Clone(list.Notifications)
	n.total = max(list.Total, len(n.items))
	n.recount()
	return true
}

// CompleteMarkAsRead flips one notification to read. Marking an already
// read or unknown notification changes nothing.
func (n *Notifications) CompleteMarkAsRead(tk Ticket, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.succeed(tk)
	if i := n.index(id); i >= 0 {
		n.items[i].IsRead = true
	}
	n.recount()
}

// CompleteMarkAllAsRead marks every held notification read.
func (n *Notifications) CompleteMarkAllAsRead(tk Ticket) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.succeed(tk)
	for i := range n.items {
		n.items[i].IsRead = true
	}
	n.unread = 0
}

// CompleteDelete removes a server-deleted notification.
func (n *Notifications) CompleteDelete(tk Ticket, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.succeed(tk)
	if i := n.index(id); i >= 0 {
		n.items = slices.Delete(n.items, i, i+1)
		n.total = floor(n.total - 1)
	}
	n.recount()
}

// CompleteSettings stores the delivery preferences the server returned.
func (n *Notifications) CompleteSettings(tk Ticket, s *domain.NotificationSettings) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.succeed(tk)
	n.settings = *s
}

// Reset returns the container to its initial state.
func (n *Notifications) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reset()
	n.items = nil
	n.unread = 0
	n.total = 0
	n.filters = domain.NotificationFilters{}
	n.settings = domain.DefaultNotificationSettings()
}

func (n *Notifications) index(id string) int {
	return slices.IndexFunc(n.items, func(x domain.Notification) bool { return x.ID == id })
}

func (n *Notifications) recount() {
	n.unread = domain.CountUnread(n.items)
}
