package domain

import "time"

// NotificationType categorises a notification.
type NotificationType string

// Available notification types.
const (
	NotificationDocumentAction   NotificationType = "document_action"
	NotificationSystem           NotificationType = "system"
	NotificationComment          NotificationType = "comment"
	NotificationDeadlineReminder NotificationType = "deadline_reminder"
	NotificationApprovalRequest  NotificationType = "approval_request"
)

// Notification is an alert delivered by the server.
type Notification struct {
	ID             string
	Type           NotificationType
	Title          string
	Message        string
	Priority       Priority
	DocumentID     string
	ActionRequired bool
	IsRead         bool
	Timestamp      time.Time
}

// NotificationFilters narrows a notification listing.
type NotificationFilters struct {
	Type       string `url:"type,omitempty"`
	Priority   string `url:"priority,omitempty"`
	UnreadOnly bool   `url:"unread_only,omitempty"`
	Page       int    `url:"page,omitempty"`
	Limit      int    `url:"limit,omitempty"`
}

// NotificationList is one page of notifications.
type NotificationList struct {
	Notifications []Notification
	Total         int
}

// CountUnread returns the number of unread notifications in ns.
func CountUnread(ns []Notification) int {
	n := 0
	for i := range ns {
		if !ns[i].IsRead {
			n++
		}
	}
	return n
}

// ChannelSettings toggles notification categories for one delivery channel.
type ChannelSettings struct {
	DocumentApproval  bool
	DeadlineReminders bool
	SystemUpdates     bool
	Comments          bool
}

// NotificationSettings are the user's delivery preferences.
type NotificationSettings struct {
	Email ChannelSettings
	Push  ChannelSettings

	// Frequency is one of immediate, daily, weekly.
	Frequency string
}

// DefaultNotificationSettings mirrors the server defaults.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Email: ChannelSettings{
			DocumentApproval:  true,
			DeadlineReminders: true,
			SystemUpdates:     true,
			Comments:          true,
		},
		Push: ChannelSettings{
			DocumentApproval:  true,
			DeadlineReminders: true,
			Comments:          true,
		},
		Frequency: "immediate",
	}
}
