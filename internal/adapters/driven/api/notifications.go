package api

import (
	"context"
	"net/http"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// ListNotifications returns one page of notifications.
func (c *Client) ListNotifications(ctx context.Context, filters domain.NotificationFilters) (*domain.NotificationList, error) {
	q, err := encodeQuery(filters)
	if err != nil {
		return nil, err
	}

	var resp notificationListResponse
	if err := c.get(ctx, "/notifications", q, &resp, "Failed to fetch notifications"); err != nil {
		return nil, err
	}

	list := &domain.NotificationList{
		Notifications: make([]domain.Notification, 0, len(resp.Notifications)),
		Total:         resp.Total,
	}
	for i := range resp.Notifications {
		list.Notifications = append(list.Notifications, resp.Notifications[i].toDomain())
	}
	return list, nil
}

// MarkAsRead marks one notification read.
func (c *Client) MarkAsRead(ctx context.Context, id string) error {
	path := "/notifications/" + escape(id) + "/read"
	return c.send(ctx, http.MethodPut, path, nil, nil, "Failed to mark notification as read")
}

// MarkAllAsRead marks every notification read.
func (c *Client) MarkAllAsRead(ctx context.Context) error {
	return c.send(ctx, http.MethodPut, "/notifications/read-all", nil, nil, "Failed to mark all notifications as read")
}

// DeleteNotification removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/notifications/"+escape(id), nil, nil, "Failed to delete notification")
}

// NotificationSettings returns the delivery preferences.
func (c *Client) NotificationSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	var resp notificationSettingsDTO
	if err := c.get(ctx, "/notifications/settings", nil, &resp, "Failed to fetch notification settings"); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// UpdateNotificationSettings saves the delivery preferences.
func (c *Client) UpdateNotificationSettings(
	ctx context.Context, settings domain.NotificationSettings,
) (*domain.NotificationSettings, error) {
	body := notificationSettingsDTO{
		Email:     channelFromDomain(settings.Email),
		Push:      channelFromDomain(settings.Push),
		Frequency: settings.Frequency,
	}
	var resp notificationSettingsDTO
	err := c.send(ctx, http.MethodPut, "/notifications/settings", body, &resp, "Failed to update notification settings")
	if err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}
