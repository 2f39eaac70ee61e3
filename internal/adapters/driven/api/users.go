package api

import (
	"context"
	"net/http"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// ListUsers returns users matching filters.
func (c *Client) ListUsers(ctx context.Context, filters domain.UserFilters) ([]domain.User, error) {
	q, err := encodeQuery(filters)
	if err != nil {
		return nil, err
	}

	var resp []userDTO
	if err := c.get(ctx, "/users", q, &resp, "Failed to fetch users"); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(resp))
	for i := range resp {
		users = append(users, *resp[i].toDomain())
	}
	return users, nil
}

// GetUser fetches one user.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var resp userDTO
	if err := c.get(ctx, "/users/"+escape(id), nil, &resp, "Failed to fetch user"); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// CreateUser adds a user.
func (c *Client) CreateUser(ctx context.Context, user domain.NewUser) (*domain.User, error) {
	body := newUserBody{
		Username:   user.Username,
		Email:      user.Email,
		Password:   user.Password,
		FullName:   user.FullName,
		Role:       string(user.Role),
		Department: user.Department,
	}
	var resp userDTO
	if err := c.send(ctx, http.MethodPost, "/users", body, &resp, "Failed to create user"); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// UpdateUser changes a user.
func (c *Client) UpdateUser(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	body := userUpdateBody{
		Email:      update.Email,
		FullName:   update.FullName,
		Department: update.Department,
		IsActive:   update.IsActive,
	}
	if update.Role != nil {
		r := string(*update.Role)
		body.Role = &r
	}
	var resp userDTO
	if err := c.send(ctx, http.MethodPut, "/users/"+escape(id), body, &resp, "Failed to update user"); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// DeactivateUser disables a user's account.
func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/users/"+escape(id), nil, nil, "Failed to deactivate user")
}
