package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Login exchanges credentials for a token. The form encoding follows the
// OAuth2 password grant.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	var resp loginResponse
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		anonymous:   true,
		fallback:    "Login failed",
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, decodeError(http.StatusOK, domain.ErrNotAuthenticated)
	}

	token := domain.Token{AccessToken: resp.AccessToken, TokenType: resp.TokenType}
	if resp.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	user := resp.User.toDomain()
	if user != nil {
		c.setUser(user.ID)
	}
	return &domain.LoginResult{Token: token, User: user}, nil
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	defer c.setUser("")
	return c.send(ctx, http.MethodPost, "/auth/logout", nil, nil, "Logout failed")
}

// CurrentUser fetches the profile of the token holder.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var resp userDTO
	if err := c.get(ctx, "/auth/me", nil, &resp, "Failed to fetch profile"); err != nil {
		return nil, err
	}
	user := resp.toDomain()
	c.setUser(user.ID)
	return user, nil
}

// UpdateProfile applies self-service profile changes.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	body := profileUpdateBody{
		Email:              update.Email,
		FullName:           update.FullName,
		LanguagePreference: update.LanguagePreference,
	}
	var resp userDTO
	if err := c.send(ctx, http.MethodPut, "/auth/profile", body, &resp, "Failed to update profile"); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}
