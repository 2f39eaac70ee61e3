package domain

import (
	"strings"
	"time"
)

// Token is the bearer credential issued by the document API at login.
type Token struct {
	// AccessToken is the bearer token for API access.
	AccessToken string
	// TokenType is typically "bearer".
	TokenType string
	// Expiry is when the access token expires. Zero means unknown.
	Expiry time.Time
}

// IsEmpty returns true if no access token is held.
func (t Token) IsEmpty() bool {
	return strings.TrimSpace(t.AccessToken) == ""
}

// IsExpired returns true if the token has expired.
func (t Token) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}

// Credentials are the username/password pair submitted at login.
type Credentials struct {
	Username string
	Password string
}

// Validate checks both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return ErrInvalidInput
	}
	return nil
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token Token
	User  *User
}

// Role is the organisational role of a user.
type Role string

// Available roles.
const (
	RoleAdmin       Role = "admin"
	RoleExecutive   Role = "executive"
	RoleMaintenance Role = "maintenance"
	RoleCompliance  Role = "compliance"
	RoleFinance     Role = "finance"
	RoleUser        Role = "user"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleExecutive, RoleMaintenance, RoleCompliance, RoleFinance, RoleUser:
		return true
	default:
		return false
	}
}

// CanApprove returns true if the role may approve or reject documents.
func (r Role) CanApprove() bool {
	return r == RoleAdmin || r == RoleExecutive
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// User is a person known to the document API.
type User struct {
	ID                 string
	Username           string
	Email              string
	FullName           string
	Role               Role
	Department         string
	LanguagePreference string
	Permissions        []string
	IsActive           bool
	IsVerified         bool
	CreatedAt          time.Time
	LastLogin          time.Time
}

// DisplayName returns the full name, falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// ProfileUpdate carries the self-service profile fields. Nil fields are left
// unchanged on the server.
type ProfileUpdate struct {
	Email              *string
	FullName           *string
	LanguagePreference *string
}

// Apply merges the non-nil fields into u.
func (p ProfileUpdate) Apply(u *User) {
	if u == nil {
		return
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.LanguagePreference != nil {
		u.LanguagePreference = *p.LanguagePreference
	}
}

// NewUser is the admin payload for creating a user.
type NewUser struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	Role       Role
	Department string
}

// Validate checks the required fields.
func (n NewUser) Validate() error {
	if n.Username == "" || n.Email == "" || n.Password == "" {
		return ErrInvalidInput
	}
	if n.Role != "" && !n.Role.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// UserUpdate is the admin payload for updating a user.
type UserUpdate struct {
	Email      *string
	FullName   *string
	Role       *Role
	Department *string
	IsActive   *bool
}

// UserFilters narrows the admin user list.
type UserFilters struct {
	Role       string `url:"role,omitempty"`
	Department string `url:"department,omitempty"`
	Skip       int    `url:"skip,omitempty"`
	Limit      int    `url:"limit,omitempty"`
}

// Session is the signed-in state of the client.
type Session struct {
	Token Token
	User  *User

	// ProfileLoaded is true once the last identity fetch succeeded.
	ProfileLoaded bool
}

// IsAuthenticated returns true iff a non-empty token is held and the last
// identity fetch succeeded.
func (s Session) IsAuthenticated() bool {
	return !s.Token.IsEmpty() && s.ProfileLoaded && s.User != nil
}
