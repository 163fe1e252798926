package identity

import (
	"context"
	"slices"
	"strings"
)

// User is the authenticated account as reported by GET /auth/me
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Area        string   `json:"area,omitempty"`
	Cargo       string   `json:"cargo,omitempty"`
}

// Name returns the best label for the user
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Initials returns up to two uppercase initials for avatars
func (u User) Initials() string {
	parts := strings.Fields(u.Name())
	var b strings.Builder
	for i, p := range parts {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(p)[0])))
	}
	return b.String()
}

// HasRole reports whether the user holds the role
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// HasPermission reports whether the user holds the permission.
// The "*" permission grants everything.
func (u User) HasPermission(permission string) bool {
	return slices.Contains(u.Permissions, "*") || slices.Contains(u.Permissions, permission)
}

// Credentials are submitted on the login form
type Credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"-"`
}

// LoginResult carries the bearer token issued by the backend
type LoginResult struct {
	Token string
	User  *User
}

// AuthGateway talks to the remote /auth endpoints
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*User, error)
}
