package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/tidwall/gjson"
)

// tokenPaths are the places login responses have carried the bearer token.
var tokenPaths = []string{"access_token", "accessToken", "token", "data.access_token", "data.accessToken", "data.token"}

// userPaths are the places login and me responses have carried the user.
var userPaths = []string{"user", "data.user", "data"}

// AuthGateway implements identity.AuthGateway against /auth.
type AuthGateway struct {
	client *apiclient.Client
}

// NewAuthGateway creates an AuthGateway.
func NewAuthGateway(client *apiclient.Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// Login exchanges credentials for a bearer token.
func (g *AuthGateway) Login(ctx context.Context, creds identity.Credentials) (*identity.LoginResult, error) {
	resp, err := g.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   creds,
	})
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(resp.Body)
	var token string
	for _, p := range tokenPaths {
		if v := parsed.Get(p); v.Type == gjson.String && v.String() != "" {
			token = v.String()
			break
		}
	}
	if token == "" {
		return nil, fmt.Errorf("login response carries no token")
	}

	result := &identity.LoginResult{Token: token}
	for _, p := range userPaths {
		if v := parsed.Get(p); v.IsObject() && v.Get("username").Exists() {
			user, err := decodeUser(v)
			if err != nil {
				return nil, err
			}
			result.User = user
			break
		}
	}
	return result, nil
}

// Logout revokes the token in the request context.
func (g *AuthGateway) Logout(ctx context.Context) error {
	return g.client.Post(ctx, "/auth/logout", nil, nil)
}

// Me returns the account behind the token in the request context.
func (g *AuthGateway) Me(ctx context.Context) (*identity.User, error) {
	resp, err := g.client.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/auth/me"})
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(resp.Body)
	for _, p := range userPaths {
		if v := parsed.Get(p); v.IsObject() && v.Get("username").Exists() {
			return decodeUser(v)
		}
	}
	return decodeUser(parsed)
}

func decodeUser(v gjson.Result) (*identity.User, error) {
	var user identity.User
	if err := json.Unmarshal([]byte(v.Raw), &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	if user.ID == "" {
		user.ID = v.Get("_id").String()
	}
	if user.DisplayName == "" {
		user.DisplayName = v.Get("fullName").String()
	}
	return &user, nil
}

var _ identity.AuthGateway = (*AuthGateway)(nil)
