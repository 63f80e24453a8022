package rest

import (
	"context"
	"net/http"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
)

// Identity implements ports.IdentityProvider over the REST API.
//
// Endpoints:
//
//	POST /auth/signup  {email, password} -> {userDisplayName, userEmail}
//	POST /auth/signin  {email, password} -> {userDisplayName, userEmail}
//	POST /auth/signout                   -> 204
type Identity struct {
	client *Client
}

// NewIdentity creates an identity provider backed by the REST client.
func NewIdentity(client *Client) *Identity {
	return &Identity{client: client}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new account and signs it in.
func (i *Identity) SignUp(ctx context.Context, email, password string) (domain.User, error) {
	var user domain.User
	err := i.client.do(ctx, http.MethodPost, "/auth/signup", credentials{Email: email, Password: password}, &user)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SignIn authenticates an existing account.
func (i *Identity) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	var user domain.User
	err := i.client.do(ctx, http.MethodPost, "/auth/signin", credentials{Email: email, Password: password}, &user)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SignOut terminates the current session.
func (i *Identity) SignOut(ctx context.Context) error {
	return i.client.do(ctx, http.MethodPost, "/auth/signout", nil, nil)
}

// Verify that Identity implements the IdentityProvider interface
var _ ports.IdentityProvider = (*Identity)(nil)
