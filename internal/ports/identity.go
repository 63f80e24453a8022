// Package ports defines the identity provider boundary.
package ports

import (
	"context"

	"github.com/songhaven/songbook/internal/domain"
)

// IdentityProvider is the interface to the external authentication service.
// Failures are returned unwrapped so the cause can be surfaced verbatim.
type IdentityProvider interface {
	// SignUp registers a new account and signs it in.
	SignUp(ctx context.Context, email, password string) (domain.User, error)

	// SignIn authenticates an existing account.
	SignIn(ctx context.Context, email, password string) (domain.User, error)

	// SignOut terminates the current session. Safe to call when signed out.
	SignOut(ctx context.Context) error
}
