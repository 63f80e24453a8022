package service

import (
	"context"
	"log/slog"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
	"github.com/songhaven/songbook/internal/store"
)

// IdentityService mediates the external identity provider and mirrors the
// signed-in user into shared state. Provider failures are wrapped as
// AuthError with the cause preserved verbatim.
type IdentityService struct {
	logger   *slog.Logger
	provider ports.IdentityProvider
	store    *store.Store
	bus      ports.EventBus
}

// NewIdentityService creates a new identity service.
func NewIdentityService(
	logger *slog.Logger,
	provider ports.IdentityProvider,
	st *store.Store,
	bus ports.EventBus,
) *IdentityService {
	return &IdentityService{
		logger:   logger,
		provider: provider,
		store:    st,
		bus:      bus,
	}
}

// SignUp registers a new account and signs it in.
func (s *IdentityService) SignUp(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		aerr := domain.NewAuthError("sign_up", err)
		s.logger.Warn("sign-up failed", slog.Any("error", aerr))
		return domain.User{}, aerr
	}

	s.store.Dispatch(domain.UserAction{User: user})
	s.logger.Info("user signed up", slog.String("display_name", user.DisplayName))
	s.bus.Publish(domain.NewUserSignedInEvent(user))
	return user, nil
}

// SignIn authenticates an existing account and mirrors it into state.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		aerr := domain.NewAuthError("sign_in", err)
		s.logger.Warn("sign-in failed", slog.Any("error", aerr))
		return domain.User{}, aerr
	}

	s.store.Dispatch(domain.UserAction{User: user})
	s.logger.Info("user signed in", slog.String("display_name", user.DisplayName))
	s.bus.Publish(domain.NewUserSignedInEvent(user))
	return user, nil
}

// SignOut ends the provider session and resets the user to the guest
// sentinel. A provider failure still resets local state.
func (s *IdentityService) SignOut(ctx context.Context) error {
	err := s.provider.SignOut(ctx)

	s.store.Dispatch(domain.UserAction{User: domain.GuestUser()})
	s.bus.Publish(domain.NewUserSignedOutEvent())

	if err != nil {
		aerr := domain.NewAuthError("sign_out", err)
		s.logger.Warn("sign-out failed", slog.Any("error", aerr))
		return aerr
	}

	s.logger.Info("user signed out")
	return nil
}
