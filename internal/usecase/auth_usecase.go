package usecase

import (
	"context"
	"strings"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// AuthResult is an authenticated session together with its profile.
type AuthResult struct {
	Session entities.Session
	Profile entities.Profile
}

type IAuthUseCase interface {
	SignIn(ctx context.Context, email, password string) (AuthResult, error)
	SignOut(ctx context.Context, s entities.Session) error
	Authenticate(ctx context.Context, token string) (AuthResult, error)
}

type AuthUseCase struct {
	identity interfaces.IIdentityProvider
	profiles IProfileResolver
	logger   *zap.Logger
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(identity interfaces.IIdentityProvider, profiles IProfileResolver, logger *zap.Logger) *AuthUseCase {
	return &AuthUseCase{identity: identity, profiles: profiles, logger: logger}
}

// SignIn verifies the credentials and resolves the profile. When the profile
// cannot be read the fresh session is signed out again and the error returned.
func (u *AuthUseCase) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	ctx, span := tracer.Start(ctx, "AuthUseCase.SignIn")
	defer span.End()

	s, err := u.identity.SignIn(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	p, err := u.profiles.Resolve(ctx, s.Identity)
	if err != nil {
		if signOutErr := u.identity.SignOut(ctx, s); signOutErr != nil {
			u.logger.Warn("sign out after profile failure", zap.String("session_id", s.ID), zap.Error(signOutErr))
		}
		return AuthResult{}, failSpan(span, err)
	}
	u.logger.Info("signed in", zap.String("uid", p.UID), zap.String("role", string(p.Role)))
	return AuthResult{Session: s, Profile: p}, nil
}

func (u *AuthUseCase) SignOut(ctx context.Context, s entities.Session) error {
	return u.identity.SignOut(ctx, s)
}

// Authenticate resolves a bearer token into its session and profile.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (AuthResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return AuthResult{}, entities.ErrSessionInvalid
	}
	s, err := u.identity.Verify(ctx, token)
	if err != nil {
		return AuthResult{}, err
	}
	p, err := u.profiles.Resolve(ctx, s.Identity)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Session: s, Profile: p}, nil
}
