// Package identity is the email/password identity provider. It issues
// HS256 session tokens whose ids are kept in a session store, so signing out
// revokes a token before it expires.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var tracer = otel.Tracer("identity/provider")

var validate = validator.New()

// Claims are the custom claims of a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Provider struct {
	credentials interfaces.ICredentialRepository
	sessions    interfaces.ISessionStore
	events      interfaces.ISessionEvents
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

var _ interfaces.IIdentityProvider = (*Provider)(nil)

func NewProvider(
	credentials interfaces.ICredentialRepository,
	sessions interfaces.ISessionStore,
	events interfaces.ISessionEvents,
	secret string,
	ttl time.Duration,
	logger *zap.Logger,
) *Provider {
	return &Provider{
		credentials: credentials,
		sessions:    sessions,
		events:      events,
		secret:      []byte(secret),
		ttl:         ttl,
		now:         time.Now,
		logger:      logger,
	}
}

// HashPassword returns the bcrypt hash stored in a credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (entities.Session, error) {
	ctx, span := tracer.Start(ctx, "Provider.SignIn")
	defer span.End()

	email = NormalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return entities.Session{}, entities.ErrInvalidEmail
	}

	cred, err := p.credentials.GetByEmail(ctx, email)
	if err != nil {
		return entities.Session{}, fmt.Errorf("get credential: %w", err)
	}
	if cred.UID == "" {
		p.logger.Warn("sign-in: unknown email", zap.String("email", email))
		return entities.Session{}, entities.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		p.logger.Warn("sign-in: wrong password", zap.String("uid", cred.UID))
		return entities.Session{}, entities.ErrInvalidCredentials
	}
	span.SetAttributes(attribute.String("uid", cred.UID))

	now := p.now().UTC()
	s := entities.Session{
		ID:        uuid.NewString(),
		Identity:  entities.Identity{UID: cred.UID, Email: cred.Email},
		IssuedAt:  now,
		ExpiresAt: now.Add(p.ttl),
	}
	token, err := p.sign(s)
	if err != nil {
		return entities.Session{}, fmt.Errorf("sign session token: %w", err)
	}
	s.Token = token

	if err := p.sessions.Save(ctx, s); err != nil {
		return entities.Session{}, fmt.Errorf("save session: %w", err)
	}

	p.events.Publish(entities.SessionEvent{Kind: entities.SessionSignedIn, SessionID: s.ID, Identity: s.Identity, At: now})
	p.logger.Info("signed in", zap.String("uid", cred.UID), zap.String("session_id", s.ID))
	return s, nil
}

func (p *Provider) SignOut(ctx context.Context, s entities.Session) error {
	ctx, span := tracer.Start(ctx, "Provider.SignOut")
	defer span.End()

	if err := p.sessions.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	p.events.Publish(entities.SessionEvent{Kind: entities.SessionSignedOut, SessionID: s.ID, Identity: s.Identity, At: p.now().UTC()})
	p.logger.Info("signed out", zap.String("uid", s.Identity.UID), zap.String("session_id", s.ID))
	return nil
}

// Verify parses token and checks that its session was not revoked.
func (p *Provider) Verify(ctx context.Context, token string) (entities.Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil || !parsed.Valid {
		return entities.Session{}, entities.ErrSessionInvalid
	}

	ok, err := p.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return entities.Session{}, fmt.Errorf("check session: %w", err)
	}
	if !ok {
		return entities.Session{}, entities.ErrSessionInvalid
	}

	s := entities.Session{
		ID:       claims.ID,
		Identity: entities.Identity{UID: claims.Subject, Email: claims.Email},
		Token:    token,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

func (p *Provider) sign(s entities.Session) (string, error) {
	if len(p.secret) == 0 {
		return "", errors.New("empty signing secret")
	}
	claims := Claims{
		Email: s.Identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.Identity.UID,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
