package interfaces

import (
	"context"

	"presupuestos_service/internal/domain/entities"
)

type ICredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (entities.Credential, error)
	Put(ctx context.Context, c entities.Credential) error
}

// ISessionStore keeps issued sessions so that sign-out revokes them.
type ISessionStore interface {
	Save(ctx context.Context, s entities.Session) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// IIdentityProvider verifies credentials and issues sessions.
type IIdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (entities.Session, error)
	SignOut(ctx context.Context, s entities.Session) error
	Verify(ctx context.Context, token string) (entities.Session, error)
}

// ISessionEvents is the session-change channel. Subscribers receive events
// until they call the returned cancel func.
type ISessionEvents interface {
	Publish(ev entities.SessionEvent)
	Subscribe(buffer int) (<-chan entities.SessionEvent, func())
}
