package entities

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrSessionInvalid     = errors.New("session invalid or expired")
)

// Identity is what the identity provider exposes about a user.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Session is an issued sign-in. Token is the bearer credential.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	Token     string    `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionEventKind string

const (
	SessionSignedIn  SessionEventKind = "signed_in"
	SessionSignedOut SessionEventKind = "signed_out"
)

// SessionEvent is published whenever a session starts or ends.
type SessionEvent struct {
	Kind      SessionEventKind
	SessionID string
	Identity  Identity
	At        time.Time
}

// Credential backs email/password sign-in.
type Credential struct {
	Email        string
	UID          string
	PasswordHash string
}
