// Package auth verifies credentials and maps session tokens back to users.
package auth

import (
	"context"
	"errors"
	"fmt"

	"microposts/internal/domain"
	"microposts/internal/store"
	"microposts/internal/utils"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
)

// SessionToken is the opaque value stored in the session cookie.
type SessionToken string

// Credentials are submitted by the signin form.
type Credentials struct {
	Email    string
	Password string
}

// Authenticator is the capability handed to route handlers.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (SessionToken, error)
	Login(ctx context.Context, user *domain.User) (SessionToken, error)
	ResolveSession(ctx context.Context, token SessionToken) (*domain.User, error)
	Logout(ctx context.Context, token SessionToken) error
}

// UserFinder is the subset of the user store the authenticator reads.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// SessionAuthenticator signs tokens that point at Redis-backed sessions.
type SessionAuthenticator struct {
	users    UserFinder
	hasher   Hasher
	sessions *SessionStore
	secret   string
}

func NewSessionAuthenticator(users UserFinder, hasher Hasher, sessions *SessionStore, secret string) *SessionAuthenticator {
	return &SessionAuthenticator{users: users, hasher: hasher, sessions: sessions, secret: secret}
}

// Authenticate looks the user up by email and checks the password. Unknown
// users and wrong passwords both return ErrInvalidCredentials.
func (a *SessionAuthenticator) Authenticate(ctx context.Context, creds Credentials) (SessionToken, error) {
	user, err := a.users.FindByEmail(ctx, creds.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if err := a.hasher.Compare(user.Password, creds.Password); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.Login(ctx, user)
}

func (a *SessionAuthenticator) Login(ctx context.Context, user *domain.User) (SessionToken, error) {
	sid, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	tok, err := utils.GenerateSessionToken(sid, user.ID, a.secret, a.sessions.TTL())
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("Session established")
	return SessionToken(tok), nil
}

// ResolveSession returns the current user record for token, read fresh from
// the database. A deleted user invalidates the session.
func (a *SessionAuthenticator) ResolveSession(ctx context.Context, token SessionToken) (*domain.User, error) {
	claims, err := utils.ParseSessionToken(string(token), a.secret)
	if err != nil {
		return nil, ErrNoSession
	}
	sess, err := a.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || sess.UserID != claims.UserID {
		return nil, ErrNoSession
	}
	user, err := a.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		_ = a.sessions.Delete(ctx, claims.SessionID)
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout revokes the session behind token. Unparseable tokens are ignored.
func (a *SessionAuthenticator) Logout(ctx context.Context, token SessionToken) error {
	claims, err := utils.ParseSessionToken(string(token), a.secret)
	if err != nil {
		return nil
	}
	return a.sessions.Delete(ctx, claims.SessionID)
}
