package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// SessionStore persists session rows. The GORM implementation lives in
// internal/repository; tests use an in-memory fake.
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sessions issues and resolves opaque session tokens with a fixed TTL.
type Sessions struct {
	store SessionStore
	ttl   time.Duration
}

func NewSessions(store SessionStore, ttl time.Duration) *Sessions {
	return &Sessions{store: store, ttl: ttl}
}

// Issue creates a session for the user and returns it with a fresh token.
func (s *Sessions) Issue(ctx context.Context, userID uint) (*model.Session, error) {
	now := model.Now()
	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve maps a token to the owning user ID. Missing or expired sessions
// fail closed with an authorization error.
func (s *Sessions) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, errs.Authorizationf("missing session token")
	}
	session, err := s.store.FindByToken(ctx, token)
	if err != nil {
		return 0, errs.Authorizationf("invalid session")
	}
	if session.Expired(model.Now()) {
		return 0, errs.Authorizationf("session expired")
	}
	return session.UserID, nil
}

// Revoke deletes the session backing a token. Revoking an unknown token is
// not an error.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.DeleteByToken(ctx, token)
}

// PurgeExpired removes sessions past their expiry and returns the count.
func (s *Sessions) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, model.Now())
}

// TTL exposes the configured session lifetime for cookie max-age.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}
