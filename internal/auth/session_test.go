package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

type fakeSessionStore struct {
	sessions map[string]model.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]model.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *model.Session) error {
	f.sessions[session.Token] = *session
	return nil
}

func (f *fakeSessionStore) FindByToken(_ context.Context, token string) (*model.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, errs.NotFoundf("session not found")
	}
	return &session, nil
}

func (f *fakeSessionStore) DeleteByToken(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for token, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func TestIssueAndResolve(t *testing.T) {
	sessions := NewSessions(newFakeSessionStore(), time.Hour)
	ctx := context.Background()

	session, err := sessions.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	userID, err := sessions.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestResolveFailsClosed(t *testing.T) {
	sessions := NewSessions(newFakeSessionStore(), time.Hour)
	ctx := context.Background()

	_, err := sessions.Resolve(ctx, "")
	assert.True(t, errors.Is(err, errs.ErrAuthorization))

	_, err = sessions.Resolve(ctx, "unknown-token")
	assert.True(t, errors.Is(err, errs.ErrAuthorization))
}

func TestResolveRejectsExpired(t *testing.T) {
	store := newFakeSessionStore()
	sessions := NewSessions(store, -time.Minute) // already expired at issue
	ctx := context.Background()

	session, err := sessions.Issue(ctx, 42)
	require.NoError(t, err)

	_, err = sessions.Resolve(ctx, session.Token)
	assert.True(t, errors.Is(err, errs.ErrAuthorization))
}

func TestRevoke(t *testing.T) {
	sessions := NewSessions(newFakeSessionStore(), time.Hour)
	ctx := context.Background()

	session, err := sessions.Issue(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, sessions.Revoke(ctx, session.Token))
	_, err = sessions.Resolve(ctx, session.Token)
	assert.True(t, errors.Is(err, errs.ErrAuthorization))

	// Revoking an unknown or empty token is not an error.
	assert.NoError(t, sessions.Revoke(ctx, "unknown"))
	assert.NoError(t, sessions.Revoke(ctx, ""))
}

func TestPurgeExpired(t *testing.T) {
	store := newFakeSessionStore()
	ctx := context.Background()

	expired := NewSessions(store, -time.Minute)
	live := NewSessions(store, time.Hour)

	_, err := expired.Issue(ctx, 1)
	require.NoError(t, err)
	_, err = expired.Issue(ctx, 2)
	require.NoError(t, err)
	keep, err := live.Issue(ctx, 3)
	require.NoError(t, err)

	purged, err := live.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = live.Resolve(ctx, keep.Token)
	assert.NoError(t, err)
}
