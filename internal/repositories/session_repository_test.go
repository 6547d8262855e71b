package repositories_test

import (
	"context"
	"testing"
	"time"

	"sueta_backend/internal/models"
	"sueta_backend/internal/repositories"
	"sueta_backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (repositories.SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repositories.NewRedisSessionRepository(client), mr
}

func TestSessionRepositories(t *testing.T) {
	backends := map[string]func(t *testing.T) repositories.SessionRepository{
		"database": func(t *testing.T) repositories.SessionRepository {
			return repositories.NewSessionRepository(testutil.NewTestDB(t))
		},
		"redis": func(t *testing.T) repositories.SessionRepository {
			repo, _ := newRedisRepo(t)
			return repo
		},
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			session := &models.Session{ID: "7b0c5c2e-0000-4000-8000-000000000001", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
			require.NoError(t, repo.Create(ctx, session))

			found, err := repo.FindByID(ctx, session.ID)
			require.NoError(t, err)
			assert.Equal(t, uint(7), found.UserID)
			assert.WithinDuration(t, session.ExpiresAt, found.ExpiresAt, 2*time.Second)

			require.NoError(t, repo.Delete(ctx, session.ID))
			_, err = repo.FindByID(ctx, session.ID)
			assert.ErrorIs(t, err, repositories.ErrSessionNotFound)

			assert.ErrorIs(t, repo.Delete(ctx, session.ID), repositories.ErrSessionNotFound)
		})
	}
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := repositories.NewSessionRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &models.Session{ID: "old", UserID: 1, ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(ctx, &models.Session{ID: "fresh", UserID: 1, ExpiresAt: now.Add(time.Hour)}))

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.FindByID(ctx, "fresh")
	assert.NoError(t, err)
}

func TestRedisSessionRepository_TTL(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Session{ID: "ttl", UserID: 3, ExpiresAt: time.Now().Add(time.Minute)}))
	assert.True(t, mr.Exists("session:ttl"))

	mr.FastForward(2 * time.Minute)

	_, err := repo.FindByID(ctx, "ttl")
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)

	err = repo.Create(ctx, &models.Session{ID: "past", UserID: 3, ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
