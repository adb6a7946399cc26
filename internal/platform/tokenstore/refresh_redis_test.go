package tokenstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugdash_backend/internal/feature/auth/domain/entity"
	"bugdash_backend/internal/feature/auth/usecase"
)

// setupTestRedis spins up an in-process Redis and a store bound to it.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RefreshTokenRedis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRefreshTokenRedis(client, "refresh")
}

func liveRecord(token string, userID uint, createdAgo time.Duration) *entity.RefreshToken {
	now := time.Now()
	return &entity.RefreshToken{
		Token:     token,
		UserID:    userID,
		CreatedAt: now.Add(-createdAgo),
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestRefreshTokenRedis_CreateAndFind(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	record := liveRecord("tok-1", 1, 0)
	require.NoError(t, store.Create(ctx, record))

	found, err := store.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), found.UserID)
	assert.Equal(t, "tok-1", found.Token)

	// The record key carries a TTL matching its expiry.
	ttl := mr.TTL("refresh:tok-1")
	assert.Greater(t, ttl, 59*time.Minute)

	_, err = store.FindByToken(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrRefreshTokenNotFound)
}

func TestRefreshTokenRedis_Create_AlreadyExpired(t *testing.T) {
	_, store := setupTestRedis(t)

	record := liveRecord("tok-dead", 1, 0)
	record.ExpiresAt = time.Now().Add(-time.Minute)

	assert.Error(t, store.Create(context.Background(), record))
}

func TestRefreshTokenRedis_Delete(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, liveRecord("tok-del", 1, 0)))
	require.NoError(t, store.Delete(ctx, "tok-del"))

	_, err := store.FindByToken(ctx, "tok-del")
	assert.ErrorIs(t, err, usecase.ErrRefreshTokenNotFound)

	count, err := store.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, store.Delete(ctx, "tok-del"), usecase.ErrRefreshTokenNotFound)
}

func TestRefreshTokenRedis_CountByUser(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Create(ctx, liveRecord(fmt.Sprintf("tok-%d", i), 1, 0)))
	}
	require.NoError(t, store.Create(ctx, liveRecord("other", 2, 0)))

	count, err := store.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// Redis expires the record key itself; the per-user index entry lingers
// until housekeeping removes it.
func TestRefreshTokenRedis_DeleteExpiredByUser(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, liveRecord("live", 1, 0)))
	require.NoError(t, store.Create(ctx, liveRecord("soon-dead", 1, 0)))

	// Fast-forward past the hour TTL of one key only.
	mr.Del("refresh:soon-dead")

	removed, err := store.DeleteExpiredByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	count, err := store.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRefreshTokenRedis_DeleteOldestByUser(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, liveRecord("oldest", 1, 3*time.Hour)))
	require.NoError(t, store.Create(ctx, liveRecord("middle", 1, 2*time.Hour)))
	require.NoError(t, store.Create(ctx, liveRecord("newest", 1, time.Hour)))

	require.NoError(t, store.DeleteOldestByUser(ctx, 1))

	_, err := store.FindByToken(ctx, "oldest")
	assert.ErrorIs(t, err, usecase.ErrRefreshTokenNotFound)
	_, err = store.FindByToken(ctx, "middle")
	assert.NoError(t, err)
	_, err = store.FindByToken(ctx, "newest")
	assert.NoError(t, err)

	t.Run("no live records is not an error", func(t *testing.T) {
		assert.NoError(t, store.DeleteOldestByUser(ctx, 42))
	})
}
