// Package tokenstore provides a Redis-backed refresh-token repository.
package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bugdash_backend/internal/feature/auth/domain/entity"
	"bugdash_backend/internal/feature/auth/usecase"
)

// RefreshTokenRedis implements usecase.RefreshTokenRepository using Redis.
// Each record lives under its own key with a TTL matching its expiry, and
// a per-user set indexes the tokens for housekeeping; expiry pruning is
// therefore mostly Redis's job.
type RefreshTokenRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check that RefreshTokenRedis implements RefreshTokenRepository.
var _ usecase.RefreshTokenRepository = (*RefreshTokenRedis)(nil)

// NewRefreshTokenRedis creates a new RefreshTokenRedis instance.
func NewRefreshTokenRedis(client *redis.Client, prefix string) *RefreshTokenRedis {
	return &RefreshTokenRedis{client: client, prefix: prefix}
}

func (r *RefreshTokenRedis) tokenKey(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

func (r *RefreshTokenRedis) userTokensKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a new refresh token record.
func (r *RefreshTokenRedis) Create(ctx context.Context, record *entity.RefreshToken) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}

	if err := r.client.Set(ctx, r.tokenKey(record.Token), data, ttl).Err(); err != nil {
		return err
	}
	return r.client.SAdd(ctx, r.userTokensKey(record.UserID), record.Token).Err()
}

// FindByToken retrieves a record by its exact token string.
func (r *RefreshTokenRedis) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	data, err := r.client.Get(ctx, r.tokenKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrRefreshTokenNotFound
		}
		return nil, err
	}

	var record entity.RefreshToken
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}
	return &record, nil
}

// Delete removes a record and its index entry.
func (r *RefreshTokenRedis) Delete(ctx context.Context, token string) error {
	record, err := r.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.tokenKey(token)).Err(); err != nil {
		return err
	}
	return r.client.SRem(ctx, r.userTokensKey(record.UserID), token).Err()
}

// DeleteExpiredByUser drops index entries whose records Redis has already
// expired. The count reflects removed index entries.
func (r *RefreshTokenRedis) DeleteExpiredByUser(ctx context.Context, userID uint) (int64, error) {
	tokens, err := r.client.SMembers(ctx, r.userTokensKey(userID)).Result()
	if err != nil {
		return 0, err
	}

	var removed int64
	for _, token := range tokens {
		if _, err := r.FindByToken(ctx, token); err != nil {
			if err != usecase.ErrRefreshTokenNotFound {
				return removed, err
			}
			if err := r.client.SRem(ctx, r.userTokensKey(userID), token).Err(); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// CountByUser returns the number of live records for a user.
func (r *RefreshTokenRedis) CountByUser(ctx context.Context, userID uint) (int64, error) {
	records, err := r.liveByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

// DeleteOldestByUser removes the user's oldest live record.
func (r *RefreshTokenRedis) DeleteOldestByUser(ctx context.Context, userID uint) error {
	records, err := r.liveByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	oldest := records[0]
	for _, record := range records[1:] {
		if record.CreatedAt.Before(oldest.CreatedAt) {
			oldest = record
		}
	}

	if err := r.client.Del(ctx, r.tokenKey(oldest.Token)).Err(); err != nil {
		return err
	}
	return r.client.SRem(ctx, r.userTokensKey(userID), oldest.Token).Err()
}

// liveByUser loads the user's live records, dropping index entries whose
// records expired underneath them.
func (r *RefreshTokenRedis) liveByUser(ctx context.Context, userID uint) ([]*entity.RefreshToken, error) {
	tokens, err := r.client.SMembers(ctx, r.userTokensKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var records []*entity.RefreshToken
	for _, token := range tokens {
		record, err := r.FindByToken(ctx, token)
		if err != nil {
			if err == usecase.ErrRefreshTokenNotFound {
				r.client.SRem(ctx, r.userTokensKey(userID), token)
				continue
			}
			return nil, err
		}
		if !record.IsExpired() {
			records = append(records, record)
		}
	}
	return records, nil
}
