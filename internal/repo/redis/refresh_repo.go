package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	authsvc "github.com/ysfmrbt/skillwise/internal/services/auth"
)

const (
	refreshUserPrefix = "refresh:user:"
	refreshHashPrefix = "refresh:hash:"

	// Keys outlive the record expiry so an expired record is still
	// observable and can be reported as expired rather than missing.
	expiryGrace = 24 * time.Hour
)

type RefreshRepo struct {
	client *goredis.Client
}

func NewRefreshRepo(client *goredis.Client) *RefreshRepo {
	return &RefreshRepo{client: client}
}

func (r *RefreshRepo) Upsert(ctx context.Context, record authsvc.RefreshRecord) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(record.UserID) == "" || strings.TrimSpace(record.TokenHash) == "" {
		return authsvc.ErrInvalidInput
	}

	// A superseded record's reverse index must go away, otherwise the old
	// raw token would still resolve.
	oldHash, err := r.client.HGet(ctx, userKey(record.UserID), "token_hash").Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("read current refresh hash: %w", err)
	}

	ttl := ttlFor(record.ExpiresAt)
	pipe := r.client.TxPipeline()
	if oldHash != "" && oldHash != record.TokenHash {
		pipe.Del(ctx, hashKey(oldHash))
	}
	pipe.HSet(ctx, userKey(record.UserID), map[string]interface{}{
		"token_hash": record.TokenHash,
		"issued_at":  record.IssuedAt.Unix(),
		"expires_at": record.ExpiresAt.Unix(),
	})
	pipe.Expire(ctx, userKey(record.UserID), ttl)
	pipe.Set(ctx, hashKey(record.TokenHash), record.UserID, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert refresh record: %w", err)
	}

	return nil
}

func (r *RefreshRepo) GetByUser(ctx context.Context, userID string) (authsvc.RefreshRecord, error) {
	if r.client == nil {
		return authsvc.RefreshRecord{}, fmt.Errorf("redis client is nil")
	}

	values, err := r.client.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return authsvc.RefreshRecord{}, fmt.Errorf("get refresh hash: %w", err)
	}
	if len(values) == 0 {
		return authsvc.RefreshRecord{}, authsvc.ErrRefreshNotFound
	}

	record, err := parseRefreshRecord(values)
	if err != nil {
		return authsvc.RefreshRecord{}, err
	}
	record.UserID = userID
	return record, nil
}

func (r *RefreshRepo) GetByTokenHash(ctx context.Context, tokenHash string) (authsvc.RefreshRecord, error) {
	if r.client == nil {
		return authsvc.RefreshRecord{}, fmt.Errorf("redis client is nil")
	}

	userID, err := r.client.Get(ctx, hashKey(tokenHash)).Result()
	if err == goredis.Nil {
		return authsvc.RefreshRecord{}, authsvc.ErrRefreshNotFound
	}
	if err != nil {
		return authsvc.RefreshRecord{}, fmt.Errorf("resolve refresh hash: %w", err)
	}

	record, err := r.GetByUser(ctx, userID)
	if err != nil {
		return authsvc.RefreshRecord{}, err
	}
	if record.TokenHash != tokenHash {
		// Stale reverse index left behind by a superseding login.
		return authsvc.RefreshRecord{}, authsvc.ErrRefreshNotFound
	}

	return record, nil
}

func (r *RefreshRepo) DeleteByUser(ctx context.Context, userID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(userID) == "" {
		return nil
	}

	tokenHash, err := r.client.HGet(ctx, userKey(userID), "token_hash").Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("read refresh hash for delete: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, userKey(userID))
	if tokenHash != "" {
		pipe.Del(ctx, hashKey(tokenHash))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete refresh record: %w", err)
	}

	return nil
}

// PurgeExpiredBefore removes refresh records whose expiry is older than the
// cutoff, along with their reverse indexes. Key TTLs would eventually reclaim
// them anyway; the sweep keeps the grace window from accumulating garbage.
func (r *RefreshRepo) PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	var (
		purged int64
		cursor uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, refreshUserPrefix+"*", 100).Result()
		if err != nil {
			return purged, fmt.Errorf("scan refresh records: %w", err)
		}

		for _, key := range keys {
			values, err := r.client.HGetAll(ctx, key).Result()
			if err != nil {
				return purged, fmt.Errorf("read refresh record %q: %w", key, err)
			}
			record, err := parseRefreshRecord(values)
			if err != nil {
				continue
			}
			if !record.ExpiresAt.Before(cutoff) {
				continue
			}

			pipe := r.client.TxPipeline()
			pipe.Del(ctx, key)
			pipe.Del(ctx, hashKey(record.TokenHash))
			if _, err := pipe.Exec(ctx); err != nil {
				return purged, fmt.Errorf("purge refresh record %q: %w", key, err)
			}
			purged++
		}

		cursor = next
		if cursor == 0 {
			return purged, nil
		}
	}
}

func parseRefreshRecord(values map[string]string) (authsvc.RefreshRecord, error) {
	tokenHash := strings.TrimSpace(values["token_hash"])
	if tokenHash == "" {
		return authsvc.RefreshRecord{}, authsvc.ErrRefreshNotFound
	}

	issuedAt, err := strconv.ParseInt(values["issued_at"], 10, 64)
	if err != nil {
		return authsvc.RefreshRecord{}, fmt.Errorf("parse refresh issued_at: %w", err)
	}
	expiresAt, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return authsvc.RefreshRecord{}, fmt.Errorf("parse refresh expires_at: %w", err)
	}

	return authsvc.RefreshRecord{
		TokenHash: tokenHash,
		IssuedAt:  time.Unix(issuedAt, 0).UTC(),
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}, nil
}

func ttlFor(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt) + expiryGrace
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}

func userKey(userID string) string {
	return refreshUserPrefix + userID
}

func hashKey(tokenHash string) string {
	return refreshHashPrefix + tokenHash
}
