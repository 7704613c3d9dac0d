package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrack-engine/internal/domain"
)

// Redis is the alternative backend for setups that already run a local
// redis. Slots map straight onto keys: "preferences", "digest:<date>"; the
// shortlist is a set and the ledger a hash.
type Redis struct {
	client *redis.Client
}

const (
	redisKeySaved    = "saved_ids"
	redisKeyStatuses = "status_updates"
)

// OpenRedis parses url and verifies connectivity.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", url, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *Redis) GetPreferences(ctx context.Context) (domain.Preferences, bool, error) {
	raw, ok, err := r.get(ctx, slotPreferences)
	if err != nil || !ok {
		return domain.Preferences{}, false, err
	}
	var prefs domain.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return domain.Preferences{}, false, fmt.Errorf("decode preferences slot: %w", err)
	}
	return prefs, true, nil
}

func (r *Redis) PutPreferences(ctx context.Context, prefs domain.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, slotPreferences, raw, 0).Err()
}

func (r *Redis) GetDigest(ctx context.Context, date string) ([]byte, bool, error) {
	return r.get(ctx, slotDigestPfx+date)
}

func (r *Redis) PutDigest(ctx context.Context, date string, raw []byte) error {
	return r.client.Set(ctx, slotDigestPfx+date, raw, 0).Err()
}

func (r *Redis) ListSaved(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, redisKeySaved).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids) // SMEMBERS order is unspecified
	return ids, nil
}

func (r *Redis) AddSaved(ctx context.Context, postingID string) error {
	return r.client.SAdd(ctx, redisKeySaved, postingID).Err()
}

func (r *Redis) RemoveSaved(ctx context.Context, postingID string) error {
	return r.client.SRem(ctx, redisKeySaved, postingID).Err()
}

func (r *Redis) RecentStatuses(ctx context.Context, limit int) ([]domain.StatusUpdate, error) {
	if limit <= 0 {
		limit = 50
	}
	vals, err := r.client.HVals(ctx, redisKeyStatuses).Result()
	if err != nil {
		return nil, err
	}

	out := make([]domain.StatusUpdate, 0, len(vals))
	for _, v := range vals {
		var u domain.StatusUpdate
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			return nil, fmt.Errorf("decode status entry: %w", err)
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].PostingID < out[j].PostingID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Redis) PutStatus(ctx context.Context, u domain.StatusUpdate) error {
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, redisKeyStatuses, u.PostingID, raw).Err()
}
