package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"emberarena/internal/models"
)

const (
	profileCacheKeyPrefix = "user:profile:"
	profileCacheTTL       = 24 * time.Hour
)

// ProfileCacheRepository caches profiles in Redis (TTL 1 day).
type ProfileCacheRepository struct {
	client *redis.Client
}

// NewProfileCacheRepository creates a new profile cache repository.
func NewProfileCacheRepository(client *redis.Client) *ProfileCacheRepository {
	return &ProfileCacheRepository{client: client}
}

// Get returns the cached profile, or (nil, nil) if not found.
// Cached profiles never carry the password hash.
func (r *ProfileCacheRepository) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	data, err := r.client.Get(ctx, profileCacheKeyPrefix+uid).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u models.UserProfile
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("%w: cached profile %s: %v", models.ErrCorruptRecord, uid, err)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Set stores the profile with a 24h TTL.
func (r *ProfileCacheRepository) Set(ctx context.Context, u *models.UserProfile) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileCacheKeyPrefix+u.UID, data, profileCacheTTL).Err()
}

func (r *ProfileCacheRepository) Delete(ctx context.Context, uids ...string) error {
	if len(uids) == 0 {
		return nil
	}
	keys := make([]string, len(uids))
	for i, uid := range uids {
		keys[i] = profileCacheKeyPrefix + uid
	}
	return r.client.Del(ctx, keys...).Err()
}
