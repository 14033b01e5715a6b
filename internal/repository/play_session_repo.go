package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"emberarena/internal/models"
)

const (
	playSessionKeyPrefix = "play:session:"
	// PlaySessionTTL bounds how long an abandoned attempt lingers.
	PlaySessionTTL = 2 * time.Hour
)

// PlaySessionRepository persists in-progress attempts in Redis, one JSON value per session.
type PlaySessionRepository struct {
	client *redis.Client
}

// NewPlaySessionRepository creates a new play-session repository.
func NewPlaySessionRepository(client *redis.Client) *PlaySessionRepository {
	return &PlaySessionRepository{client: client}
}

func decodePlaySession(id string, data []byte) (*models.PlaySession, error) {
	var s models.PlaySession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: play session %s: %v", models.ErrCorruptRecord, id, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save stores a new session with PlaySessionTTL.
func (r *PlaySessionRepository) Save(ctx context.Context, s *models.PlaySession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, playSessionKeyPrefix+s.ID, data, PlaySessionTTL).Err()
}

func (r *PlaySessionRepository) Get(ctx context.Context, id string) (*models.PlaySession, error) {
	data, err := r.client.Get(ctx, playSessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodePlaySession(id, data)
}

// Update runs fn against the stored session under WATCH. If another writer
// touches the key first, the update is abandoned with ErrConflict.
func (r *PlaySessionRepository) Update(ctx context.Context, id string, fn func(*models.PlaySession) error) (*models.PlaySession, error) {
	key := playSessionKeyPrefix + id
	var out *models.PlaySession
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return models.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		s, err := decodePlaySession(id, data)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		updated, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}
		out = s
		return nil
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, models.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Claim reads and deletes the session in one MULTI; only the caller whose DEL
// removed the key gets the session back.
func (r *PlaySessionRepository) Claim(ctx context.Context, id string) (*models.PlaySession, error) {
	data, err := getAndDelete(ctx, r.client, playSessionKeyPrefix+id)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrSessionNotFound
		}
		return nil, err
	}
	return decodePlaySession(id, data)
}

// getAndDelete returns redis.Nil unless this call is the one that deleted key.
func getAndDelete(ctx context.Context, client *redis.Client, key string) ([]byte, error) {
	var get *redis.StringCmd
	var del *redis.IntCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.Get(ctx, key)
		del = pipe.Del(ctx, key)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, err
	}
	if del.Val() != 1 {
		return nil, redis.Nil
	}
	return get.Bytes()
}
