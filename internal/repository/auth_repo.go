package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"emberarena/internal/models"
)

const (
	authSessionKeyPrefix = "auth:session:"
	resetTokenKeyPrefix  = "auth:reset:"
)

// AuthSessionRepository registers live sign-in sessions; a session exists
// only while its key does.
type AuthSessionRepository struct {
	client *redis.Client
}

func NewAuthSessionRepository(client *redis.Client) *AuthSessionRepository {
	return &AuthSessionRepository{client: client}
}

func (r *AuthSessionRepository) Create(ctx context.Context, sessionID, uid string, ttl time.Duration) error {
	return r.client.Set(ctx, authSessionKeyPrefix+sessionID, uid, ttl).Err()
}

// Lookup returns the uid that owns the session.
func (r *AuthSessionRepository) Lookup(ctx context.Context, sessionID string) (string, error) {
	uid, err := r.client.Get(ctx, authSessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", models.ErrSessionNotFound
	}
	return uid, err
}

func (r *AuthSessionRepository) Revoke(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, authSessionKeyPrefix+sessionID).Err()
}

// ResetTokenRepository holds single-use password reset tokens
type ResetTokenRepository struct {
	client *redis.Client
}

func NewResetTokenRepository(client *redis.Client) *ResetTokenRepository {
	return &ResetTokenRepository{client: client}
}

func (r *ResetTokenRepository) Issue(ctx context.Context, token, uid string, ttl time.Duration) error {
	return r.client.Set(ctx, resetTokenKeyPrefix+token, uid, ttl).Err()
}

// Consume returns the uid bound to token and invalidates it.
func (r *ResetTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	data, err := getAndDelete(ctx, r.client, resetTokenKeyPrefix+token)
	if errors.Is(err, redis.Nil) {
		return "", models.ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
