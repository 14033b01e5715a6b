package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"emberarena/internal/models"
	"emberarena/internal/store"
)

// LeaderboardEmbersKey ranks users by total embers earned
const LeaderboardEmbersKey = "leaderboard:embers"

// LeaderboardRepository handles Redis ZSet operations for the global leaderboard
type LeaderboardRepository struct {
	client *redis.Client
}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository(client *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{client: client}
}

// Sync mirrors a profile into the ZSet in one round-trip: public profiles are
// upserted, opted-out profiles removed.
func (r *LeaderboardRepository) Sync(ctx context.Context, profiles ...models.UserProfile) error {
	pipe := r.client.Pipeline()
	for _, u := range profiles {
		if u.Privacy.PublicLeaderboard {
			pipe.ZAdd(ctx, LeaderboardEmbersKey, redis.Z{Score: float64(u.Stats.TotalEmbersEarned), Member: u.UID})
		} else {
			pipe.ZRem(ctx, LeaderboardEmbersKey, u.UID)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Top returns the top N users, highest first
func (r *LeaderboardRepository) Top(ctx context.Context, limit int64) ([]store.LeaderboardEntry, error) {
	// ZREVRANGE returns highest to lowest
	results, err := r.client.ZRevRangeWithScores(ctx, LeaderboardEmbersKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]store.LeaderboardEntry, 0, len(results))
	for _, result := range results {
		uid, ok := result.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, store.LeaderboardEntry{
			UserID: uid,
			Score:  int64(result.Score),
		})
	}
	for i := range entries {
		entries[i].Rank = int64(i) + 1
	}
	return entries, nil
}

// Rank returns the user's 1-indexed rank, or 0 if the user is not ranked
func (r *LeaderboardRepository) Rank(ctx context.Context, uid string) (int64, error) {
	// ZREVRANK is 0-based with the highest score at 0
	rank, err := r.client.ZRevRank(ctx, LeaderboardEmbersKey, uid).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}

// Size returns how many users are ranked.
func (r *LeaderboardRepository) Size(ctx context.Context) (int64, error) {
	return r.client.ZCard(ctx, LeaderboardEmbersKey).Result()
}
