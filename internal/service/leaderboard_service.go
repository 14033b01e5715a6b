package service

import (
	"context"
	"log"
	"sort"

	"emberarena/internal/models"
	"emberarena/internal/store"
)

// Leaderboard limits
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 50
)

// RankedUser is a leaderboard row with display fields filled in
type RankedUser struct {
	Rank              int64  `json:"rank"`
	UserID            string `json:"userId"`
	Username          string `json:"username"`
	Avatar            string `json:"avatar"`
	Title             string `json:"title"`
	Level             int    `json:"level"`
	TotalEmbersEarned int64  `json:"totalEmbersEarned"`
}

func rankedUser(rank int64, u models.UserProfile) RankedUser {
	return RankedUser{
		Rank:              rank,
		UserID:            u.UID,
		Username:          u.Username,
		Avatar:            u.Avatar,
		Title:             u.Title,
		Level:             u.Level,
		TotalEmbersEarned: u.Stats.TotalEmbersEarned,
	}
}

// LeaderboardService handles leaderboard and rank logic (Redis with DB fallback).
type LeaderboardService struct {
	users       store.UserStore
	friends     store.FriendStore
	leaderboard store.Leaderboard
}

// NewLeaderboardService creates a new leaderboard service.
func NewLeaderboardService(users store.UserStore, friends store.FriendStore, leaderboard store.Leaderboard) *LeaderboardService {
	return &LeaderboardService{
		users:       users,
		friends:     friends,
		leaderboard: leaderboard,
	}
}

// Global returns the top public players from Redis; fallback to the store.
func (s *LeaderboardService) Global(ctx context.Context, limit int) ([]RankedUser, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	entries, err := s.leaderboard.Top(ctx, int64(limit))
	if err != nil {
		log.Printf("Leaderboard read failed, falling back to store: %v", err)
	}
	if err != nil || len(entries) < limit {
		// a short ZSet may be missing players after a Redis flush
		return s.globalFromStore(ctx, limit)
	}

	uids := make([]string, len(entries))
	for i, e := range entries {
		uids[i] = e.UserID
	}
	users, err := s.users.GetUsers(ctx, uids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.UserProfile, len(users))
	for _, u := range users {
		byID[u.UID] = u
	}

	out := make([]RankedUser, 0, len(entries))
	for _, e := range entries {
		u, ok := byID[e.UserID]
		if !ok || !u.Privacy.PublicLeaderboard {
			// stale member
			continue
		}
		out = append(out, rankedUser(int64(len(out))+1, u))
	}
	return out, nil
}

func (s *LeaderboardService) globalFromStore(ctx context.Context, limit int) ([]RankedUser, error) {
	users, err := s.users.TopByEmbersEarned(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RankedUser, len(users))
	for i, u := range users {
		out[i] = rankedUser(int64(i)+1, u)
	}
	if len(users) > 0 {
		// repopulate after a Redis flush
		if err := s.leaderboard.Sync(ctx, users...); err != nil {
			log.Printf("Leaderboard backfill failed: %v", err)
		}
	}
	return out, nil
}

// Warm loads the top public players from the store into the ZSet so a
// restarted Redis ranks them before they next play.
func (s *LeaderboardService) Warm(ctx context.Context) error {
	users, err := s.users.TopByEmbersEarned(ctx, MaxLeaderboardLimit)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	return s.leaderboard.Sync(ctx, users...)
}

// Friends ranks uid and their confirmed friends. Privacy opt-out does not hide
// a player from their own friends.
func (s *LeaderboardService) Friends(ctx context.Context, uid string) ([]RankedUser, error) {
	edges, err := s.friends.ListEdges(ctx, uid)
	if err != nil {
		return nil, err
	}
	rel := models.BuildRelationships(uid, edges)
	users, err := s.users.GetUsers(ctx, append([]string{uid}, rel.Confirmed...))
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Stats.TotalEmbersEarned != users[j].Stats.TotalEmbersEarned {
			return users[i].Stats.TotalEmbersEarned > users[j].Stats.TotalEmbersEarned
		}
		return users[i].Username < users[j].Username
	})
	out := make([]RankedUser, len(users))
	for i, u := range users {
		out[i] = rankedUser(int64(i)+1, u)
	}
	return out, nil
}

// Rank gets the user's global rank, 0 when unranked.
func (s *LeaderboardService) Rank(ctx context.Context, uid string) (int64, error) {
	return s.leaderboard.Rank(ctx, uid)
}
