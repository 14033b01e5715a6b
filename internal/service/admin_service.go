package service

import (
	"context"
	"log"

	"emberarena/internal/store"
)

// Stats is the admin overview
type Stats struct {
	Users       int   `json:"users"`
	Duels       int   `json:"duels"`
	RankedUsers int64 `json:"rankedUsers"`
}

type AdminService struct {
	users       store.UserStore
	duels       store.DuelStore
	leaderboard store.Leaderboard
}

func NewAdminService(users store.UserStore, duels store.DuelStore, leaderboard store.Leaderboard) *AdminService {
	return &AdminService{users: users, duels: duels, leaderboard: leaderboard}
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	duels, err := s.duels.CountDuels(ctx)
	if err != nil {
		return nil, err
	}
	ranked, err := s.leaderboard.Size(ctx)
	if err != nil {
		log.Printf("Leaderboard size failed: %v", err)
	}
	return &Stats{Users: users, Duels: duels, RankedUsers: ranked}, nil
}
