package service

import (
	"context"
	"log"

	"emberarena/internal/models"
	"emberarena/internal/store"
)

// DefaultHistoryLimit caps history and ledger listings.
const DefaultHistoryLimit = 20

// UserService handles profile reads (cache first), privacy and the side
// effects that keep the cache and leaderboard in step with the store.
type UserService struct {
	users       store.UserStore
	history     store.HistoryStore
	cache       store.ProfileCache
	leaderboard store.Leaderboard
}

// NewUserService creates a new user service. cache and leaderboard may be nil.
func NewUserService(users store.UserStore, history store.HistoryStore, cache store.ProfileCache, leaderboard store.Leaderboard) *UserService {
	return &UserService{
		users:       users,
		history:     history,
		cache:       cache,
		leaderboard: leaderboard,
	}
}

// GetUserFromCacheOrDB returns the profile from cache first, then the store; on a store hit it populates the cache.
func (s *UserService) GetUserFromCacheOrDB(ctx context.Context, uid string) (*models.UserProfile, error) {
	if s.cache != nil {
		u, err := s.cache.Get(ctx, uid)
		if err != nil {
			log.Printf("Profile cache read failed for %s: %v", uid, err)
		} else if u != nil {
			return u, nil
		}
	}
	u, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, u); err != nil {
			log.Printf("Profile cache write failed for %s: %v", uid, err)
		}
	}
	return u, nil
}

// Me returns the caller's own profile.
func (s *UserService) Me(ctx context.Context, uid string) (*models.UserProfile, error) {
	return s.GetUserFromCacheOrDB(ctx, uid)
}

// PublicProfile returns another user's profile without private fields.
func (s *UserService) PublicProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	u, err := s.GetUserFromCacheOrDB(ctx, uid)
	if err != nil {
		return models.UserProfile{}, err
	}
	return u.Public(), nil
}

func (s *UserService) UpdatePrivacy(ctx context.Context, uid string, p models.Privacy) (*models.UserProfile, error) {
	u, err := s.users.UpdatePrivacy(ctx, uid, p)
	if err != nil {
		return nil, err
	}
	s.Refresh(ctx, u)
	return u, nil
}

func (s *UserService) TrialHistory(ctx context.Context, uid string) ([]models.TrialRecord, error) {
	return s.history.ListTrialRecords(ctx, uid, DefaultHistoryLimit)
}

func (s *UserService) Ledger(ctx context.Context, uid string) ([]models.LedgerEntry, error) {
	return s.history.ListLedger(ctx, uid, DefaultHistoryLimit)
}

// Refresh pushes a freshly written profile to the cache and leaderboard.
// Failures are logged; the store write has already succeeded.
func (s *UserService) Refresh(ctx context.Context, u *models.UserProfile) {
	if s.cache != nil {
		if err := s.cache.Set(ctx, u); err != nil {
			log.Printf("Profile cache write failed for %s: %v", u.UID, err)
		}
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.Sync(ctx, *u); err != nil {
			log.Printf("Leaderboard sync failed for %s: %v", u.UID, err)
		}
	}
}

// Invalidate drops cached profiles whose balances changed elsewhere and
// re-ranks them from the store.
func (s *UserService) Invalidate(ctx context.Context, uids ...string) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, uids...); err != nil {
			log.Printf("Profile cache delete failed for %v: %v", uids, err)
		}
	}
	if s.leaderboard == nil {
		return
	}
	users, err := s.users.GetUsers(ctx, uids)
	if err != nil {
		log.Printf("Reload for leaderboard failed for %v: %v", uids, err)
		return
	}
	if err := s.leaderboard.Sync(ctx, users...); err != nil {
		log.Printf("Leaderboard sync failed for %v: %v", uids, err)
	}
}
