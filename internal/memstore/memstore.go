// Package memstore is an in-memory, concurrency-safe implementation of the
// document-store contracts. Every method holds one lock for its whole body,
// which makes each compound update atomic.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"emberarena/internal/models"
	"emberarena/internal/store"
)

var (
	_ store.UserStore      = (*DB)(nil)
	_ store.DuelStore      = (*DB)(nil)
	_ store.FriendStore    = (*DB)(nil)
	_ store.InventoryStore = (*DB)(nil)
	_ store.HistoryStore   = (*DB)(nil)
)

// DB is an in-memory document store
type DB struct {
	mu        sync.Mutex
	users     map[string]models.UserProfile
	duels     map[string]models.Duel
	edges     map[[2]string]models.Friendship
	inventory map[string]map[string]models.InventoryEntry
	trials    map[string][]models.TrialRecord
	ledger    map[string][]models.LedgerEntry
}

// New constructs an empty DB.
func New() *DB {
	return &DB{
		users:     make(map[string]models.UserProfile),
		duels:     make(map[string]models.Duel),
		edges:     make(map[[2]string]models.Friendship),
		inventory: make(map[string]map[string]models.InventoryEntry),
		trials:    make(map[string][]models.TrialRecord),
		ledger:    make(map[string][]models.LedgerEntry),
	}
}

// Users

func (db *DB) CreateUser(ctx context.Context, u *models.UserProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.users[u.UID]; exists {
		return models.ErrAccountExists
	}
	for _, existing := range db.users {
		if strings.EqualFold(existing.Email, u.Email) || strings.EqualFold(existing.Username, u.Username) {
			return models.ErrAccountExists
		}
	}
	db.users[u.UID] = *u
	return nil
}

func (db *DB) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[uid]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (db *DB) GetUsers(ctx context.Context, uids []string) ([]models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]models.UserProfile, 0, len(uids))
	for _, uid := range uids {
		if u, ok := db.users[uid]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (db *DB) SearchUsers(ctx context.Context, prefix string, limit int) ([]models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.UserProfile
	for _, u := range db.users {
		if strings.HasPrefix(u.Username, prefix) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (db *DB) UpdatePassword(ctx context.Context, uid, passwordHash string) error {
	return db.mutateUser(ctx, uid, func(u *models.UserProfile) error {
		u.PasswordHash = passwordHash
		return nil
	})
}

func (db *DB) RecordLogin(ctx context.Context, uid string, now time.Time) (*models.UserProfile, error) {
	var out models.UserProfile
	err := db.mutateUser(ctx, uid, func(u *models.UserProfile) error {
		u.RecordLogin(now)
		out = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (db *DB) UpdatePrivacy(ctx context.Context, uid string, p models.Privacy) (*models.UserProfile, error) {
	var out models.UserProfile
	err := db.mutateUser(ctx, uid, func(u *models.UserProfile) error {
		u.Privacy = p
		out = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (db *DB) ApplyTrial(ctx context.Context, rec *models.TrialRecord, ledger *models.LedgerEntry) (*models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[rec.UserID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	u.ApplyTrial(rec.Accuracy, rec.EarnedEmbers)
	db.users[u.UID] = u
	db.trials[u.UID] = append(db.trials[u.UID], *rec)
	if ledger != nil {
		db.ledger[u.UID] = append(db.ledger[u.UID], *ledger)
	}
	return &u, nil
}

func (db *DB) TopByEmbersEarned(ctx context.Context, limit int) ([]models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.UserProfile
	for _, u := range db.users {
		if u.Privacy.PublicLeaderboard {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stats.TotalEmbersEarned != out[j].Stats.TotalEmbersEarned {
			return out[i].Stats.TotalEmbersEarned > out[j].Stats.TotalEmbersEarned
		}
		return out[i].UID < out[j].UID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (db *DB) CountUsers(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// SetRole is used by tooling and tests to promote an account.
func (db *DB) SetRole(ctx context.Context, uid, role string) error {
	return db.mutateUser(ctx, uid, func(u *models.UserProfile) error {
		u.Role = role
		return nil
	})
}

// SetProgress overwrites balance and level; used by tests to arrange scenarios.
func (db *DB) SetProgress(ctx context.Context, uid string, embers int64, level int) error {
	return db.mutateUser(ctx, uid, func(u *models.UserProfile) error {
		u.Embers = embers
		if level > 0 {
			u.Level = level
		}
		return nil
	})
}

func (db *DB) mutateUser(ctx context.Context, uid string, fn func(*models.UserProfile) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[uid]
	if !ok {
		return models.ErrUserNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	db.users[uid] = u
	return nil
}

// History

func (db *DB) ListTrialRecords(ctx context.Context, uid string, limit int) ([]models.TrialRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	recs := db.trials[uid]
	out := make([]models.TrialRecord, 0, len(recs))
	for i := len(recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}

func (db *DB) ListLedger(ctx context.Context, uid string, limit int) ([]models.LedgerEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	entries := db.ledger[uid]
	out := make([]models.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}
