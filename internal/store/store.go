// Package store declares the persistence contracts the services depend on.
// MySQL and Redis repositories implement them in production; memstore implements
// the document-store half in memory.
package store

import (
	"context"
	"time"

	"emberarena/internal/models"
)

// UserStore persists profiles. Compound updates are atomic per call.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.UserProfile) error
	GetUser(ctx context.Context, uid string) (*models.UserProfile, error)
	GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	GetUsers(ctx context.Context, uids []string) ([]models.UserProfile, error)
	SearchUsers(ctx context.Context, prefix string, limit int) ([]models.UserProfile, error)
	UpdatePassword(ctx context.Context, uid, passwordHash string) error
	RecordLogin(ctx context.Context, uid string, now time.Time) (*models.UserProfile, error)
	UpdatePrivacy(ctx context.Context, uid string, p models.Privacy) (*models.UserProfile, error)
	// ApplyTrial folds a rewarded attempt into the profile and writes the history
	// row and ledger entry in the same unit of work.
	ApplyTrial(ctx context.Context, rec *models.TrialRecord, ledger *models.LedgerEntry) (*models.UserProfile, error)
	TopByEmbersEarned(ctx context.Context, limit int) ([]models.UserProfile, error)
	CountUsers(ctx context.Context) (int, error)
}

// DuelStore persists duels and settles them.
type DuelStore interface {
	CreateDuel(ctx context.Context, d *models.Duel) error
	GetDuel(ctx context.Context, id string) (*models.Duel, error)
	ListDuelsForUser(ctx context.Context, uid string, limit int) ([]models.Duel, error)
	// TransitionDuel moves a duel between statuses only if it is still in from.
	TransitionDuel(ctx context.Context, id string, from, to models.DuelStatus) (*models.Duel, error)
	// RecordScore posts a score and, when it completes the duel, credits the
	// payouts in the same unit of work.
	RecordScore(ctx context.Context, id, uid string, score int, tie models.TieRule, now time.Time) (*models.Duel, *models.Settlement, error)
	CountDuels(ctx context.Context) (int, error)
}

// FriendStore persists relationship edges, one per unordered pair.
type FriendStore interface {
	GetEdge(ctx context.Context, a, b string) (*models.Friendship, error)
	CreateEdge(ctx context.Context, f *models.Friendship) error
	// ConfirmEdge flips a pending edge to confirmed.
	ConfirmEdge(ctx context.Context, a, b string, now time.Time) error
	// DeleteEdge removes the edge if it is in the given status.
	DeleteEdge(ctx context.Context, a, b string, status models.FriendshipStatus) error
	ListEdges(ctx context.Context, uid string) ([]models.Friendship, error)
}

// InventoryStore persists purchases and equipped cosmetics.
type InventoryStore interface {
	Purchase(ctx context.Context, uid string, item models.ShopItem, ledger *models.LedgerEntry, now time.Time) (*models.UserProfile, error)
	ListInventory(ctx context.Context, uid string) ([]models.InventoryEntry, error)
	// Equip applies an owned cosmetic to the profile and marks it equipped in its category.
	Equip(ctx context.Context, uid string, item models.ShopItem) (*models.UserProfile, error)
}

// HistoryStore reads trial history and the ember ledger.
type HistoryStore interface {
	ListTrialRecords(ctx context.Context, uid string, limit int) ([]models.TrialRecord, error)
	ListLedger(ctx context.Context, uid string, limit int) ([]models.LedgerEntry, error)
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Score  int64  `json:"score"`
	Rank   int64  `json:"rank"`
}

// Leaderboard ranks users by total embers earned.
type Leaderboard interface {
	// Sync upserts public profiles and removes opted-out ones.
	Sync(ctx context.Context, profiles ...models.UserProfile) error
	Top(ctx context.Context, limit int64) ([]LeaderboardEntry, error)
	Rank(ctx context.Context, uid string) (int64, error)
	Size(ctx context.Context) (int64, error)
}

// ProfileCache caches profiles; Get returns (nil, nil) on a miss.
type ProfileCache interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	Set(ctx context.Context, u *models.UserProfile) error
	Delete(ctx context.Context, uids ...string) error
}

// PlaySessionStore holds in-progress attempts.
type PlaySessionStore interface {
	Save(ctx context.Context, s *models.PlaySession) error
	Get(ctx context.Context, id string) (*models.PlaySession, error)
	// Update applies fn under optimistic locking.
	Update(ctx context.Context, id string, fn func(*models.PlaySession) error) (*models.PlaySession, error)
	// Claim removes the session and returns it; only one caller can claim a session.
	Claim(ctx context.Context, id string) (*models.PlaySession, error)
}

// AuthSessionStore tracks live sign-in sessions.
type AuthSessionStore interface {
	Create(ctx context.Context, sessionID, uid string, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// ResetTokenStore holds single-use password reset tokens.
type ResetTokenStore interface {
	Issue(ctx context.Context, token, uid string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}
