package models

import "time"

// Role values stored on a user profile
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Stats holds the aggregate counters shown on a profile
type Stats struct {
	QuizzesDone       int     `json:"quizzesDone" db:"quizzes_done"`
	Accuracy          float64 `json:"accuracy" db:"accuracy"`
	TotalEmbersEarned int64   `json:"totalEmbersEarned" db:"total_embers_earned"`
	Wins              int     `json:"wins" db:"wins"`
	Losses            int     `json:"losses" db:"losses"`
}

// Privacy holds the user-controlled visibility flags
type Privacy struct {
	AllowFriendRequests bool `json:"allowFriendRequests" db:"allow_friend_requests"`
	ShowLoreToFriends   bool `json:"showLoreToFriends" db:"show_lore_to_friends"`
	PublicLeaderboard   bool `json:"publicLeaderboard" db:"public_leaderboard"`
}

// UserProfile represents a player in the arena
type UserProfile struct {
	UID           string     `json:"uid" db:"uid"`
	Username      string     `json:"username" db:"username"`
	Email         string     `json:"email,omitempty" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	Role          string     `json:"role" db:"role"`
	Level         int        `json:"level" db:"level"`
	Embers        int64      `json:"embers" db:"embers"`
	StreakDays    int        `json:"streakDays" db:"streak_days"`
	LastLogin     *time.Time `json:"lastLogin,omitempty" db:"last_login"`
	Avatar        string     `json:"avatar" db:"avatar"`
	Title         string     `json:"title" db:"title"`
	EquippedTheme string     `json:"equippedTheme" db:"equipped_theme"`
	Stats         Stats      `json:"stats"`
	Privacy       Privacy    `json:"privacy"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// Public returns a copy safe to show to other players. Stats are zeroed for
// players who opted out of the public leaderboard.
func (u UserProfile) Public() UserProfile {
	u.Email = ""
	u.PasswordHash = ""
	u.LastLogin = nil
	if !u.Privacy.PublicLeaderboard {
		u.Stats = Stats{}
	}
	return u
}

// Quiz is a static trial definition
type Quiz struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Category           string     `json:"category"`
	Difficulty         string     `json:"difficulty"`
	Reward             int64      `json:"reward"`
	MinDurationSeconds int        `json:"minDurationSeconds"`
	Questions          []Question `json:"questions"`
}

// MinDuration returns the minimum wall-clock time a rewarded attempt must take.
func (q Quiz) MinDuration() time.Duration {
	return time.Duration(q.MinDurationSeconds) * time.Second
}

// Question is a single multiple-choice prompt
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Shop item categories
const (
	CategoryTheme  = "theme"
	CategoryAvatar = "avatar"
	CategoryTitle  = "title"
	CategoryBoost  = "boost"
)

// ShopItem is a static catalog entry
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Cost        int64  `json:"cost"`
	Rarity      string `json:"rarity"`
	Description string `json:"description"`
	UnlockLevel int    `json:"unlockLevel,omitempty"`
}

// InventoryEntry records ownership of a shop item
type InventoryEntry struct {
	UserID     string    `json:"userId" db:"user_id"`
	ItemID     string    `json:"itemId" db:"item_id"`
	Category   string    `json:"category" db:"category"`
	OwnedSince time.Time `json:"ownedSince" db:"owned_since"`
	Equipped   bool      `json:"equipped" db:"equipped"`
}

// TrialRecord is the persisted history row of a rewarded trial
type TrialRecord struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"userId" db:"user_id"`
	QuizID         string    `json:"quizId" db:"quiz_id"`
	StartedAt      time.Time `json:"startedAt" db:"started_at"`
	EndedAt        time.Time `json:"endedAt" db:"ended_at"`
	CorrectCount   int       `json:"correctCount" db:"correct_count"`
	TotalQuestions int       `json:"totalQuestions" db:"total_questions"`
	Accuracy       float64   `json:"accuracy" db:"accuracy"`
	EarnedEmbers   int64     `json:"earnedEmbers" db:"earned_embers"`
	Valid          bool      `json:"valid" db:"valid"`
}

// Ledger entry kinds and sources
const (
	LedgerEarn  = "earn"
	LedgerSpend = "spend"

	SourceTrial = "trial"
	SourceDuel  = "duel"
	SourceShop  = "shop_purchase"
)

// LedgerEntry records a single ember movement
type LedgerEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Kind      string    `json:"kind" db:"kind"`
	Amount    int64     `json:"amount" db:"amount"`
	Source    string    `json:"source" db:"source"`
	RefID     string    `json:"refId" db:"ref_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PlaySession is an in-progress quiz attempt, trial or duel round
type PlaySession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	QuizID          string    `json:"quizId"`
	DuelID          string    `json:"duelId,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	QuestionShownAt time.Time `json:"questionShownAt"`
	Answers         []int     `json:"answers"`
}

// IsDuel reports whether the session is a duel round.
func (s PlaySession) IsDuel() bool {
	return s.DuelID != ""
}
