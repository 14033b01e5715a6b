package models

import (
	"fmt"
	"strings"
	"time"
)

// DuelStatus is the lifecycle state of a duel
type DuelStatus string

const (
	DuelPending   DuelStatus = "pending"
	DuelActive    DuelStatus = "active"
	DuelCompleted DuelStatus = "completed"
	DuelDeclined  DuelStatus = "declined"
)

// TieRule decides how equal duel scores settle
type TieRule string

const (
	// TieFirstFinisher awards a tie to the player whose score was recorded first.
	TieFirstFinisher TieRule = "first-finisher"
	// TieDraw leaves the duel without a winner and returns the wager to each player.
	TieDraw TieRule = "draw"
)

// ParseTieRule maps a config value onto a TieRule.
func ParseTieRule(s string) (TieRule, error) {
	switch TieRule(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieFirstFinisher:
		return TieFirstFinisher, nil
	case TieDraw:
		return TieDraw, nil
	}
	return "", fmt.Errorf("unknown duel tie rule %q", s)
}

// Duel is an asynchronous two-player quiz match
type Duel struct {
	ID              string     `json:"id" db:"id"`
	ChallengerID    string     `json:"challengerId" db:"challenger_id"`
	OpponentID      string     `json:"opponentId" db:"opponent_id"`
	QuizID          string     `json:"quizId" db:"quiz_id"`
	Status          DuelStatus `json:"status" db:"status"`
	Wager           int64      `json:"wager" db:"wager"`
	ChallengerScore *int       `json:"challengerScore,omitempty" db:"challenger_score"`
	OpponentScore   *int       `json:"opponentScore,omitempty" db:"opponent_score"`
	WinnerID        string     `json:"winnerId,omitempty" db:"winner_id"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	CompletedAt     *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}

// Payout is an ember credit produced by settling a duel
type Payout struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

// Settlement is the outcome of a duel once both scores are in
type Settlement struct {
	WinnerID string   `json:"winnerId,omitempty"`
	LoserID  string   `json:"loserId,omitempty"`
	Payouts  []Payout `json:"payouts"`
}

// IsParticipant reports whether uid plays in the duel.
func (d *Duel) IsParticipant(uid string) bool {
	return uid == d.ChallengerID || uid == d.OpponentID
}

// ScoreOf returns the recorded score of a participant, if any.
func (d *Duel) ScoreOf(uid string) *int {
	switch uid {
	case d.ChallengerID:
		return d.ChallengerScore
	case d.OpponentID:
		return d.OpponentScore
	}
	return nil
}

// Other returns the opposing participant.
func (d *Duel) Other(uid string) string {
	if uid == d.ChallengerID {
		return d.OpponentID
	}
	return d.ChallengerID
}

// PostScore records a participant's score. When it is the second score the duel
// completes and the returned settlement carries the payouts; otherwise it is nil.
func (d *Duel) PostScore(uid string, score int, tie TieRule, now time.Time) (*Settlement, error) {
	if !d.IsParticipant(uid) {
		return nil, ErrNotParticipant
	}
	if d.Status != DuelActive {
		return nil, ErrDuelNotActive
	}
	if d.ScoreOf(uid) != nil {
		return nil, ErrAlreadyScored
	}
	s := score
	if uid == d.ChallengerID {
		d.ChallengerScore = &s
	} else {
		d.OpponentScore = &s
	}

	other := d.Other(uid)
	otherScore := d.ScoreOf(other)
	if otherScore == nil {
		return nil, nil
	}

	settlement := &Settlement{}
	switch {
	case score > *otherScore:
		settlement.WinnerID, settlement.LoserID = uid, other
	case score < *otherScore:
		settlement.WinnerID, settlement.LoserID = other, uid
	case tie == TieDraw:
		settlement.Payouts = []Payout{
			{UserID: d.ChallengerID, Amount: d.Wager},
			{UserID: d.OpponentID, Amount: d.Wager},
		}
	default:
		// the score already on record was posted first
		settlement.WinnerID, settlement.LoserID = other, uid
	}
	if settlement.WinnerID != "" {
		settlement.Payouts = []Payout{{UserID: settlement.WinnerID, Amount: d.Wager * 2}}
	}

	d.Status = DuelCompleted
	d.WinnerID = settlement.WinnerID
	t := now.UTC()
	d.CompletedAt = &t
	return settlement, nil
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to DuelStatus) bool {
	switch from {
	case DuelPending:
		return to == DuelActive || to == DuelDeclined
	case DuelActive:
		return to == DuelCompleted
	}
	return false
}

// Validate checks a duel decoded from a store.
func (d *Duel) Validate() error {
	if d.ID == "" || d.ChallengerID == "" || d.OpponentID == "" {
		return fmt.Errorf("%w: duel without participants", ErrCorruptRecord)
	}
	switch d.Status {
	case DuelPending, DuelActive, DuelCompleted, DuelDeclined:
	default:
		return fmt.Errorf("%w: duel %s has status %q", ErrCorruptRecord, d.ID, d.Status)
	}
	if d.Wager < 0 {
		return fmt.Errorf("%w: duel %s has negative wager", ErrCorruptRecord, d.ID)
	}
	if d.Status == DuelCompleted && (d.ChallengerScore == nil || d.OpponentScore == nil) {
		return fmt.Errorf("%w: duel %s completed without both scores", ErrCorruptRecord, d.ID)
	}
	return nil
}
