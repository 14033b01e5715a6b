package memstore

import (
	"context"
	"sort"
	"time"

	"emberarena/internal/models"
)

func (db *DB) CreateDuel(ctx context.Context, d *models.Duel) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.duels[d.ID] = cloneDuel(*d)
	return nil
}

func (db *DB) GetDuel(ctx context.Context, id string) (*models.Duel, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, ok := db.duels[id]
	if !ok {
		return nil, models.ErrDuelNotFound
	}
	d = cloneDuel(d)
	return &d, nil
}

func (db *DB) ListDuelsForUser(ctx context.Context, uid string, limit int) ([]models.Duel, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.Duel
	for _, d := range db.duels {
		if d.IsParticipant(uid) {
			out = append(out, cloneDuel(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (db *DB) TransitionDuel(ctx context.Context, id string, from, to models.DuelStatus) (*models.Duel, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, ok := db.duels[id]
	if !ok {
		return nil, models.ErrDuelNotFound
	}
	if d.Status != from || !models.CanTransition(from, to) {
		return nil, models.ErrInvalidTransition
	}
	d.Status = to
	db.duels[id] = d
	d = cloneDuel(d)
	return &d, nil
}

func (db *DB) RecordScore(ctx context.Context, id, uid string, score int, tie models.TieRule, now time.Time) (*models.Duel, *models.Settlement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	stored, ok := db.duels[id]
	if !ok {
		return nil, nil, models.ErrDuelNotFound
	}
	d := cloneDuel(stored)
	settlement, err := d.PostScore(uid, score, tie, now)
	if err != nil {
		return nil, nil, err
	}
	if settlement != nil {
		// every payee must exist before anyone is paid
		for _, p := range settlement.Payouts {
			if _, ok := db.users[p.UserID]; !ok {
				return nil, nil, models.ErrUserNotFound
			}
		}
		for _, p := range settlement.Payouts {
			u := db.users[p.UserID]
			u.Embers += p.Amount
			db.users[p.UserID] = u
			db.ledger[p.UserID] = append(db.ledger[p.UserID], models.LedgerEntry{
				ID:        d.ID + ":" + p.UserID,
				UserID:    p.UserID,
				Kind:      models.LedgerEarn,
				Amount:    p.Amount,
				Source:    models.SourceDuel,
				RefID:     d.ID,
				CreatedAt: now.UTC(),
			})
		}
		if settlement.WinnerID != "" {
			if w, ok := db.users[settlement.WinnerID]; ok {
				w.Stats.Wins++
				db.users[w.UID] = w
			}
			if l, ok := db.users[settlement.LoserID]; ok {
				l.Stats.Losses++
				db.users[l.UID] = l
			}
		}
	}
	db.duels[id] = d
	out := cloneDuel(d)
	return &out, settlement, nil
}

func (db *DB) CountDuels(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.duels), nil
}

// cloneDuel copies the score pointers so callers never alias stored state.
func cloneDuel(d models.Duel) models.Duel {
	if d.ChallengerScore != nil {
		s := *d.ChallengerScore
		d.ChallengerScore = &s
	}
	if d.OpponentScore != nil {
		s := *d.OpponentScore
		d.OpponentScore = &s
	}
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		d.CompletedAt = &t
	}
	return d
}
