package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"emberarena/internal/models"
)

const duelColumns = `id, challenger_id, opponent_id, quiz_id, status, wager,
	challenger_score, opponent_score, winner_id, created_at, completed_at`

// DuelRepository persists duels and settles them inside a row-locked transaction
type DuelRepository struct {
	db *sql.DB
}

// NewDuelRepository creates a new duel repository
func NewDuelRepository(db *sql.DB) *DuelRepository {
	return &DuelRepository{db: db}
}

func scanDuel(row scanner) (*models.Duel, error) {
	var d models.Duel
	var challengerScore, opponentScore sql.NullInt64
	var winnerID sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(&d.ID, &d.ChallengerID, &d.OpponentID, &d.QuizID, &d.Status, &d.Wager,
		&challengerScore, &opponentScore, &winnerID, &d.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if challengerScore.Valid {
		s := int(challengerScore.Int64)
		d.ChallengerScore = &s
	}
	if opponentScore.Valid {
		s := int(opponentScore.Int64)
		d.OpponentScore = &s
	}
	d.WinnerID = winnerID.String
	if completedAt.Valid {
		d.CompletedAt = &completedAt.Time
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func getDuel(ctx context.Context, q querier, id string, forUpdate bool) (*models.Duel, error) {
	query := `SELECT ` + duelColumns + ` FROM duels WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	d, err := scanDuel(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrDuelNotFound
	}
	return d, err
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func (r *DuelRepository) CreateDuel(ctx context.Context, d *models.Duel) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO duels (`+duelColumns+`) VALUES (`+placeholders(11)+`)`,
		d.ID, d.ChallengerID, d.OpponentID, d.QuizID, d.Status, d.Wager,
		nullableInt(d.ChallengerScore), nullableInt(d.OpponentScore), nullableString(d.WinnerID),
		d.CreatedAt, nullableTime(d.CompletedAt))
	return err
}

func (r *DuelRepository) GetDuel(ctx context.Context, id string) (*models.Duel, error) {
	return getDuel(ctx, r.db, id, false)
}

// ListDuelsForUser returns the user's duels, newest first.
func (r *DuelRepository) ListDuelsForUser(ctx context.Context, uid string, limit int) ([]models.Duel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+duelColumns+` FROM duels WHERE challenger_id = ? OR opponent_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, uid, uid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	duels := []models.Duel{}
	for rows.Next() {
		d, err := scanDuel(rows)
		if err != nil {
			return nil, err
		}
		duels = append(duels, *d)
	}
	return duels, rows.Err()
}

// TransitionDuel is a compare-and-set on the status column.
func (r *DuelRepository) TransitionDuel(ctx context.Context, id string, from, to models.DuelStatus) (*models.Duel, error) {
	if !models.CanTransition(from, to) {
		return nil, models.ErrInvalidTransition
	}
	res, err := r.db.ExecContext(ctx, `UPDATE duels SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return nil, err
	}
	n, err := rowsAffected(res)
	if err != nil {
		return nil, err
	}
	d, err := r.GetDuel(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, models.ErrInvalidTransition
	}
	return d, nil
}

// RecordScore posts a score with the duel row locked. The payout, win/loss counters
// and ledger rows are written in the same transaction that flips the duel to completed.
func (r *DuelRepository) RecordScore(ctx context.Context, id, uid string, score int, tie models.TieRule, now time.Time) (*models.Duel, *models.Settlement, error) {
	var out *models.Duel
	var settlement *models.Settlement
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		d, err := getDuel(ctx, tx, id, true)
		if err != nil {
			return err
		}
		s, err := d.PostScore(uid, score, tie, now)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE duels SET status = ?, challenger_score = ?, opponent_score = ?, winner_id = ?, completed_at = ? WHERE id = ?`,
			d.Status, nullableInt(d.ChallengerScore), nullableInt(d.OpponentScore),
			nullableString(d.WinnerID), nullableTime(d.CompletedAt), d.ID); err != nil {
			return fmt.Errorf("update duel: %w", err)
		}
		if s != nil {
			if err := settleDuel(ctx, tx, d, s, now); err != nil {
				return err
			}
		}
		out, settlement = d, s
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, settlement, nil
}

func settleDuel(ctx context.Context, tx *sql.Tx, d *models.Duel, s *models.Settlement, now time.Time) error {
	for _, p := range s.Payouts {
		res, err := tx.ExecContext(ctx, `UPDATE users SET embers = embers + ? WHERE uid = ?`, p.Amount, p.UserID)
		if err != nil {
			return fmt.Errorf("credit payout: %w", err)
		}
		if n, err := rowsAffected(res); err != nil {
			return err
		} else if n == 0 {
			return models.ErrUserNotFound
		}
		if err := insertLedger(ctx, tx, &models.LedgerEntry{
			ID:        d.ID + ":" + p.UserID,
			UserID:    p.UserID,
			Kind:      models.LedgerEarn,
			Amount:    p.Amount,
			Source:    models.SourceDuel,
			RefID:     d.ID,
			CreatedAt: now.UTC(),
		}); err != nil {
			return err
		}
	}
	if s.WinnerID == "" {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET wins = wins + 1 WHERE uid = ?`, s.WinnerID); err != nil {
		return fmt.Errorf("record win: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET losses = losses + 1 WHERE uid = ?`, s.LoserID); err != nil {
		return fmt.Errorf("record loss: %w", err)
	}
	return nil
}

func (r *DuelRepository) CountDuels(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM duels`).Scan(&n)
	return n, err
}
