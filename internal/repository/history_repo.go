package repository

import (
	"context"
	"database/sql"
	"fmt"

	"emberarena/internal/models"
)

const (
	trialColumns  = `id, user_id, quiz_id, started_at, ended_at, correct_count, total_questions, accuracy, earned_embers, valid`
	ledgerColumns = `id, user_id, kind, amount, source, ref_id, created_at`
)

// HistoryRepository reads trial history and the ember ledger
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func insertTrialRecord(ctx context.Context, q querier, rec *models.TrialRecord) error {
	_, err := q.ExecContext(ctx, `INSERT INTO trial_records (`+trialColumns+`) VALUES (`+placeholders(10)+`)`,
		rec.ID, rec.UserID, rec.QuizID, rec.StartedAt, rec.EndedAt,
		rec.CorrectCount, rec.TotalQuestions, rec.Accuracy, rec.EarnedEmbers, rec.Valid)
	if err != nil {
		return fmt.Errorf("insert trial record: %w", err)
	}
	return nil
}

func insertLedger(ctx context.Context, q querier, e *models.LedgerEntry) error {
	_, err := q.ExecContext(ctx, `INSERT INTO ledger (`+ledgerColumns+`) VALUES (`+placeholders(7)+`)`,
		e.ID, e.UserID, e.Kind, e.Amount, e.Source, e.RefID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListTrialRecords returns the newest rewarded trials first.
func (r *HistoryRepository) ListTrialRecords(ctx context.Context, uid string, limit int) ([]models.TrialRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+trialColumns+` FROM trial_records WHERE user_id = ? ORDER BY ended_at DESC, id DESC LIMIT ?`, uid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TrialRecord{}
	for rows.Next() {
		var rec models.TrialRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.QuizID, &rec.StartedAt, &rec.EndedAt,
			&rec.CorrectCount, &rec.TotalQuestions, &rec.Accuracy, &rec.EarnedEmbers, &rec.Valid); err != nil {
			return nil, err
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListLedger returns the newest ember movements first.
func (r *HistoryRepository) ListLedger(ctx context.Context, uid string, limit int) ([]models.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ledgerColumns+` FROM ledger WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, uid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.Source, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
