package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"emberarena/internal/models"
)

const userColumns = `uid, username, email, password_hash, role, level, embers, streak_days, last_login,
	avatar, title, equipped_theme, quizzes_done, accuracy, total_embers_earned, wins, losses,
	allow_friend_requests, show_lore_to_friends, public_leaderboard, created_at`

// UserRepository handles all database operations for user profiles
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row scanner) (*models.UserProfile, error) {
	var u models.UserProfile
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Level, &u.Embers, &u.StreakDays, &lastLogin,
		&u.Avatar, &u.Title, &u.EquippedTheme,
		&u.Stats.QuizzesDone, &u.Stats.Accuracy, &u.Stats.TotalEmbersEarned, &u.Stats.Wins, &u.Stats.Losses,
		&u.Privacy.AllowFriendRequests, &u.Privacy.ShowLoreToFriends, &u.Privacy.PublicLeaderboard, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// getUser reads one profile; forUpdate locks the row for the enclosing transaction.
func getUser(ctx context.Context, q querier, uid string, forUpdate bool) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	u, err := scanUser(q.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func collectUsers(rows *sql.Rows) ([]models.UserProfile, error) {
	defer rows.Close()
	users := []models.UserProfile{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// CreateUser inserts a new profile; a taken email or username yields ErrAccountExists.
func (r *UserRepository) CreateUser(ctx context.Context, u *models.UserProfile) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (` + placeholders(21) + `)`
	var lastLogin any
	if u.LastLogin != nil {
		lastLogin = *u.LastLogin
	}
	_, err := r.db.ExecContext(ctx, query,
		u.UID, u.Username, u.Email, u.PasswordHash, u.Role, u.Level, u.Embers, u.StreakDays, lastLogin,
		u.Avatar, u.Title, u.EquippedTheme,
		u.Stats.QuizzesDone, u.Stats.Accuracy, u.Stats.TotalEmbersEarned, u.Stats.Wins, u.Stats.Losses,
		u.Privacy.AllowFriendRequests, u.Privacy.ShowLoreToFriends, u.Privacy.PublicLeaderboard, u.CreatedAt,
	)
	if isDuplicate(err) {
		return models.ErrAccountExists
	}
	return err
}

// GetUser retrieves a user by uid
func (r *UserRepository) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	return getUser(ctx, r.db, uid, false)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	return u, err
}

// GetUsers returns the profiles that exist among uids, in no particular order.
func (r *UserRepository) GetUsers(ctx context.Context, uids []string) ([]models.UserProfile, error) {
	if len(uids) == 0 {
		return []models.UserProfile{}, nil
	}
	args := make([]any, len(uids))
	for i, uid := range uids {
		args[i] = uid
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE uid IN (`+placeholders(len(uids))+`)`, args...)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// SearchUsers finds users whose username starts with prefix
func (r *UserRepository) SearchUsers(ctx context.Context, prefix string, limit int) ([]models.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username LIKE ? ORDER BY username LIMIT ?`,
		likePrefix(prefix), limit)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, uid, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE uid = ?`, passwordHash, uid)
	if err != nil {
		return err
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// RecordLogin updates the login streak under a row lock.
func (r *UserRepository) RecordLogin(ctx context.Context, uid string, now time.Time) (*models.UserProfile, error) {
	var out *models.UserProfile
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		u, err := getUser(ctx, tx, uid, true)
		if err != nil {
			return err
		}
		u.RecordLogin(now)
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET streak_days = ?, last_login = ? WHERE uid = ?`,
			u.StreakDays, *u.LastLogin, uid); err != nil {
			return fmt.Errorf("update login: %w", err)
		}
		out = u
		return nil
	})
	return out, err
}

func (r *UserRepository) UpdatePrivacy(ctx context.Context, uid string, p models.Privacy) (*models.UserProfile, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET allow_friend_requests = ?, show_lore_to_friends = ?, public_leaderboard = ? WHERE uid = ?`,
		p.AllowFriendRequests, p.ShowLoreToFriends, p.PublicLeaderboard, uid)
	if err != nil {
		return nil, err
	}
	// MySQL reports 0 affected rows for a no-op update, so existence is checked by reading back.
	return r.GetUser(ctx, uid)
}

// ApplyTrial locks the profile row, folds the attempt in and writes the history
// and ledger rows before committing.
func (r *UserRepository) ApplyTrial(ctx context.Context, rec *models.TrialRecord, ledger *models.LedgerEntry) (*models.UserProfile, error) {
	var out *models.UserProfile
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		u, err := getUser(ctx, tx, rec.UserID, true)
		if err != nil {
			return err
		}
		u.ApplyTrial(rec.Accuracy, rec.EarnedEmbers)
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET embers = ?, quizzes_done = ?, accuracy = ?, total_embers_earned = ? WHERE uid = ?`,
			u.Embers, u.Stats.QuizzesDone, u.Stats.Accuracy, u.Stats.TotalEmbersEarned, u.UID); err != nil {
			return fmt.Errorf("update stats: %w", err)
		}
		if err := insertTrialRecord(ctx, tx, rec); err != nil {
			return err
		}
		if ledger != nil {
			if err := insertLedger(ctx, tx, ledger); err != nil {
				return err
			}
		}
		out = u
		return nil
	})
	return out, err
}

// TopByEmbersEarned is the MySQL fallback for the global leaderboard.
func (r *UserRepository) TopByEmbersEarned(ctx context.Context, limit int) ([]models.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE public_leaderboard = TRUE
		 ORDER BY total_embers_earned DESC, uid ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
