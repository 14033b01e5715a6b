package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		uid VARCHAR(64) PRIMARY KEY,
		username VARCHAR(32) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'player',
		level INT NOT NULL DEFAULT 1,
		embers BIGINT NOT NULL DEFAULT 0,
		streak_days INT NOT NULL DEFAULT 0,
		last_login DATETIME NULL,
		avatar VARCHAR(64) NOT NULL,
		title VARCHAR(64) NOT NULL,
		equipped_theme VARCHAR(64) NOT NULL,
		quizzes_done INT NOT NULL DEFAULT 0,
		accuracy DOUBLE NOT NULL DEFAULT 0,
		total_embers_earned BIGINT NOT NULL DEFAULT 0,
		wins INT NOT NULL DEFAULT 0,
		losses INT NOT NULL DEFAULT 0,
		allow_friend_requests BOOLEAN NOT NULL DEFAULT TRUE,
		show_lore_to_friends BOOLEAN NOT NULL DEFAULT TRUE,
		public_leaderboard BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL,
		INDEX idx_users_earned (public_leaderboard, total_embers_earned)
	)`,
	`CREATE TABLE IF NOT EXISTS duels (
		id VARCHAR(64) PRIMARY KEY,
		challenger_id VARCHAR(64) NOT NULL,
		opponent_id VARCHAR(64) NOT NULL,
		quiz_id VARCHAR(64) NOT NULL,
		status VARCHAR(16) NOT NULL,
		wager BIGINT NOT NULL,
		challenger_score INT NULL,
		opponent_score INT NULL,
		winner_id VARCHAR(64) NULL,
		created_at DATETIME NOT NULL,
		completed_at DATETIME NULL,
		INDEX idx_duels_challenger (challenger_id, created_at),
		INDEX idx_duels_opponent (opponent_id, created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_low VARCHAR(64) NOT NULL,
		user_high VARCHAR(64) NOT NULL,
		requester_id VARCHAR(64) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME NOT NULL,
		responded_at DATETIME NULL,
		PRIMARY KEY (user_low, user_high),
		INDEX idx_friendships_high (user_high)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		user_id VARCHAR(64) NOT NULL,
		item_id VARCHAR(64) NOT NULL,
		category VARCHAR(16) NOT NULL,
		owned_since DATETIME NOT NULL,
		equipped BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (user_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS trial_records (
		id VARCHAR(64) PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL,
		quiz_id VARCHAR(64) NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		correct_count INT NOT NULL,
		total_questions INT NOT NULL,
		accuracy DOUBLE NOT NULL,
		earned_embers BIGINT NOT NULL,
		valid BOOLEAN NOT NULL,
		INDEX idx_trials_user (user_id, ended_at)
	)`,
	`CREATE TABLE IF NOT EXISTS ledger (
		id VARCHAR(140) PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL,
		kind VARCHAR(8) NOT NULL,
		amount BIGINT NOT NULL,
		source VARCHAR(32) NOT NULL,
		ref_id VARCHAR(64) NOT NULL,
		created_at DATETIME NOT NULL,
		INDEX idx_ledger_user (user_id, created_at)
	)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
