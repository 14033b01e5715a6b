package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"emberarena/internal/models"
)

const friendshipColumns = `user_low, user_high, requester_id, status, created_at, responded_at`

// FriendshipRepository stores one edge row per unordered pair of users
type FriendshipRepository struct {
	db *sql.DB
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db *sql.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func scanFriendship(row scanner) (*models.Friendship, error) {
	var f models.Friendship
	var respondedAt sql.NullTime
	if err := row.Scan(&f.UserLow, &f.UserHigh, &f.RequesterID, &f.Status, &f.CreatedAt, &respondedAt); err != nil {
		return nil, err
	}
	if respondedAt.Valid {
		f.RespondedAt = &respondedAt.Time
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepository) GetEdge(ctx context.Context, a, b string) (*models.Friendship, error) {
	low, high := models.EdgeKey(a, b)
	f, err := scanFriendship(r.db.QueryRowContext(ctx,
		`SELECT `+friendshipColumns+` FROM friendships WHERE user_low = ? AND user_high = ?`, low, high))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEdgeNotFound
	}
	return f, err
}

// CreateEdge relies on the (user_low, user_high) primary key to reject a second edge.
func (r *FriendshipRepository) CreateEdge(ctx context.Context, f *models.Friendship) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO friendships (`+friendshipColumns+`) VALUES (`+placeholders(6)+`)`,
		f.UserLow, f.UserHigh, f.RequesterID, f.Status, f.CreatedAt, nullableTime(f.RespondedAt))
	if isDuplicate(err) {
		return models.ErrEdgeExists
	}
	return err
}

func (r *FriendshipRepository) ConfirmEdge(ctx context.Context, a, b string, now time.Time) error {
	low, high := models.EdgeKey(a, b)
	res, err := r.db.ExecContext(ctx,
		`UPDATE friendships SET status = ?, responded_at = ? WHERE user_low = ? AND user_high = ? AND status = ?`,
		models.FriendshipConfirmed, now.UTC(), low, high, models.FriendshipPending)
	if err != nil {
		return err
	}
	return expectOneRow(res, models.ErrEdgeNotFound)
}

func (r *FriendshipRepository) DeleteEdge(ctx context.Context, a, b string, status models.FriendshipStatus) error {
	low, high := models.EdgeKey(a, b)
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM friendships WHERE user_low = ? AND user_high = ? AND status = ?`, low, high, status)
	if err != nil {
		return err
	}
	return expectOneRow(res, models.ErrEdgeNotFound)
}

func (r *FriendshipRepository) ListEdges(ctx context.Context, uid string) ([]models.Friendship, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+friendshipColumns+` FROM friendships WHERE user_low = ? OR user_high = ?`, uid, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	edges := []models.Friendship{}
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, err
		}
		edges = append(edges, *f)
	}
	return edges, rows.Err()
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
