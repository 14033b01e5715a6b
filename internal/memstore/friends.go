package memstore

import (
	"context"
	"time"

	"emberarena/internal/models"
)

func edgeID(a, b string) [2]string {
	low, high := models.EdgeKey(a, b)
	return [2]string{low, high}
}

func (db *DB) GetEdge(ctx context.Context, a, b string) (*models.Friendship, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	f, ok := db.edges[edgeID(a, b)]
	if !ok {
		return nil, models.ErrEdgeNotFound
	}
	return &f, nil
}

func (db *DB) CreateEdge(ctx context.Context, f *models.Friendship) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	key := [2]string{f.UserLow, f.UserHigh}
	if _, exists := db.edges[key]; exists {
		return models.ErrEdgeExists
	}
	db.edges[key] = *f
	return nil
}

func (db *DB) ConfirmEdge(ctx context.Context, a, b string, now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	key := edgeID(a, b)
	f, ok := db.edges[key]
	if !ok || f.Status != models.FriendshipPending {
		return models.ErrEdgeNotFound
	}
	t := now.UTC()
	f.Status = models.FriendshipConfirmed
	f.RespondedAt = &t
	db.edges[key] = f
	return nil
}

func (db *DB) DeleteEdge(ctx context.Context, a, b string, status models.FriendshipStatus) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	key := edgeID(a, b)
	f, ok := db.edges[key]
	if !ok || f.Status != status {
		return models.ErrEdgeNotFound
	}
	delete(db.edges, key)
	return nil
}

func (db *DB) ListEdges(ctx context.Context, uid string) ([]models.Friendship, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.Friendship
	for _, f := range db.edges {
		if f.UserLow == uid || f.UserHigh == uid {
			out = append(out, f)
		}
	}
	return out, nil
}
