package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"emberarena/internal/models"
	"emberarena/internal/store"
)

// SearchLimit caps username search results.
const SearchLimit = 10

// FriendService drives the friend request state machine over single edges.
type FriendService struct {
	users   store.UserStore
	friends store.FriendStore
	now     func() time.Time
}

func NewFriendService(users store.UserStore, friends store.FriendStore) *FriendService {
	return &FriendService{users: users, friends: friends, now: time.Now}
}

// SendRequest asks to befriend to. Repeating a request or requesting an
// existing friend is a no-op; a request crossing one from to is accepted.
func (s *FriendService) SendRequest(ctx context.Context, from, to string) (*models.Friendship, error) {
	if from == to {
		return nil, ErrSelfRequest
	}
	target, err := s.users.GetUser(ctx, to)
	if err != nil {
		return nil, err
	}

	edge, err := s.friends.GetEdge(ctx, from, to)
	switch {
	case errors.Is(err, models.ErrEdgeNotFound):
		if !target.Privacy.AllowFriendRequests {
			return nil, ErrFriendRequestsClosed
		}
		edge = models.NewFriendRequest(from, to, s.now())
		err = s.friends.CreateEdge(ctx, edge)
		if errors.Is(err, models.ErrEdgeExists) {
			// lost a race with another request on the same pair
			return s.friends.GetEdge(ctx, from, to)
		}
		if err != nil {
			return nil, err
		}
		return edge, nil
	case err != nil:
		return nil, err
	}

	if edge.Status == models.FriendshipPending && edge.RequesterID == to {
		return s.confirm(ctx, from, to)
	}
	return edge, nil
}

// Accept confirms a pending request addressed to uid. Accepting an existing
// friend is a no-op.
func (s *FriendService) Accept(ctx context.Context, uid, peer string) (*models.Friendship, error) {
	edge, err := s.friends.GetEdge(ctx, uid, peer)
	if err != nil {
		return nil, err
	}
	if edge.Status == models.FriendshipConfirmed {
		return edge, nil
	}
	if edge.RequesterID == uid {
		return nil, ErrForbidden
	}
	return s.confirm(ctx, uid, peer)
}

func (s *FriendService) confirm(ctx context.Context, a, b string) (*models.Friendship, error) {
	err := s.friends.ConfirmEdge(ctx, a, b, s.now())
	if err != nil && !errors.Is(err, models.ErrEdgeNotFound) {
		return nil, err
	}
	// a concurrent accept may have confirmed it first
	edge, getErr := s.friends.GetEdge(ctx, a, b)
	if getErr != nil {
		return nil, getErr
	}
	if edge.Status != models.FriendshipConfirmed {
		return nil, models.ErrEdgeNotFound
	}
	return edge, nil
}

// Decline drops a pending request in either direction, so the sender can also cancel.
func (s *FriendService) Decline(ctx context.Context, uid, peer string) error {
	return s.friends.DeleteEdge(ctx, uid, peer, models.FriendshipPending)
}

// Remove ends a confirmed friendship.
func (s *FriendService) Remove(ctx context.Context, uid, peer string) error {
	return s.friends.DeleteEdge(ctx, uid, peer, models.FriendshipConfirmed)
}

func (s *FriendService) Relationships(ctx context.Context, uid string) (models.Relationships, error) {
	edges, err := s.friends.ListEdges(ctx, uid)
	if err != nil {
		return models.Relationships{}, err
	}
	return models.BuildRelationships(uid, edges), nil
}

// Search finds users by username prefix, excluding the caller.
func (s *FriendService) Search(ctx context.Context, uid, prefix string) ([]models.UserProfile, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []models.UserProfile{}, nil
	}
	users, err := s.users.SearchUsers(ctx, prefix, SearchLimit+1)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		if u.UID == uid || len(out) == SearchLimit {
			continue
		}
		out = append(out, u.Public())
	}
	return out, nil
}
