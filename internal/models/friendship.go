package models

import (
	"fmt"
	"sort"
	"time"
)

// FriendshipStatus is the state of a relationship edge
type FriendshipStatus string

const (
	FriendshipPending   FriendshipStatus = "pending"
	FriendshipConfirmed FriendshipStatus = "confirmed"
)

// Friendship is the single edge shared by two users, keyed by the unordered pair
type Friendship struct {
	UserLow     string           `json:"userLow" db:"user_low"`
	UserHigh    string           `json:"userHigh" db:"user_high"`
	RequesterID string           `json:"requesterId" db:"requester_id"`
	Status      FriendshipStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty" db:"responded_at"`
}

// EdgeKey orders a pair of user ids so both directions map to one edge.
func EdgeKey(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}

// NewFriendRequest builds a pending edge from requester to addressee.
func NewFriendRequest(requester, addressee string, now time.Time) *Friendship {
	low, high := EdgeKey(requester, addressee)
	return &Friendship{
		UserLow:     low,
		UserHigh:    high,
		RequesterID: requester,
		Status:      FriendshipPending,
		CreatedAt:   now.UTC(),
	}
}

// Peer returns the other end of the edge.
func (f *Friendship) Peer(uid string) string {
	if uid == f.UserLow {
		return f.UserHigh
	}
	return f.UserLow
}

// AddresseeID returns the user the request was sent to.
func (f *Friendship) AddresseeID() string {
	return f.Peer(f.RequesterID)
}

// Validate checks an edge decoded from a store.
func (f *Friendship) Validate() error {
	if f.UserLow == "" || f.UserHigh == "" || f.UserLow >= f.UserHigh {
		return fmt.Errorf("%w: friendship key (%q, %q)", ErrCorruptRecord, f.UserLow, f.UserHigh)
	}
	if f.RequesterID != f.UserLow && f.RequesterID != f.UserHigh {
		return fmt.Errorf("%w: friendship requester %q outside pair", ErrCorruptRecord, f.RequesterID)
	}
	if f.Status != FriendshipPending && f.Status != FriendshipConfirmed {
		return fmt.Errorf("%w: friendship status %q", ErrCorruptRecord, f.Status)
	}
	return nil
}

// Relationships is one user's view over their edges
type Relationships struct {
	Confirmed       []string `json:"confirmed"`
	PendingSent     []string `json:"pendingSent"`
	PendingReceived []string `json:"pendingReceived"`
}

// BuildRelationships splits a user's edges into the three disjoint sets.
func BuildRelationships(uid string, edges []Friendship) Relationships {
	r := Relationships{
		Confirmed:       []string{},
		PendingSent:     []string{},
		PendingReceived: []string{},
	}
	seen := make(map[string]bool, len(edges))
	for i := range edges {
		e := &edges[i]
		if e.UserLow != uid && e.UserHigh != uid {
			continue
		}
		peer := e.Peer(uid)
		if seen[peer] {
			continue
		}
		seen[peer] = true
		switch {
		case e.Status == FriendshipConfirmed:
			r.Confirmed = append(r.Confirmed, peer)
		case e.RequesterID == uid:
			r.PendingSent = append(r.PendingSent, peer)
		default:
			r.PendingReceived = append(r.PendingReceived, peer)
		}
	}
	sort.Strings(r.Confirmed)
	sort.Strings(r.PendingSent)
	sort.Strings(r.PendingReceived)
	return r
}
