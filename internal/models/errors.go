package models

import "errors"

// Store and domain errors shared by every store implementation
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrDuelNotFound    = errors.New("duel not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenNotFound   = errors.New("token invalid or expired")
	ErrEdgeNotFound    = errors.New("friend request not found")
	ErrEdgeExists      = errors.New("friend request already exists")
	ErrCorruptRecord   = errors.New("corrupt record")
	ErrConflict        = errors.New("concurrent update, try again")

	ErrInsufficientEmbers = errors.New("insufficient embers")
	ErrAlreadyOwned       = errors.New("item already owned")
	ErrNotOwned           = errors.New("item not owned")
	ErrNotEquippable      = errors.New("item cannot be equipped")

	ErrNotParticipant    = errors.New("not a participant of this duel")
	ErrDuelNotActive     = errors.New("duel is not active")
	ErrAlreadyScored     = errors.New("score already recorded")
	ErrInvalidTransition = errors.New("invalid duel status transition")
)
