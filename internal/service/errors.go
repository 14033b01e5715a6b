package service

import "errors"

// Business-rule errors; store conditions live in models.
var (
	ErrQuizNotFound  = errors.New("quiz not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrLevelTooLow   = errors.New("level too low for this item")
	ErrForbidden     = errors.New("not allowed")
	ErrInvalidAnswer = errors.New("answer index out of range")
	ErrRoundComplete = errors.New("all questions already answered")
	ErrWrongMode     = errors.New("session belongs to a different mode")

	ErrSelfChallenge = errors.New("cannot challenge yourself")
	ErrInvalidWager  = errors.New("wager must be positive")
	ErrNotFriends    = errors.New("you can only duel confirmed friends")

	ErrSelfRequest          = errors.New("cannot send a friend request to yourself")
	ErrFriendRequestsClosed = errors.New("user is not accepting friend requests")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not signed in")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidUsername    = errors.New("username must be 3-24 letters, digits, '_' or '-'")
	ErrInvalidAvatar      = errors.New("avatar must be warrior, guardian or mage")
)
