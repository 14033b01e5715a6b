package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"emberarena/internal/catalog"
	"emberarena/internal/models"
	"emberarena/internal/store"
)

// DefaultDuelListLimit caps the duel listing.
const DefaultDuelListLimit = 20

// RoundResult is the outcome of one player's duel round
type RoundResult struct {
	Duel       *models.Duel       `json:"duel"`
	Score      int                `json:"score"`
	Settlement *models.Settlement `json:"settlement,omitempty"`
}

// DuelService handles the duel lifecycle: challenge, accept or decline, the
// two independent rounds and settlement.
type DuelService struct {
	catalog     *catalog.Catalog
	users       store.UserStore
	duels       store.DuelStore
	friends     store.FriendStore
	trials      *TrialService
	userService *UserService
	tie         models.TieRule
	now         func() time.Time
}

// NewDuelService creates a new duel service.
func NewDuelService(
	c *catalog.Catalog,
	users store.UserStore,
	duels store.DuelStore,
	friends store.FriendStore,
	trials *TrialService,
	userService *UserService,
	tie models.TieRule,
) *DuelService {
	return &DuelService{
		catalog:     c,
		users:       users,
		duels:       duels,
		friends:     friends,
		trials:      trials,
		userService: userService,
		tie:         tie,
		now:         time.Now,
	}
}

// Create challenges a confirmed friend. The wager is checked against the
// challenger's balance but not held.
func (s *DuelService) Create(ctx context.Context, challengerID, opponentID, quizID string, wager int64) (*models.Duel, error) {
	if challengerID == opponentID {
		return nil, ErrSelfChallenge
	}
	if _, ok := s.catalog.Quiz(quizID); !ok {
		return nil, ErrQuizNotFound
	}
	if wager <= 0 {
		return nil, ErrInvalidWager
	}
	challenger, err := s.users.GetUser(ctx, challengerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, opponentID); err != nil {
		return nil, err
	}
	edge, err := s.friends.GetEdge(ctx, challengerID, opponentID)
	if errors.Is(err, models.ErrEdgeNotFound) || (err == nil && edge.Status != models.FriendshipConfirmed) {
		return nil, ErrNotFriends
	}
	if err != nil {
		return nil, err
	}
	if challenger.Embers < wager {
		return nil, models.ErrInsufficientEmbers
	}

	d := &models.Duel{
		ID:           uuid.NewString(),
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		QuizID:       quizID,
		Status:       models.DuelPending,
		Wager:        wager,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.duels.CreateDuel(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DuelService) Get(ctx context.Context, uid, duelID string) (*models.Duel, error) {
	d, err := s.duels.GetDuel(ctx, duelID)
	if err != nil {
		return nil, err
	}
	if !d.IsParticipant(uid) {
		return nil, models.ErrDuelNotFound
	}
	return d, nil
}

func (s *DuelService) List(ctx context.Context, uid string) ([]models.Duel, error) {
	return s.duels.ListDuelsForUser(ctx, uid, DefaultDuelListLimit)
}

// Accept moves a pending duel to active; only the opponent may accept.
func (s *DuelService) Accept(ctx context.Context, uid, duelID string) (*models.Duel, error) {
	d, err := s.Get(ctx, uid, duelID)
	if err != nil {
		return nil, err
	}
	if d.OpponentID != uid {
		return nil, ErrForbidden
	}
	return s.duels.TransitionDuel(ctx, duelID, models.DuelPending, models.DuelActive)
}

// Decline ends a pending duel. The opponent declines; the challenger withdraws.
func (s *DuelService) Decline(ctx context.Context, uid, duelID string) (*models.Duel, error) {
	if _, err := s.Get(ctx, uid, duelID); err != nil {
		return nil, err
	}
	return s.duels.TransitionDuel(ctx, duelID, models.DuelPending, models.DuelDeclined)
}

// StartRound opens the caller's play session against the duel's quiz.
func (s *DuelService) StartRound(ctx context.Context, uid, duelID string) (*models.PlaySession, models.Quiz, error) {
	d, err := s.Get(ctx, uid, duelID)
	if err != nil {
		return nil, models.Quiz{}, err
	}
	if d.Status != models.DuelActive {
		return nil, models.Quiz{}, models.ErrDuelNotActive
	}
	if d.ScoreOf(uid) != nil {
		return nil, models.Quiz{}, models.ErrAlreadyScored
	}
	quiz, ok := s.catalog.Quiz(d.QuizID)
	if !ok {
		return nil, models.Quiz{}, ErrQuizNotFound
	}
	sess, err := s.trials.openSession(ctx, uid, d.QuizID, d.ID)
	if err != nil {
		return nil, models.Quiz{}, err
	}
	return sess, quiz, nil
}

// CompleteRound scores the caller's round and records it. The second score
// settles the duel.
func (s *DuelService) CompleteRound(ctx context.Context, uid, sessionID string) (*RoundResult, error) {
	sess, quiz, err := s.trials.claim(ctx, uid, sessionID, true)
	if err != nil {
		return nil, err
	}
	score := ScoreAttempt(quiz, sess.Answers).CorrectCount
	d, settlement, err := s.duels.RecordScore(ctx, sess.DuelID, uid, score, s.tie, s.now())
	if err != nil {
		return nil, err
	}
	if settlement != nil {
		s.userService.Invalidate(ctx, d.ChallengerID, d.OpponentID)
	}
	return &RoundResult{Duel: d, Score: score, Settlement: settlement}, nil
}
