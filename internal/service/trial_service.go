package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"emberarena/internal/catalog"
	"emberarena/internal/models"
	"emberarena/internal/store"
)

// AnswerResult is the feedback for one submitted answer
type AnswerResult struct {
	QuestionIndex int    `json:"questionIndex"`
	Correct       bool   `json:"correct"`
	TimedOut      bool   `json:"timedOut"`
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Remaining     int    `json:"remaining"`
}

// TrialResult is the outcome of a completed trial
type TrialResult struct {
	Score
	QuizID         string              `json:"quizId"`
	Rewarded       bool                `json:"rewarded"`
	Elapsed        time.Duration       `json:"-"`
	ElapsedSeconds float64             `json:"elapsedSeconds"`
	Profile        *models.UserProfile `json:"profile,omitempty"`
}

// TrialService runs single-player attempts: play sessions, per-question
// timers, scoring and the reward gate.
type TrialService struct {
	catalog     *catalog.Catalog
	users       store.UserStore
	sessions    store.PlaySessionStore
	userService *UserService
	now         func() time.Time
}

// NewTrialService creates a new trial service.
func NewTrialService(c *catalog.Catalog, users store.UserStore, sessions store.PlaySessionStore, userService *UserService) *TrialService {
	return &TrialService{
		catalog:     c,
		users:       users,
		sessions:    sessions,
		userService: userService,
		now:         time.Now,
	}
}

func (s *TrialService) Trials(difficulty string) []models.Quiz {
	return s.catalog.QuizzesByDifficulty(difficulty)
}

// Start opens a trial session on quizID.
func (s *TrialService) Start(ctx context.Context, uid, quizID string) (*models.PlaySession, models.Quiz, error) {
	quiz, ok := s.catalog.Quiz(quizID)
	if !ok {
		return nil, models.Quiz{}, ErrQuizNotFound
	}
	sess, err := s.openSession(ctx, uid, quizID, "")
	if err != nil {
		return nil, models.Quiz{}, err
	}
	return sess, quiz, nil
}

func (s *TrialService) openSession(ctx context.Context, uid, quizID, duelID string) (*models.PlaySession, error) {
	now := s.now().UTC()
	sess := &models.PlaySession{
		ID:              uuid.NewString(),
		UserID:          uid,
		QuizID:          quizID,
		DuelID:          duelID,
		StartedAt:       now,
		QuestionShownAt: now,
		Answers:         []int{},
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Answer records the answer to the current question of a trial or duel round.
// An answer that arrives after QuestionTimeLimit is stored as models.NoAnswer.
func (s *TrialService) Answer(ctx context.Context, uid, sessionID string, choice int) (*AnswerResult, error) {
	var result *AnswerResult
	_, err := s.sessions.Update(ctx, sessionID, func(sess *models.PlaySession) error {
		if sess.UserID != uid {
			return models.ErrSessionNotFound
		}
		quiz, ok := s.catalog.Quiz(sess.QuizID)
		if !ok {
			return ErrQuizNotFound
		}
		idx := len(sess.Answers)
		if idx >= len(quiz.Questions) {
			return ErrRoundComplete
		}
		question := quiz.Questions[idx]
		if !question.ValidChoice(choice) {
			return ErrInvalidAnswer
		}

		now := s.now().UTC()
		timedOut := now.Sub(sess.QuestionShownAt) > QuestionTimeLimit
		if timedOut {
			choice = models.NoAnswer
		}
		sess.Answers = append(sess.Answers, choice)
		sess.QuestionShownAt = now

		result = &AnswerResult{
			QuestionIndex: idx,
			Correct:       choice != models.NoAnswer && choice == question.CorrectAnswer,
			TimedOut:      timedOut,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
			Remaining:     len(quiz.Questions) - idx - 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// claim takes a session for completion after checking it belongs to uid and to the expected mode.
func (s *TrialService) claim(ctx context.Context, uid, sessionID string, duel bool) (*models.PlaySession, models.Quiz, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, models.Quiz{}, err
	}
	if sess.UserID != uid {
		return nil, models.Quiz{}, models.ErrSessionNotFound
	}
	if sess.IsDuel() != duel {
		return nil, models.Quiz{}, ErrWrongMode
	}
	quiz, ok := s.catalog.Quiz(sess.QuizID)
	if !ok {
		return nil, models.Quiz{}, ErrQuizNotFound
	}
	sess, err = s.sessions.Claim(ctx, sessionID)
	if err != nil {
		return nil, models.Quiz{}, err
	}
	sess.Answers = padAnswers(sess.Answers, len(quiz.Questions))
	return sess, quiz, nil
}

// Complete finishes a trial session. Unanswered questions count as NoAnswer.
func (s *TrialService) Complete(ctx context.Context, uid, sessionID string) (*TrialResult, error) {
	sess, quiz, err := s.claim(ctx, uid, sessionID, false)
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, uid, quiz, sess.Answers, sess.StartedAt)
}

// CompleteWithAnswers grades a full answer list and, when the attempt took at
// least the quiz's minimum duration, credits it to the profile.
func (s *TrialService) CompleteWithAnswers(ctx context.Context, uid, quizID string, answers []int, startedAt time.Time) (*TrialResult, error) {
	quiz, ok := s.catalog.Quiz(quizID)
	if !ok {
		return nil, ErrQuizNotFound
	}
	return s.complete(ctx, uid, quiz, answers, startedAt)
}

func (s *TrialService) complete(ctx context.Context, uid string, quiz models.Quiz, answers []int, startedAt time.Time) (*TrialResult, error) {
	endedAt := s.now().UTC()
	result := &TrialResult{
		Score:   ScoreAttempt(quiz, answers),
		QuizID:  quiz.ID,
		Elapsed: endedAt.Sub(startedAt),
	}
	result.ElapsedSeconds = result.Elapsed.Seconds()
	if result.Elapsed < quiz.MinDuration() {
		// scored and shown, but nothing is credited or persisted
		result.EarnedEmbers = 0
		return result, nil
	}

	rec := &models.TrialRecord{
		ID:             uuid.NewString(),
		UserID:         uid,
		QuizID:         quiz.ID,
		StartedAt:      startedAt.UTC(),
		EndedAt:        endedAt,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Accuracy:       result.Accuracy,
		EarnedEmbers:   result.EarnedEmbers,
		Valid:          true,
	}
	var ledger *models.LedgerEntry
	if result.EarnedEmbers > 0 {
		ledger = &models.LedgerEntry{
			ID:        uuid.NewString(),
			UserID:    uid,
			Kind:      models.LedgerEarn,
			Amount:    result.EarnedEmbers,
			Source:    models.SourceTrial,
			RefID:     rec.ID,
			CreatedAt: endedAt,
		}
	}
	u, err := s.users.ApplyTrial(ctx, rec, ledger)
	if err != nil {
		return nil, err
	}
	s.userService.Refresh(ctx, u)

	result.Rewarded = true
	result.Profile = u
	return result, nil
}
