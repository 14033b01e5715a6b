package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"emberarena/internal/models"
)

const legendary = "mythology-legendary" // reward 100, five questions

func TestTrialRewardedAfterMinDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")

	sess, quiz, err := f.trials.Start(ctx, uid, legendary)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(quiz.Questions))
	}
	f.answerAll(t, uid, sess.ID, 9*time.Second, correctChoices(t, legendary, 1)...)

	res, err := f.trials.Complete(ctx, uid, sess.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !res.Rewarded || res.CorrectCount != 4 || res.EarnedEmbers != 80 {
		t.Fatalf("unexpected result %+v", res)
	}

	u := f.profile(t, uid)
	if u.Embers != models.StartingEmbers+80 {
		t.Errorf("embers = %d, want %d", u.Embers, models.StartingEmbers+80)
	}
	if u.Stats.QuizzesDone != 1 || u.Stats.TotalEmbersEarned != 80 || u.Stats.Accuracy != 80 {
		t.Errorf("unexpected stats %+v", u.Stats)
	}

	ledger, err := f.users.Ledger(ctx, uid)
	if err != nil || len(ledger) != 1 || ledger[0].Amount != 80 || ledger[0].Source != models.SourceTrial {
		t.Fatalf("ledger = %+v, %v", ledger, err)
	}
	history, err := f.users.TrialHistory(ctx, uid)
	if err != nil || len(history) != 1 {
		t.Fatalf("history = %+v, %v", history, err)
	}
	rank, err := f.leaderboard.Rank(ctx, uid)
	if err != nil || rank != 1 {
		t.Fatalf("rank = %d, %v", rank, err)
	}
}

func TestTrialTooFastEarnsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")

	sess, _, err := f.trials.Start(ctx, uid, legendary)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.answerAll(t, uid, sess.ID, 2*time.Second, correctChoices(t, legendary, 0)...)

	res, err := f.trials.Complete(ctx, uid, sess.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Rewarded || res.EarnedEmbers != 0 || res.CorrectCount != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
	u := f.profile(t, uid)
	if u.Embers != models.StartingEmbers || u.Stats.QuizzesDone != 0 {
		t.Fatalf("profile changed: embers=%d stats=%+v", u.Embers, u.Stats)
	}
	history, _ := f.users.TrialHistory(ctx, uid)
	if len(history) != 0 {
		t.Fatalf("expected no history, got %d", len(history))
	}
}

func TestAnswerAfterTimeLimitIsNoAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")

	sess, quiz, err := f.trials.Start(ctx, uid, legendary)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.advance(QuestionTimeLimit + time.Second)
	res, err := f.trials.Answer(ctx, uid, sess.ID, quiz.Questions[0].CorrectAnswer)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !res.TimedOut || res.Correct {
		t.Fatalf("expected timed out answer, got %+v", res)
	}
	if res.Remaining != 4 {
		t.Errorf("remaining = %d, want 4", res.Remaining)
	}
}

func TestAnswerValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	sess, _, err := f.trials.Start(ctx, alice, legendary)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := f.trials.Answer(ctx, alice, sess.ID, 4); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("out of range choice: got %v", err)
	}
	if _, err := f.trials.Answer(ctx, bob, sess.ID, 0); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("foreign session: got %v", err)
	}
	f.answerAll(t, alice, sess.ID, time.Second, 0, 0, 0, 0, 0)
	if _, err := f.trials.Answer(ctx, alice, sess.ID, 0); !errors.Is(err, ErrRoundComplete) {
		t.Errorf("sixth answer: got %v", err)
	}
	if _, _, err := f.trials.Start(ctx, alice, "missing"); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("unknown quiz: got %v", err)
	}
}

func TestCompleteClaimsSessionOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")

	sess, _, err := f.trials.Start(ctx, uid, legendary)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.advance(time.Minute)
	if _, err := f.trials.Complete(ctx, uid, sess.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := f.trials.Complete(ctx, uid, sess.ID); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("second Complete: got %v", err)
	}
}

func TestCompleteWithAnswersPadsMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")

	started := f.now
	f.advance(40 * time.Second)
	res, err := f.trials.CompleteWithAnswers(ctx, uid, legendary, correctChoices(t, legendary, 0)[:3], started)
	if err != nil {
		t.Fatalf("CompleteWithAnswers: %v", err)
	}
	if res.TotalQuestions != 5 || res.CorrectCount != 3 || res.EarnedEmbers != 60 {
		t.Fatalf("unexpected result %+v", res)
	}
}
