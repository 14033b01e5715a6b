package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"emberarena/internal/models"
)

func playRound(t *testing.T, f *fixture, uid, duelID string, wrong int) *RoundResult {
	t.Helper()
	ctx := context.Background()
	sess, quiz, err := f.duels.StartRound(ctx, uid, duelID)
	if err != nil {
		t.Fatalf("StartRound(%s): %v", uid, err)
	}
	f.answerAll(t, uid, sess.ID, 5*time.Second, correctChoices(t, quiz.ID, wrong)...)
	res, err := f.duels.CompleteRound(ctx, uid, sess.ID)
	if err != nil {
		t.Fatalf("CompleteRound(%s): %v", uid, err)
	}
	return res
}

func TestDuelSettlesOnceForWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	f.befriend(t, alice, bob)
	if err := f.db.SetProgress(ctx, alice, 100, 0); err != nil {
		t.Fatal(err)
	}

	d, err := f.duels.Create(ctx, alice, bob, legendary, 50)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Status != models.DuelPending {
		t.Fatalf("status = %s", d.Status)
	}
	if _, err := f.duels.Accept(ctx, bob, d.ID); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	first := playRound(t, f, alice, d.ID, 1)
	if first.Settlement != nil || first.Score != 4 {
		t.Fatalf("first round: %+v", first)
	}
	second := playRound(t, f, bob, d.ID, 2)
	if second.Settlement == nil || second.Settlement.WinnerID != alice {
		t.Fatalf("second round: %+v", second)
	}
	if second.Duel.Status != models.DuelCompleted {
		t.Fatalf("status = %s", second.Duel.Status)
	}

	if got := f.profile(t, alice); got.Embers != 200 || got.Stats.Wins != 1 {
		t.Errorf("alice: embers=%d wins=%d", got.Embers, got.Stats.Wins)
	}
	if got := f.profile(t, bob); got.Embers != models.StartingEmbers || got.Stats.Losses != 1 {
		t.Errorf("bob: embers=%d losses=%d", got.Embers, got.Stats.Losses)
	}

	if _, _, err := f.duels.StartRound(ctx, alice, d.ID); !errors.Is(err, models.ErrDuelNotActive) {
		t.Errorf("StartRound after completion: got %v", err)
	}
	// the settled profile replaces any cached copy
	me, err := f.users.Me(ctx, alice)
	if err != nil || me.Embers != 200 {
		t.Errorf("Me = %+v, %v", me, err)
	}
}

func TestDuelRoundCannotBeReplayed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	f.befriend(t, alice, bob)

	d, err := f.duels.Create(ctx, alice, bob, legendary, 10)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.duels.Accept(ctx, bob, d.ID); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	sess, _, err := f.duels.StartRound(ctx, alice, d.ID)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := f.trials.Complete(ctx, alice, sess.ID); !errors.Is(err, ErrWrongMode) {
		t.Errorf("trial Complete on duel session: got %v", err)
	}
	if _, err := f.duels.CompleteRound(ctx, alice, sess.ID); err != nil {
		t.Fatalf("CompleteRound: %v", err)
	}
	if _, err := f.duels.CompleteRound(ctx, alice, sess.ID); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("replayed session: got %v", err)
	}
	if _, _, err := f.duels.StartRound(ctx, alice, d.ID); !errors.Is(err, models.ErrAlreadyScored) {
		t.Errorf("second round: got %v", err)
	}
}

func TestCreateDuelValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	f.befriend(t, alice, bob)
	if _, err := f.friends.SendRequest(ctx, alice, carol); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		opponent string
		quiz     string
		wager    int64
		want     error
	}{
		{"self", alice, legendary, 10, ErrSelfChallenge},
		{"unknown quiz", bob, "missing", 10, ErrQuizNotFound},
		{"zero wager", bob, legendary, 0, ErrInvalidWager},
		{"unknown opponent", "uid-nobody", legendary, 10, models.ErrUserNotFound},
		{"pending friend", carol, legendary, 10, ErrNotFriends},
		{"over balance", bob, legendary, models.StartingEmbers + 1, models.ErrInsufficientEmbers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.duels.Create(ctx, alice, tt.opponent, tt.quiz, tt.wager); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDuelAcceptAndDecline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	f.befriend(t, alice, bob)

	d, err := f.duels.Create(ctx, alice, bob, legendary, 5)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.duels.Accept(ctx, alice, d.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("challenger accept: got %v", err)
	}
	if _, err := f.duels.Decline(ctx, carol, d.ID); !errors.Is(err, models.ErrDuelNotFound) {
		t.Errorf("outsider decline: got %v", err)
	}
	if _, _, err := f.duels.StartRound(ctx, alice, d.ID); !errors.Is(err, models.ErrDuelNotActive) {
		t.Errorf("round on pending duel: got %v", err)
	}

	declined, err := f.duels.Decline(ctx, bob, d.ID)
	if err != nil || declined.Status != models.DuelDeclined {
		t.Fatalf("Decline = %+v, %v", declined, err)
	}
	if _, err := f.duels.Accept(ctx, bob, d.ID); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("accept after decline: got %v", err)
	}

	list, err := f.duels.List(ctx, alice)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %+v, %v", list, err)
	}
}

func TestDuelTieUnderDrawRule(t *testing.T) {
	f := newFixture(t)
	f.duels.tie = models.TieDraw
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	f.befriend(t, alice, bob)

	d, err := f.duels.Create(ctx, alice, bob, legendary, 10)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.duels.Accept(ctx, bob, d.ID); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	playRound(t, f, alice, d.ID, 2)
	res := playRound(t, f, bob, d.ID, 2)
	if res.Settlement == nil || res.Settlement.WinnerID != "" {
		t.Fatalf("expected a draw, got %+v", res.Settlement)
	}
	for _, uid := range []string{alice, bob} {
		if got := f.profile(t, uid).Embers; got != models.StartingEmbers+10 {
			t.Errorf("%s embers = %d", uid, got)
		}
	}
}
