package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"emberarena/internal/models"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, db *DB, uids ...string) {
	t.Helper()
	for _, uid := range uids {
		u := models.NewUserProfile(uid, "user-"+uid, uid+"@example.com", "", t0)
		if err := db.CreateUser(context.Background(), u); err != nil {
			t.Fatalf("CreateUser(%s): %v", uid, err)
		}
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db, "a")
	dup := models.NewUserProfile("b", "other", "A@example.com", "", t0)
	if err := db.CreateUser(ctx, dup); !errors.Is(err, models.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestSearchUsersPrefixAndLimit(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db, "a", "b", "c")
	got, err := db.SearchUsers(ctx, "user-", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Username != "user-a" || got[1].Username != "user-b" {
		t.Fatalf("unexpected search result %+v", got)
	}
}

func TestApplyTrialIsAtomicUnderConcurrency(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db, "a")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := &models.TrialRecord{UserID: "a", QuizID: "q", Accuracy: 100, EarnedEmbers: 10, Valid: true}
			if _, err := db.ApplyTrial(ctx, rec, nil); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	u, _ := db.GetUser(ctx, "a")
	if u.Stats.QuizzesDone != 50 || u.Embers != models.StartingEmbers+500 || u.Stats.TotalEmbersEarned != 500 {
		t.Fatalf("lost updates: %+v", u.Stats)
	}
	recs, _ := db.ListTrialRecords(ctx, "a", 100)
	if len(recs) != 50 {
		t.Fatalf("expected 50 records, got %d", len(recs))
	}
}

func TestRecordScoreSettlesOnce(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db, "alice", "bob")
	d := &models.Duel{ID: "d1", ChallengerID: "alice", OpponentID: "bob", QuizID: "q", Status: models.DuelPending, Wager: 50, CreatedAt: t0}
	if err := db.CreateDuel(ctx, d); err != nil {
		t.Fatal(err)
	}
	if _, err := db.TransitionDuel(ctx, "d1", models.DuelPending, models.DuelActive); err != nil {
		t.Fatal(err)
	}

	if _, s, err := db.RecordScore(ctx, "d1", "alice", 4, models.TieFirstFinisher, t0); err != nil || s != nil {
		t.Fatalf("first score: settlement=%v err=%v", s, err)
	}
	got, s, err := db.RecordScore(ctx, "d1", "bob", 3, models.TieFirstFinisher, t0)
	if err != nil || s == nil {
		t.Fatalf("second score: settlement=%v err=%v", s, err)
	}
	if got.Status != models.DuelCompleted || got.WinnerID != "alice" {
		t.Fatalf("unexpected duel %+v", got)
	}
	if _, _, err := db.RecordScore(ctx, "d1", "bob", 5, models.TieFirstFinisher, t0); !errors.Is(err, models.ErrDuelNotActive) {
		t.Fatalf("expected ErrDuelNotActive, got %v", err)
	}

	alice, _ := db.GetUser(ctx, "alice")
	bob, _ := db.GetUser(ctx, "bob")
	if alice.Embers != models.StartingEmbers+100 || alice.Stats.Wins != 1 {
		t.Fatalf("alice = %d embers, %d wins", alice.Embers, alice.Stats.Wins)
	}
	if bob.Embers != models.StartingEmbers || bob.Stats.Losses != 1 {
		t.Fatalf("bob = %d embers, %d losses", bob.Embers, bob.Stats.Losses)
	}
	ledger, _ := db.ListLedger(ctx, "alice", 10)
	if len(ledger) != 1 || ledger[0].Amount != 100 || ledger[0].Source != models.SourceDuel {
		t.Fatalf("unexpected ledger %+v", ledger)
	}
}

func TestRecordScoreChecksPayeesBeforePaying(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db, "alice")
	d := &models.Duel{ID: "d1", ChallengerID: "alice", OpponentID: "ghost", QuizID: "q", Status: models.DuelActive, Wager: 30, CreatedAt: t0}
	if err := db.CreateDuel(ctx, d); err != nil {
		t.Fatal(err)
	}
	if _, _, err := db.RecordScore(ctx, "d1", "alice", 3, models.TieDraw, t0); err != nil {
		t.Fatal(err)
	}
	if _, _, err := db.RecordScore(ctx, "d1", "ghost", 3, models.TieDraw, t0); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	alice, _ := db.GetUser(ctx, "alice")
	if alice.Embers != models.StartingEmbers {
		t.Fatalf("alice paid before settlement failed: %d embers", alice.Embers)
	}
	if ledger, _ := db.ListLedger(ctx, "alice", 10); len(ledger) != 0 {
		t.Fatalf("unexpected ledger %+v", ledger)
	}
	got, _ := db.GetDuel(ctx, "d1")
	if got.Status != models.DuelActive || got.OpponentScore != nil {
		t.Fatalf("duel changed after failed settlement: %+v", got)
	}
}

func TestTransitionDuelRequiresFromStatus(t *testing.T) {
	db := New()
	ctx := context.Background()
	d := &models.Duel{ID: "d1", ChallengerID: "a", OpponentID: "b", Status: models.DuelPending, CreatedAt: t0}
	_ = db.CreateDuel(ctx, d)
	if _, err := db.TransitionDuel(ctx, "d1", models.DuelPending, models.DuelDeclined); err != nil {
		t.Fatal(err)
	}
	if _, err := db.TransitionDuel(ctx, "d1", models.DuelPending, models.DuelActive); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := db.GetDuel(ctx, "missing"); !errors.Is(err, models.ErrDuelNotFound) {
		t.Fatalf("expected ErrDuelNotFound, got %v", err)
	}
}

func TestEdgeLifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()
	if err := db.CreateEdge(ctx, models.NewFriendRequest("bob", "alice", t0)); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateEdge(ctx, models.NewFriendRequest("alice", "bob", t0)); !errors.Is(err, models.ErrEdgeExists) {
		t.Fatalf("expected ErrEdgeExists for reverse direction, got %v", err)
	}
	if err := db.ConfirmEdge(ctx, "alice", "bob", t0); err != nil {
		t.Fatal(err)
	}
	if err := db.ConfirmEdge(ctx, "alice", "bob", t0); !errors.Is(err, models.ErrEdgeNotFound) {
		t.Fatalf("second confirm should find no pending edge, got %v", err)
	}
	f, err := db.GetEdge(ctx, "bob", "alice")
	if err != nil || f.Status != models.FriendshipConfirmed || f.RespondedAt == nil {
		t.Fatalf("edge = %+v, %v", f, err)
	}
	if err := db.DeleteEdge(ctx, "alice", "bob", models.FriendshipPending); !errors.Is(err, models.ErrEdgeNotFound) {
		t.Fatalf("expected status-guarded delete to fail, got %v", err)
	}
	if err := db.DeleteEdge(ctx, "bob", "alice", models.FriendshipConfirmed); err != nil {
		t.Fatal(err)
	}
	if edges, _ := db.ListEdges(ctx, "alice"); len(edges) != 0 {
		t.Fatalf("expected no edges, got %+v", edges)
	}
}

func TestPurchaseAndEquip(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db, "a")
	_ = db.SetProgress(ctx, "a", 100, 0)

	scholar := models.ShopItem{ID: "title-scholar", Name: "The Scholar", Category: models.CategoryTitle, Cost: 30}
	sage := models.ShopItem{ID: "title-sage", Name: "The Sage", Category: models.CategoryTitle, Cost: 60}
	dragon := models.ShopItem{ID: "avatar-dragon", Name: "Dragon", Category: models.CategoryAvatar, Cost: 500}

	u, err := db.Purchase(ctx, "a", scholar, nil, t0)
	if err != nil || u.Embers != 70 {
		t.Fatalf("purchase: %+v, %v", u, err)
	}
	if _, err := db.Purchase(ctx, "a", scholar, nil, t0); !errors.Is(err, models.ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
	if _, err := db.Purchase(ctx, "a", dragon, nil, t0); !errors.Is(err, models.ErrInsufficientEmbers) {
		t.Fatalf("expected ErrInsufficientEmbers, got %v", err)
	}
	if _, err := db.Purchase(ctx, "a", sage, nil, t0.Add(time.Second)); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Equip(ctx, "a", dragon); !errors.Is(err, models.ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
	if _, err := db.Equip(ctx, "a", scholar); err != nil {
		t.Fatal(err)
	}
	u, err = db.Equip(ctx, "a", sage)
	if err != nil || u.Title != "The Sage" {
		t.Fatalf("equip: %+v, %v", u, err)
	}
	inv, _ := db.ListInventory(ctx, "a")
	if len(inv) != 2 || inv[0].Equipped || !inv[1].Equipped {
		t.Fatalf("only the sage title should be equipped: %+v", inv)
	}
}
