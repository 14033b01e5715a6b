package service

import (
	"context"
	"testing"
	"time"

	"emberarena/internal/models"
)

// earn runs a rewarded legendary trial with the given number of wrong answers.
func earn(t *testing.T, f *fixture, uid string, wrong int) {
	t.Helper()
	ctx := context.Background()
	sess, _, err := f.trials.Start(ctx, uid, legendary)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.answerAll(t, uid, sess.ID, 10*time.Second, correctChoices(t, legendary, wrong)...)
	if _, err := f.trials.Complete(ctx, uid, sess.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestGlobalLeaderboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	earn(t, f, alice, 2) // 60
	earn(t, f, bob, 0)   // 100
	earn(t, f, carol, 1) // 80

	hidden := models.Privacy{AllowFriendRequests: true, ShowLoreToFriends: true, PublicLeaderboard: false}
	if _, err := f.users.UpdatePrivacy(ctx, carol, hidden); err != nil {
		t.Fatal(err)
	}

	got, err := f.leaderboard.Global(ctx, 0)
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if len(got) != 2 || got[0].UserID != bob || got[1].UserID != alice {
		t.Fatalf("unexpected board %+v", got)
	}
	if got[0].Rank != 1 || got[0].TotalEmbersEarned != 100 || got[0].Username != "bob" {
		t.Errorf("unexpected top row %+v", got[0])
	}
	if rank, _ := f.leaderboard.Rank(ctx, carol); rank != 0 {
		t.Errorf("opted-out rank = %d", rank)
	}
}

func TestGlobalLeaderboardFallsBackToStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	earn(t, f, alice, 0)
	earn(t, f, bob, 1)

	// a flushed Redis is rebuilt from the store
	f.mr.FlushAll()
	got, err := f.leaderboard.Global(ctx, 10)
	if err != nil || len(got) != 2 || got[0].UserID != alice {
		t.Fatalf("Global after flush = %+v, %v", got, err)
	}
	if rank, err := f.leaderboard.Rank(ctx, bob); err != nil || rank != 2 {
		t.Fatalf("rank after backfill = %d, %v", rank, err)
	}

	// an unreachable Redis still serves from the store
	f.mr.Close()
	got, err = f.leaderboard.Global(ctx, 10)
	if err != nil || len(got) != 2 {
		t.Fatalf("Global with Redis down = %+v, %v", got, err)
	}
}

func TestGlobalLeaderboardRebuildsPartialSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rich, poor := f.user(t, "rich"), f.user(t, "poor")
	earn(t, f, rich, 0)
	earn(t, f, poor, 3)

	// only poor plays again after the flush
	f.mr.FlushAll()
	earn(t, f, poor, 3)
	got, err := f.leaderboard.Global(ctx, 10)
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if len(got) != 2 || got[0].UserID != rich || got[1].UserID != poor {
		t.Fatalf("board after partial refresh = %+v", got)
	}
	if rank, err := f.leaderboard.Rank(ctx, rich); err != nil || rank != 1 {
		t.Fatalf("rich rank = %d, %v", rank, err)
	}
}

func TestWarmLoadsStoreRanking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	earn(t, f, alice, 1)
	earn(t, f, bob, 0)

	f.mr.FlushAll()
	if err := f.leaderboard.Warm(ctx); err != nil {
		t.Fatalf("Warm: %v", err)
	}
	if rank, _ := f.leaderboard.Rank(ctx, bob); rank != 1 {
		t.Errorf("bob rank = %d", rank)
	}
	if rank, _ := f.leaderboard.Rank(ctx, alice); rank != 2 {
		t.Errorf("alice rank = %d", rank)
	}
}

func TestFriendsLeaderboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	f.befriend(t, alice, bob)
	earn(t, f, bob, 0)
	earn(t, f, carol, 0)

	got, err := f.leaderboard.Friends(ctx, alice)
	if err != nil {
		t.Fatalf("Friends: %v", err)
	}
	if len(got) != 2 || got[0].UserID != bob || got[1].UserID != alice {
		t.Fatalf("unexpected board %+v", got)
	}
}
