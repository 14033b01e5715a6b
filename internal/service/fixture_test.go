package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"emberarena/internal/catalog"
	"emberarena/internal/memstore"
	"emberarena/internal/models"
	"emberarena/internal/repository"
	"emberarena/internal/session"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// fixture wires every service over memstore and a miniredis-backed Redis.
type fixture struct {
	db     *memstore.DB
	mr     *miniredis.Miniredis
	rdb    *redis.Client
	now    time.Time
	mailer *captureMailer

	users       *UserService
	trials      *TrialService
	duels       *DuelService
	friends     *FriendService
	shop        *ShopService
	leaderboard *LeaderboardService
	admin       *AdminService
	auth        *AuthService
}

type captureMailer struct {
	email, token string
}

func (m *captureMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.email, m.token = email, token
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	f := &fixture{db: memstore.New(), mr: mr, rdb: rdb, now: t0, mailer: &captureMailer{}}
	clock := func() time.Time { return f.now }
	c := catalog.Default()
	lb := repository.NewLeaderboardRepository(rdb)

	f.users = NewUserService(f.db, f.db, repository.NewProfileCacheRepository(rdb), lb)
	f.trials = NewTrialService(c, f.db, repository.NewPlaySessionRepository(rdb), f.users)
	f.trials.now = clock
	f.duels = NewDuelService(c, f.db, f.db, f.db, f.trials, f.users, models.TieFirstFinisher)
	f.duels.now = clock
	f.friends = NewFriendService(f.db, f.db)
	f.friends.now = clock
	f.shop = NewShopService(c, f.db, f.db, f.users)
	f.shop.now = clock
	f.leaderboard = NewLeaderboardService(f.db, f.db, lb)
	f.admin = NewAdminService(f.db, f.db, lb)
	f.auth = NewAuthService(
		f.db,
		repository.NewAuthSessionRepository(rdb),
		repository.NewResetTokenRepository(rdb),
		session.NewIssuer("test-secret", time.Hour),
		f.mailer,
		f.users,
	)
	f.auth.cost = bcrypt.MinCost
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// user creates an account directly in the store and returns its uid.
func (f *fixture) user(t *testing.T, name string) string {
	t.Helper()
	u := models.NewUserProfile("uid-"+name, name, name+"@example.com", "", t0)
	if err := f.db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", name, err)
	}
	return u.UID
}

func (f *fixture) profile(t *testing.T, uid string) *models.UserProfile {
	t.Helper()
	u, err := f.db.GetUser(context.Background(), uid)
	if err != nil {
		t.Fatalf("GetUser(%s): %v", uid, err)
	}
	return u
}

// answerAll submits choices in order, advancing the clock by step before each.
func (f *fixture) answerAll(t *testing.T, uid, sessionID string, step time.Duration, choices ...int) {
	t.Helper()
	for i, choice := range choices {
		f.advance(step)
		if _, err := f.trials.Answer(context.Background(), uid, sessionID, choice); err != nil {
			t.Fatalf("Answer #%d: %v", i, err)
		}
	}
}

func (f *fixture) befriend(t *testing.T, a, b string) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.friends.SendRequest(ctx, a, b); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := f.friends.Accept(ctx, b, a); err != nil {
		t.Fatalf("Accept: %v", err)
	}
}

// correctChoices returns the answer key for quizID with the first wrong answers missed.
func correctChoices(t *testing.T, quizID string, wrong int) []int {
	t.Helper()
	quiz, ok := catalog.Default().Quiz(quizID)
	if !ok {
		t.Fatalf("quiz %s not in catalog", quizID)
	}
	out := make([]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		out[i] = q.CorrectAnswer
		if i < wrong {
			out[i] = (q.CorrectAnswer + 1) % len(q.Choices)
		}
	}
	return out
}
