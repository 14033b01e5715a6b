package session

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, sid, err := iss.Issue("u1", "player")
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := iss.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.UserID != "u1" || ctx.SessionID != sid || ctx.Role != "player" {
		t.Fatalf("unexpected context %+v", ctx)
	}
}

func TestParseRejectsWrongSecretAndExpiry(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, _, _ := iss.Issue("u1", "player")

	if _, err := NewIssuer("other", time.Hour).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: %v", err)
	}

	later := NewIssuer("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := later.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: %v", err)
	}

	if _, err := iss.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: %v", err)
	}
}

func TestExtractBearer(t *testing.T) {
	cases := map[string]string{
		"Bearer abc": "abc",
		"bearer abc": "",
		"abc":        "",
		"":           "",
	}
	for in, want := range cases {
		if got := ExtractBearer(in); got != want {
			t.Errorf("ExtractBearer(%q) = %q, want %q", in, got, want)
		}
	}
}
