package service

import (
	"context"
	"errors"
	"testing"

	"emberarena/internal/models"
)

func TestPurchase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")

	tests := []struct {
		name string
		item string
		want error
	}{
		{"unknown item", "avatar-missing", ErrItemNotFound},
		{"level gate", "theme-frost", ErrLevelTooLow},
		{"not enough embers", "avatar-knight", models.ErrInsufficientEmbers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.shop.Purchase(ctx, uid, tt.item); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
	if got := f.profile(t, uid).Embers; got != models.StartingEmbers {
		t.Fatalf("failed purchases moved embers: %d", got)
	}

	if err := f.db.SetProgress(ctx, uid, 100, 0); err != nil {
		t.Fatal(err)
	}
	u, err := f.shop.Purchase(ctx, uid, "avatar-knight")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if u.Embers != 50 {
		t.Errorf("embers = %d, want 50", u.Embers)
	}
	if _, err := f.shop.Purchase(ctx, uid, "avatar-knight"); !errors.Is(err, models.ErrAlreadyOwned) {
		t.Errorf("second purchase: got %v", err)
	}

	ledger, err := f.users.Ledger(ctx, uid)
	if err != nil || len(ledger) != 1 || ledger[0].Kind != models.LedgerSpend || ledger[0].Amount != 50 {
		t.Fatalf("ledger = %+v, %v", ledger, err)
	}
	inv, err := f.shop.Inventory(ctx, uid)
	if err != nil || len(inv) != 1 || inv[0].ID != "avatar-knight" {
		t.Fatalf("inventory = %+v, %v", inv, err)
	}
}

func TestEquip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")
	if err := f.db.SetProgress(ctx, uid, 500, 10); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"avatar-knight", "title-scholar", "boost-xp-2x"} {
		if _, err := f.shop.Purchase(ctx, uid, id); err != nil {
			t.Fatalf("Purchase(%s): %v", id, err)
		}
	}

	if _, err := f.shop.Equip(ctx, uid, "title-champion"); !errors.Is(err, models.ErrNotOwned) {
		t.Errorf("unowned title: got %v", err)
	}
	if _, err := f.shop.Equip(ctx, uid, "boost-xp-2x"); !errors.Is(err, models.ErrNotEquippable) {
		t.Errorf("boost: got %v", err)
	}

	u, err := f.shop.Equip(ctx, uid, "avatar-knight")
	if err != nil || u.Avatar != "knight" {
		t.Fatalf("Equip avatar = %+v, %v", u, err)
	}
	u, err = f.shop.Equip(ctx, uid, "title-scholar")
	if err != nil || u.Title != "Scholar" {
		t.Fatalf("Equip title = %+v, %v", u, err)
	}

	inv, err := f.shop.Inventory(ctx, uid)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range inv {
		if want := it.Category != models.CategoryBoost; it.Equipped != want {
			t.Errorf("%s equipped = %v, want %v", it.ID, it.Equipped, want)
		}
	}
	me, err := f.users.Me(ctx, uid)
	if err != nil || me.Avatar != "knight" {
		t.Errorf("cached profile = %+v, %v", me, err)
	}
}

func TestEquipStarterCosmetics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.user(t, "alice")
	if err := f.db.SetProgress(ctx, uid, 500, 10); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"theme-frost", "avatar-knight"} {
		if _, err := f.shop.Purchase(ctx, uid, id); err != nil {
			t.Fatalf("Purchase(%s): %v", id, err)
		}
		if _, err := f.shop.Equip(ctx, uid, id); err != nil {
			t.Fatalf("Equip(%s): %v", id, err)
		}
	}

	u, err := f.shop.Equip(ctx, uid, "theme-"+models.DefaultTheme)
	if err != nil || u.EquippedTheme != models.DefaultTheme {
		t.Fatalf("Equip default theme = %+v, %v", u, err)
	}
	u, err = f.shop.Equip(ctx, uid, "avatar-mage")
	if err != nil || u.Avatar != "mage" {
		t.Fatalf("Equip starter avatar = %+v, %v", u, err)
	}
	u, err = f.shop.Equip(ctx, uid, "title-novice")
	if err != nil || u.Title != models.DefaultTitle {
		t.Fatalf("Equip default title = %+v, %v", u, err)
	}
	if _, err := f.shop.Purchase(ctx, uid, "avatar-mage"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("starter avatar purchase: got %v", err)
	}

	inv, err := f.shop.Inventory(ctx, uid)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range inv {
		if it.Equipped {
			t.Errorf("%s still equipped", it.ID)
		}
	}
}

func TestItemsByCategory(t *testing.T) {
	f := newFixture(t)
	for _, it := range f.shop.Items(models.CategoryTitle) {
		if it.Category != models.CategoryTitle {
			t.Fatalf("unexpected item %s", it.ID)
		}
	}
	if len(f.shop.Items("")) == 0 {
		t.Fatal("expected the full catalog")
	}
}
