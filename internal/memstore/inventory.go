package memstore

import (
	"context"
	"sort"
	"time"

	"emberarena/internal/models"
)

func (db *DB) Purchase(ctx context.Context, uid string, item models.ShopItem, ledger *models.LedgerEntry, now time.Time) (*models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[uid]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	if _, owned := db.inventory[uid][item.ID]; owned {
		return nil, models.ErrAlreadyOwned
	}
	if u.Embers < item.Cost {
		return nil, models.ErrInsufficientEmbers
	}
	u.Embers -= item.Cost
	db.users[uid] = u

	if db.inventory[uid] == nil {
		db.inventory[uid] = make(map[string]models.InventoryEntry)
	}
	db.inventory[uid][item.ID] = models.InventoryEntry{
		UserID:     uid,
		ItemID:     item.ID,
		Category:   item.Category,
		OwnedSince: now.UTC(),
	}
	if ledger != nil {
		db.ledger[uid] = append(db.ledger[uid], *ledger)
	}
	return &u, nil
}

func (db *DB) ListInventory(ctx context.Context, uid string) ([]models.InventoryEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]models.InventoryEntry, 0, len(db.inventory[uid]))
	for _, e := range db.inventory[uid] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OwnedSince.Equal(out[j].OwnedSince) {
			return out[i].OwnedSince.Before(out[j].OwnedSince)
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

func (db *DB) Equip(ctx context.Context, uid string, item models.ShopItem) (*models.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[uid]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	owned := db.inventory[uid]
	if _, ok := owned[item.ID]; !ok && !models.IsStarterItem(item.ID) {
		return nil, models.ErrNotOwned
	}
	if err := u.Equip(item); err != nil {
		return nil, err
	}
	for id, e := range owned {
		if e.Category == item.Category {
			e.Equipped = id == item.ID
			owned[id] = e
		}
	}
	db.users[uid] = u
	return &u, nil
}
