package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"emberarena/internal/catalog"
	"emberarena/internal/models"
	"emberarena/internal/store"
)

// OwnedItem is an inventory entry resolved against the catalog
type OwnedItem struct {
	models.ShopItem
	OwnedSince time.Time `json:"ownedSince"`
	Equipped   bool      `json:"equipped"`
}

// ShopService handles the market and the player's inventory.
type ShopService struct {
	catalog     *catalog.Catalog
	users       store.UserStore
	inventory   store.InventoryStore
	userService *UserService
	now         func() time.Time
}

func NewShopService(c *catalog.Catalog, users store.UserStore, inventory store.InventoryStore, userService *UserService) *ShopService {
	return &ShopService{
		catalog:     c,
		users:       users,
		inventory:   inventory,
		userService: userService,
		now:         time.Now,
	}
}

func (s *ShopService) Items(category string) []models.ShopItem {
	return s.catalog.ItemsByCategory(category)
}

// Purchase buys an item. The store performs the balance check and the
// deduction atomically.
func (s *ShopService) Purchase(ctx context.Context, uid, itemID string) (*models.UserProfile, error) {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	u, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u.Level < item.UnlockLevel {
		return nil, ErrLevelTooLow
	}

	now := s.now().UTC()
	ledger := &models.LedgerEntry{
		ID:        uuid.NewString(),
		UserID:    uid,
		Kind:      models.LedgerSpend,
		Amount:    item.Cost,
		Source:    models.SourceShop,
		RefID:     item.ID,
		CreatedAt: now,
	}
	u, err = s.inventory.Purchase(ctx, uid, item, ledger, now)
	if err != nil {
		return nil, err
	}
	s.userService.Refresh(ctx, u)
	return u, nil
}

func (s *ShopService) Inventory(ctx context.Context, uid string) ([]OwnedItem, error) {
	entries, err := s.inventory.ListInventory(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]OwnedItem, 0, len(entries))
	for _, e := range entries {
		item, ok := s.catalog.Item(e.ItemID)
		if !ok {
			// retired from the catalog
			continue
		}
		out = append(out, OwnedItem{ShopItem: item, OwnedSince: e.OwnedSince, Equipped: e.Equipped})
	}
	return out, nil
}

// Equip applies an owned theme, avatar or title. Starter cosmetics are always
// owned. Boosts are not equippable.
func (s *ShopService) Equip(ctx context.Context, uid, itemID string) (*models.UserProfile, error) {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		item, ok = models.StarterItem(itemID)
	}
	if !ok {
		return nil, ErrItemNotFound
	}
	if item.Category == models.CategoryBoost {
		return nil, models.ErrNotEquippable
	}
	u, err := s.inventory.Equip(ctx, uid, item)
	if err != nil {
		return nil, err
	}
	s.userService.Refresh(ctx, u)
	return u, nil
}
