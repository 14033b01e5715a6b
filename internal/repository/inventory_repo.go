package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"emberarena/internal/models"
)

const inventoryColumns = `user_id, item_id, category, owned_since, equipped`

// InventoryRepository handles purchases and equipped cosmetics
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func owns(ctx context.Context, q querier, uid, itemID string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory WHERE user_id = ? AND item_id = ?`, uid, itemID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Purchase deducts the cost with a conditional update so the balance cannot go
// negative, then records ownership and the ledger entry in the same transaction.
func (r *InventoryRepository) Purchase(ctx context.Context, uid string, item models.ShopItem, ledger *models.LedgerEntry, now time.Time) (*models.UserProfile, error) {
	var out *models.UserProfile
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := getUser(ctx, tx, uid, true); err != nil {
			return err
		}
		owned, err := owns(ctx, tx, uid, item.ID)
		if err != nil {
			return err
		}
		if owned {
			return models.ErrAlreadyOwned
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET embers = embers - ? WHERE uid = ? AND embers >= ?`, item.Cost, uid, item.Cost)
		if err != nil {
			return fmt.Errorf("deduct embers: %w", err)
		}
		if err := expectOneRow(res, models.ErrInsufficientEmbers); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (`+inventoryColumns+`) VALUES (?, ?, ?, ?, FALSE)`,
			uid, item.ID, item.Category, now.UTC()); err != nil {
			if isDuplicate(err) {
				return models.ErrAlreadyOwned
			}
			return fmt.Errorf("insert inventory: %w", err)
		}
		if ledger != nil {
			if err := insertLedger(ctx, tx, ledger); err != nil {
				return err
			}
		}
		out, err = getUser(ctx, tx, uid, false)
		return err
	})
	return out, err
}

func (r *InventoryRepository) ListInventory(ctx context.Context, uid string) ([]models.InventoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE user_id = ? ORDER BY owned_since, item_id`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.InventoryEntry{}
	for rows.Next() {
		var e models.InventoryEntry
		if err := rows.Scan(&e.UserID, &e.ItemID, &e.Category, &e.OwnedSince, &e.Equipped); err != nil {
			return nil, err
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Equip writes the cosmetic onto the profile and moves the equipped flag within the item's category.
func (r *InventoryRepository) Equip(ctx context.Context, uid string, item models.ShopItem) (*models.UserProfile, error) {
	var out *models.UserProfile
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		u, err := getUser(ctx, tx, uid, true)
		if err != nil {
			return err
		}
		if !models.IsStarterItem(item.ID) {
			owned, err := owns(ctx, tx, uid, item.ID)
			if err != nil {
				return err
			}
			if !owned {
				return models.ErrNotOwned
			}
		}
		if err := u.Equip(item); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET avatar = ?, title = ?, equipped_theme = ? WHERE uid = ?`,
			u.Avatar, u.Title, u.EquippedTheme, uid); err != nil {
			return fmt.Errorf("update cosmetics: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE inventory SET equipped = (item_id = ?) WHERE user_id = ? AND category = ?`,
			item.ID, uid, item.Category); err != nil {
			return fmt.Errorf("update equipped flag: %w", err)
		}
		out = u
		return nil
	})
	return out, err
}
