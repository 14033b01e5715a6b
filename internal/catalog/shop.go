package catalog

import "emberarena/internal/models"

// SeededShopItems returns the static market catalog
func SeededShopItems() []models.ShopItem {
	return []models.ShopItem{
		// Themes
		{ID: "theme-frost", Name: "Frost Theme", Category: models.CategoryTheme, Cost: 100, Rarity: "rare", Description: "A cool blue theme with icy accents and frost particles", UnlockLevel: 5},
		{ID: "theme-infernal", Name: "Infernal Theme", Category: models.CategoryTheme, Cost: 150, Rarity: "epic", Description: "A fiery red theme with blazing effects and hellfire ambiance", UnlockLevel: 10},
		{ID: "theme-celestial", Name: "Celestial Theme", Category: models.CategoryTheme, Cost: 200, Rarity: "legendary", Description: "A divine golden theme with heavenly light and star particles", UnlockLevel: 15},

		// Avatars
		{ID: "avatar-knight", Name: "Knight Avatar", Category: models.CategoryAvatar, Cost: 50, Rarity: "common", Description: "A noble knight in shining armor"},
		{ID: "avatar-assassin", Name: "Assassin Avatar", Category: models.CategoryAvatar, Cost: 75, Rarity: "rare", Description: "A stealthy shadow warrior", UnlockLevel: 5},
		{ID: "avatar-dragon", Name: "Dragon Avatar", Category: models.CategoryAvatar, Cost: 150, Rarity: "legendary", Description: "Transform into a mighty dragon", UnlockLevel: 20},

		// Titles
		{ID: "title-scholar", Name: "Scholar", Category: models.CategoryTitle, Cost: 30, Rarity: "common", Description: "Display your dedication to knowledge"},
		{ID: "title-champion", Name: "Champion", Category: models.CategoryTitle, Cost: 60, Rarity: "rare", Description: "Show your prowess in battle", UnlockLevel: 8},
		{ID: "title-legend", Name: "Legend", Category: models.CategoryTitle, Cost: 120, Rarity: "epic", Description: "Become a living legend", UnlockLevel: 15},
		{ID: "title-immortal", Name: "Immortal", Category: models.CategoryTitle, Cost: 200, Rarity: "legendary", Description: "Achieve immortality in the arena", UnlockLevel: 25},

		// Boosts
		{ID: "boost-xp-2x", Name: "2x XP Boost", Category: models.CategoryBoost, Cost: 40, Rarity: "common", Description: "Double XP for 1 hour"},
		{ID: "boost-ember-2x", Name: "2x Ember Boost", Category: models.CategoryBoost, Cost: 50, Rarity: "rare", Description: "Double ember rewards for 1 hour"},
		{ID: "boost-combo", Name: "Mega Boost", Category: models.CategoryBoost, Cost: 80, Rarity: "epic", Description: "2x XP and Embers for 2 hours"},
	}
}
