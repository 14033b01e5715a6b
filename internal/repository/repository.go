// Package repository implements the store contracts on MySQL (profiles, duels,
// friendships, inventory, history) and Redis (leaderboard, caches, sessions).
package repository

import "emberarena/internal/store"

var (
	_ store.UserStore        = (*UserRepository)(nil)
	_ store.DuelStore        = (*DuelRepository)(nil)
	_ store.FriendStore      = (*FriendshipRepository)(nil)
	_ store.InventoryStore   = (*InventoryRepository)(nil)
	_ store.HistoryStore     = (*HistoryRepository)(nil)
	_ store.Leaderboard      = (*LeaderboardRepository)(nil)
	_ store.ProfileCache     = (*ProfileCacheRepository)(nil)
	_ store.PlaySessionStore = (*PlaySessionRepository)(nil)
	_ store.AuthSessionStore = (*AuthSessionRepository)(nil)
	_ store.ResetTokenStore  = (*ResetTokenRepository)(nil)
)
