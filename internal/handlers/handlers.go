package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"emberarena/internal/service"
)

// Handlers contains the HTTP handlers for every API area
type Handlers struct {
	userService        *service.UserService
	trialService       *service.TrialService
	duelService        *service.DuelService
	friendService      *service.FriendService
	shopService        *service.ShopService
	leaderboardService *service.LeaderboardService
	adminService       *service.AdminService
	authService        *service.AuthService
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	userService *service.UserService,
	trialService *service.TrialService,
	duelService *service.DuelService,
	friendService *service.FriendService,
	shopService *service.ShopService,
	leaderboardService *service.LeaderboardService,
	adminService *service.AdminService,
	authService *service.AuthService,
) *Handlers {
	return &Handlers{
		userService:        userService,
		trialService:       trialService,
		duelService:        duelService,
		friendService:      friendService,
		shopService:        shopService,
		leaderboardService: leaderboardService,
		adminService:       adminService,
		authService:        authService,
	}
}

// Register mounts the /v1 routes. The public auth routes come first; every
// later route runs behind RequireAuth, and limit runs after it so signed-in
// callers are limited per user.
func (h *Handlers) Register(app fiber.Router, limit fiber.Handler) {
	v1 := app.Group("/v1")

	v1.Post("/auth/signup", limit, h.HandleSignUp)
	v1.Post("/auth/signin", limit, h.HandleSignIn)
	v1.Post("/auth/reset", limit, h.HandleRequestReset)
	v1.Post("/auth/reset/confirm", limit, h.HandleConfirmReset)

	api := v1.Group("", RequireAuth(h.authService), limit)
	api.Post("/auth/signout", h.HandleSignOut)

	api.Get("/me", h.HandleMe)
	api.Put("/me/privacy", h.HandleUpdatePrivacy)
	api.Get("/me/trials", h.HandleTrialHistory)
	api.Get("/me/ledger", h.HandleLedger)
	api.Get("/users/search", h.HandleSearchUsers)
	api.Get("/users/:uid", h.HandleGetUser)

	api.Get("/trials", h.HandleListTrials)
	api.Post("/trials/:quizId/start", h.HandleStartTrial)
	api.Post("/trials/sessions/:id/complete", h.HandleCompleteTrial)
	api.Post("/sessions/:id/answer", h.HandleAnswer)

	api.Get("/duels", h.HandleListDuels)
	api.Post("/duels", h.HandleCreateDuel)
	api.Post("/duels/sessions/:id/complete", h.HandleCompleteRound)
	api.Get("/duels/:id", h.HandleGetDuel)
	api.Post("/duels/:id/accept", h.HandleAcceptDuel)
	api.Post("/duels/:id/decline", h.HandleDeclineDuel)
	api.Post("/duels/:id/start", h.HandleStartRound)

	api.Get("/friends", h.HandleRelationships)
	api.Post("/friends/requests", h.HandleSendFriendRequest)
	api.Post("/friends/:uid/accept", h.HandleAcceptFriend)
	api.Post("/friends/:uid/decline", h.HandleDeclineFriend)
	api.Delete("/friends/:uid", h.HandleRemoveFriend)

	api.Get("/shop", h.HandleListItems)
	api.Post("/shop/:itemId/purchase", h.HandlePurchase)
	api.Get("/inventory", h.HandleInventory)
	api.Post("/inventory/:itemId/equip", h.HandleEquip)

	api.Get("/leaderboard/global", h.HandleGlobalLeaderboard)
	api.Get("/leaderboard/friends", h.HandleFriendsLeaderboard)

	api.Get("/admin/stats", RequireAdmin, h.HandleAdminStats)
}

// queryLimit parses ?limit=, defaulting to def and capping at 100.
func queryLimit(c *fiber.Ctx, def int) int {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(def)))
	if err != nil || limit <= 0 {
		limit = def
	}
	if limit > 100 {
		limit = 100 // Cap at 100
	}
	return limit
}
