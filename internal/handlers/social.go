package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"emberarena/internal/service"
)

// HandleRelationships handles GET /v1/friends
func (h *Handlers) HandleRelationships(c *fiber.Ctx) error {
	rel, err := h.friendService.Relationships(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "get friends")
	}
	return c.JSON(rel)
}

// HandleSendFriendRequest handles POST /v1/friends/requests
func (h *Handlers) HandleSendFriendRequest(c *fiber.Ctx) error {
	var req struct {
		UID string `json:"uid"`
	}
	if err := c.BodyParser(&req); err != nil || req.UID == "" {
		return badRequest(c, "uid is required")
	}
	edge, err := h.friendService.SendRequest(c.UserContext(), callerID(c), req.UID)
	if err != nil {
		return respondError(c, err, "send friend request")
	}
	return c.JSON(edge)
}

// HandleAcceptFriend handles POST /v1/friends/:uid/accept
func (h *Handlers) HandleAcceptFriend(c *fiber.Ctx) error {
	edge, err := h.friendService.Accept(c.UserContext(), callerID(c), c.Params("uid"))
	if err != nil {
		return respondError(c, err, "accept friend request")
	}
	return c.JSON(edge)
}

// HandleDeclineFriend handles POST /v1/friends/:uid/decline
func (h *Handlers) HandleDeclineFriend(c *fiber.Ctx) error {
	if err := h.friendService.Decline(c.UserContext(), callerID(c), c.Params("uid")); err != nil {
		return respondError(c, err, "decline friend request")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRemoveFriend handles DELETE /v1/friends/:uid
func (h *Handlers) HandleRemoveFriend(c *fiber.Ctx) error {
	if err := h.friendService.Remove(c.UserContext(), callerID(c), c.Params("uid")); err != nil {
		return respondError(c, err, "remove friend")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListItems handles GET /v1/shop?category=
func (h *Handlers) HandleListItems(c *fiber.Ctx) error {
	return c.JSON(h.shopService.Items(c.Query("category")))
}

// HandlePurchase handles POST /v1/shop/:itemId/purchase
func (h *Handlers) HandlePurchase(c *fiber.Ctx) error {
	u, err := h.shopService.Purchase(c.UserContext(), callerID(c), c.Params("itemId"))
	if err != nil {
		return respondError(c, err, "purchase item")
	}
	return c.JSON(u)
}

// HandleInventory handles GET /v1/inventory
func (h *Handlers) HandleInventory(c *fiber.Ctx) error {
	items, err := h.shopService.Inventory(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "get inventory")
	}
	return c.JSON(items)
}

// HandleEquip handles POST /v1/inventory/:itemId/equip
func (h *Handlers) HandleEquip(c *fiber.Ctx) error {
	u, err := h.shopService.Equip(c.UserContext(), callerID(c), c.Params("itemId"))
	if err != nil {
		return respondError(c, err, "equip item")
	}
	return c.JSON(u)
}

// HandleGlobalLeaderboard handles GET /v1/leaderboard/global?limit=
func (h *Handlers) HandleGlobalLeaderboard(c *fiber.Ctx) error {
	limit := queryLimit(c, service.DefaultLeaderboardLimit)
	entries, err := h.leaderboardService.Global(c.UserContext(), limit)
	if err != nil {
		return respondError(c, err, "get leaderboard")
	}
	rank, err := h.leaderboardService.Rank(c.UserContext(), callerID(c))
	if err != nil {
		log.Printf("Rank lookup failed for %s: %v", callerID(c), err)
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"myRank":  rank,
	})
}

// HandleFriendsLeaderboard handles GET /v1/leaderboard/friends
func (h *Handlers) HandleFriendsLeaderboard(c *fiber.Ctx) error {
	entries, err := h.leaderboardService.Friends(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "get friends leaderboard")
	}
	return c.JSON(entries)
}
