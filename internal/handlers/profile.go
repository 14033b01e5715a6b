package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emberarena/internal/models"
)

// HandleMe handles GET /v1/me
func (h *Handlers) HandleMe(c *fiber.Ctx) error {
	u, err := h.userService.Me(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "get profile")
	}
	return c.JSON(u)
}

// HandleUpdatePrivacy handles PUT /v1/me/privacy with the full set of flags
func (h *Handlers) HandleUpdatePrivacy(c *fiber.Ctx) error {
	var req models.Privacy
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	u, err := h.userService.UpdatePrivacy(c.UserContext(), callerID(c), req)
	if err != nil {
		return respondError(c, err, "update privacy")
	}
	return c.JSON(u)
}

// HandleTrialHistory handles GET /v1/me/trials
func (h *Handlers) HandleTrialHistory(c *fiber.Ctx) error {
	recs, err := h.userService.TrialHistory(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "get trial history")
	}
	return c.JSON(recs)
}

// HandleLedger handles GET /v1/me/ledger
func (h *Handlers) HandleLedger(c *fiber.Ctx) error {
	entries, err := h.userService.Ledger(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "get ledger")
	}
	return c.JSON(entries)
}

// HandleGetUser handles GET /v1/users/:uid
func (h *Handlers) HandleGetUser(c *fiber.Ctx) error {
	u, err := h.userService.PublicProfile(c.UserContext(), c.Params("uid"))
	if err != nil {
		return respondError(c, err, "get user")
	}
	return c.JSON(u)
}

// HandleSearchUsers handles GET /v1/users/search?q=
func (h *Handlers) HandleSearchUsers(c *fiber.Ctx) error {
	users, err := h.friendService.Search(c.UserContext(), callerID(c), c.Query("q"))
	if err != nil {
		return respondError(c, err, "search users")
	}
	return c.JSON(users)
}

// HandleAdminStats handles GET /v1/admin/stats
func (h *Handlers) HandleAdminStats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err, "get stats")
	}
	return c.JSON(stats)
}
