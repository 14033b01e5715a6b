package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleSignUp handles POST /v1/auth/signup
func (h *Handlers) HandleSignUp(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := h.authService.SignUp(c.UserContext(), req.Email, req.Password, req.Username, req.Avatar)
	if err != nil {
		return respondError(c, err, "sign up")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleSignIn handles POST /v1/auth/signin
func (h *Handlers) HandleSignIn(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	res, err := h.authService.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "sign in")
	}
	return c.JSON(res)
}

// HandleSignOut handles POST /v1/auth/signout
func (h *Handlers) HandleSignOut(c *fiber.Ctx) error {
	if err := h.authService.SignOut(c.UserContext(), currentSession(c)); err != nil {
		return respondError(c, err, "sign out")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRequestReset handles POST /v1/auth/reset
func (h *Handlers) HandleRequestReset(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return badRequest(c, "email is required")
	}
	if err := h.authService.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return respondError(c, err, "request password reset")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "If the address is registered, a reset link is on its way.",
	})
}

// HandleConfirmReset handles POST /v1/auth/reset/confirm
func (h *Handlers) HandleConfirmReset(c *fiber.Ctx) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return badRequest(c, "token and password are required")
	}
	if err := h.authService.ConfirmPasswordReset(c.UserContext(), req.Token, req.Password); err != nil {
		return respondError(c, err, "reset password")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
