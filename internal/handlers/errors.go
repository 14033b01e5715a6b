package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"emberarena/internal/models"
	"emberarena/internal/service"
)

var errorStatus = []struct {
	status int
	errs   []error
}{
	{fiber.StatusUnauthorized, []error{
		service.ErrUnauthenticated,
		service.ErrInvalidCredentials,
	}},
	{fiber.StatusForbidden, []error{
		service.ErrForbidden,
		service.ErrFriendRequestsClosed,
		models.ErrNotParticipant,
	}},
	{fiber.StatusNotFound, []error{
		models.ErrUserNotFound,
		models.ErrDuelNotFound,
		models.ErrSessionNotFound,
		models.ErrEdgeNotFound,
		service.ErrQuizNotFound,
		service.ErrItemNotFound,
	}},
	{fiber.StatusConflict, []error{
		models.ErrAccountExists,
		models.ErrAlreadyOwned,
		models.ErrAlreadyScored,
		models.ErrInvalidTransition,
		models.ErrDuelNotActive,
		models.ErrEdgeExists,
		models.ErrConflict,
		service.ErrRoundComplete,
	}},
	{fiber.StatusBadRequest, []error{
		models.ErrInsufficientEmbers,
		models.ErrNotOwned,
		models.ErrNotEquippable,
		models.ErrTokenNotFound,
		service.ErrLevelTooLow,
		service.ErrInvalidAnswer,
		service.ErrWrongMode,
		service.ErrSelfChallenge,
		service.ErrInvalidWager,
		service.ErrNotFriends,
		service.ErrSelfRequest,
		service.ErrInvalidEmail,
		service.ErrWeakPassword,
		service.ErrInvalidUsername,
		service.ErrInvalidAvatar,
	}},
}

// statusFor maps a service or store error onto an HTTP status; 500 when unknown.
func statusFor(err error) int {
	for _, group := range errorStatus {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes the error body. Known errors surface their message;
// anything else is logged and reported as action failing.
func respondError(c *fiber.Ctx, err error, action string) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Error %s (%s %s): %v", action, c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "Failed to " + action,
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
