package handlers

import (
	"errors"

	"cullinary-backend/domain"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service errors to HTTP statuses: not-found sentinels
// become 404, everything else is treated as a bad request. Storage failures
// are wrapped by services and reach here as plain errors; handlers that can
// distinguish them return 500 explicitly.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrDishNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotParticipant):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
