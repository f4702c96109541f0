package handlers

import (
	"cullinary-backend/domain"
	"cullinary-backend/internal/api/presenters"
	"cullinary-backend/pkg/swipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SwipeHandler interface {
		GetFeed(c *fiber.Ctx) error
		Swipe(c *fiber.Ctx) error
	}

	swipeHandler struct {
		swipeService swipe.SwipeService
		validator    *validator.Validate
	}
)

func NewSwipeHandler(swipeService swipe.SwipeService, validator *validator.Validate) SwipeHandler {
	return &swipeHandler{
		swipeService: swipeService,
		validator:    validator,
	}
}

func (h *swipeHandler) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	code := c.Params("code")
	slot := c.Query("slot")

	res, err := h.swipeService.GetFeed(c.Context(), code, slot, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetFeed, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFeed)
}

func (h *swipeHandler) Swipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	code := c.Params("code")
	req := new(domain.SwipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSwipe, err)
	}

	res, err := h.swipeService.ProcessSwipe(c.Context(), code, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSwipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSwipe)
}
