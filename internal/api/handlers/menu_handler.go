package handlers

import (
	"cullinary-backend/domain"
	"cullinary-backend/internal/api/presenters"
	"cullinary-backend/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		CreateMenu(c *fiber.Ctx) error
		JoinMenu(c *fiber.Ctx) error
		LockMenu(c *fiber.Ctx) error
		GetMenu(c *fiber.Ctx) error
		GetParticipants(c *fiber.Ctx) error
		ArchiveMenu(c *fiber.Ctx) error
		Invite(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) CreateMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateMenuRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}

	res, err := h.menuService.CreateMenu(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenu)
}

func (h *menuHandler) JoinMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	code := c.Params("code")
	req := new(domain.JoinMenuRequest)

	// Body is optional; only passcode-protected menus need one.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	res, err := h.menuService.JoinMenu(c.Context(), code, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedJoinMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessJoinMenu)
}

func (h *menuHandler) LockMenu(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := h.menuService.LockMenu(c.Context(), code)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedLockMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLockMenu)
}

func (h *menuHandler) GetMenu(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := h.menuService.GetMenu(c.Context(), code)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenu)
}

func (h *menuHandler) GetParticipants(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := h.menuService.ListParticipants(c.Context(), code)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetParticipants, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetParticipants)
}

func (h *menuHandler) ArchiveMenu(c *fiber.Ctx) error {
	code := c.Params("code")

	if err := h.menuService.ArchiveMenu(c.Context(), code); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedArchiveMenu, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessArchiveMenu)
}

func (h *menuHandler) Invite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	code := c.Params("code")
	req := new(domain.InviteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvite, err)
	}

	if err := h.menuService.Invite(c.Context(), code, *req, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedInvite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessInvite)
}
