package handlers

import (
	"strconv"

	"cullinary-backend/domain"
	"cullinary-backend/internal/api/presenters"
	"cullinary-backend/pkg/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DishHandler interface {
		GetDishes(c *fiber.Ctx) error
		GetDishByID(c *fiber.Ctx) error
		UploadDishImage(c *fiber.Ctx) error
	}

	dishHandler struct {
		catalogService catalog.CatalogService
		validator      *validator.Validate
	}
)

func NewDishHandler(catalogService catalog.CatalogService, validator *validator.Validate) DishHandler {
	return &dishHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *dishHandler) GetDishes(c *fiber.Ctx) error {
	var filter domain.DishFilter

	if raw := c.Query("category"); raw != "" {
		category, err := domain.ParseCategory(raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
		}
		filter.Category = category
	}
	if raw := c.Query("preference"); raw != "" {
		preference, err := domain.ParseDietPreference(raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
		}
		filter.Preference = preference
	}
	filter.Cuisine = c.Query("cuisine")
	filter.Query = c.Query("query")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	if c.QueryBool("clear_cache", false) {
		h.catalogService.InvalidateCache()
	}

	res, err := h.catalogService.ListDishes(c.Context(), filter, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *dishHandler) GetDishByID(c *fiber.Ctx) error {
	dishID := c.Params("id")
	if dishID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishDetail, domain.ErrDishNotFound)
	}

	res, err := h.catalogService.GetDishByID(c.Context(), dishID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetDishDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishDetail)
}

func (h *dishHandler) UploadDishImage(c *fiber.Ctx) error {
	dishID := c.Params("id")
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrInvalidImage)
	}

	url, err := h.catalogService.UploadDishImage(c.Context(), dishID, file)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
