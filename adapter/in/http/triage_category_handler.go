package http

import (
	"triage_server/core/domain"
	"triage_server/core/service/taxonomy"
	"triage_server/pkg/apperr"
	"triage_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for user-defined categories.
type CategoryHandler struct {
	service *taxonomy.Service
}

func NewCategoryHandler(service *taxonomy.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Register registers category routes.
func (h *CategoryHandler) Register(router fiber.Router) {
	categories := router.Group("/categories")

	categories.Get("/", h.List)
	categories.Post("/", h.Create)
	categories.Get("/:id", h.Get)
	categories.Put("/:id", h.Update)
	categories.Delete("/:id", h.Delete)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	categories, err := h.service.ListCategories(c.Context(), userID)
	if err != nil {
		return mapRepoError(err, "categories")
	}

	return response.OK(c, categories)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	category, err := h.service.GetCategory(c.Context(), id)
	if err != nil {
		return mapRepoError(err, "category")
	}

	return response.OK(c, category)
}

type categoryRequest struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao"`
	Color       *string `json:"cor"`
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	category := &domain.Category{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	created, err := h.service.CreateCategory(c.Context(), category)
	if err != nil {
		return err
	}

	return response.Created(c, created)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if req.Name == "" {
		return apperr.MissingField("nome")
	}

	category := &domain.Category{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	updated, err := h.service.UpdateCategory(c.Context(), category)
	if err != nil {
		return mapRepoError(err, "category")
	}

	return response.OK(c, updated)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteCategory(c.Context(), id, userID); err != nil {
		return mapRepoError(err, "category")
	}

	return response.NoContent(c)
}
