package http

import (
	"strconv"

	"triage_server/core/domain"
	"triage_server/core/service/taxonomy"
	"triage_server/pkg/apperr"
	"triage_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ExampleHandler handles HTTP requests for reference examples attached to
// categories.
type ExampleHandler struct {
	service *taxonomy.Service
}

func NewExampleHandler(service *taxonomy.Service) *ExampleHandler {
	return &ExampleHandler{service: service}
}

// Register registers example routes.
func (h *ExampleHandler) Register(router fiber.Router) {
	examples := router.Group("/examples")

	examples.Get("/", h.List)
	examples.Post("/", h.Create)
	examples.Get("/:id", h.Get)
	examples.Put("/:id", h.Update)
	examples.Delete("/:id", h.Delete)
}

func (h *ExampleHandler) List(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	pagination := response.GetPagination(c, 20, 100)

	var categoryID *int64
	if v := c.Query("categoria_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperr.InvalidInput("categoria_id", "must be an integer")
		}
		categoryID = &id
	}

	examples, total, err := h.service.ListExamples(c.Context(), userID, categoryID, pagination.Limit, pagination.Offset)
	if err != nil {
		return mapRepoError(err, "examples")
	}

	return response.OKWithMeta(c, examples, &response.Meta{
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		HasMore:  pagination.Offset+len(examples) < total,
	})
}

func (h *ExampleHandler) Get(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	example, err := h.service.GetExample(c.Context(), id)
	if err != nil {
		return mapRepoError(err, "example")
	}

	return response.OK(c, example)
}

type exampleRequest struct {
	Content    string  `json:"conteudo"`
	Reply      *string `json:"resposta"`
	CategoryID *int64  `json:"categoria_id"`
}

func (h *ExampleHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req exampleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	example := &domain.Example{
		UserID:     userID,
		Content:    req.Content,
		Reply:      req.Reply,
		CategoryID: req.CategoryID,
	}

	created, err := h.service.CreateExample(c.Context(), example)
	if err != nil {
		return err
	}

	return response.Created(c, created)
}

func (h *ExampleHandler) Update(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	var req exampleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if req.Content == "" {
		return apperr.MissingField("conteudo")
	}

	example := &domain.Example{
		ID:         id,
		UserID:     userID,
		Content:    req.Content,
		Reply:      req.Reply,
		CategoryID: req.CategoryID,
	}

	updated, err := h.service.UpdateExample(c.Context(), example)
	if err != nil {
		return mapRepoError(err, "example")
	}

	return response.OK(c, updated)
}

func (h *ExampleHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteExample(c.Context(), id, userID); err != nil {
		return mapRepoError(err, "example")
	}

	return response.NoContent(c)
}
