package http

import (
	"triage_server/core/domain"
	"triage_server/core/service/score"
	"triage_server/pkg/apperr"
	"triage_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ScoreHandler handles HTTP requests for quality score labels.
type ScoreHandler struct {
	service *score.Service
}

func NewScoreHandler(service *score.Service) *ScoreHandler {
	return &ScoreHandler{service: service}
}

// Register registers score routes.
func (h *ScoreHandler) Register(router fiber.Router) {
	scores := router.Group("/scores")

	scores.Get("/", h.List)
	scores.Post("/", h.Create)
	scores.Get("/:id", h.Get)
	scores.Put("/:id", h.Update)
	scores.Delete("/:id", h.Delete)
}

func (h *ScoreHandler) List(c *fiber.Ctx) error {
	scores, err := h.service.ListScores(c.Context())
	if err != nil {
		return mapRepoError(err, "scores")
	}
	return response.OK(c, scores)
}

func (h *ScoreHandler) Get(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	s, err := h.service.GetScore(c.Context(), id)
	if err != nil {
		return mapRepoError(err, "score")
	}

	return response.OK(c, s)
}

type scoreRequest struct {
	Classification string `json:"classificacao"`
}

func (h *ScoreHandler) Create(c *fiber.Ctx) error {
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	created, err := h.service.CreateScore(c.Context(), &domain.Score{Classification: req.Classification})
	if err != nil {
		return err
	}

	return response.Created(c, created)
}

func (h *ScoreHandler) Update(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if req.Classification == "" {
		return apperr.MissingField("classificacao")
	}

	updated, err := h.service.UpdateScore(c.Context(), &domain.Score{ID: id, Classification: req.Classification})
	if err != nil {
		return mapRepoError(err, "score")
	}

	return response.OK(c, updated)
}

func (h *ScoreHandler) Delete(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteScore(c.Context(), id); err != nil {
		return mapRepoError(err, "score")
	}

	return response.NoContent(c)
}
