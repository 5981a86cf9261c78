package http

import (
	"io"
	"strconv"

	"triage_server/core/domain"
	"triage_server/core/port/in"
	"triage_server/pkg/apperr"
	"triage_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps uploaded .pdf/.txt attachments.
const maxUploadBytes = 10 << 20

// EmailHandler handles HTTP requests for email CRUD and the AI intake
// endpoint.
type EmailHandler struct {
	emails in.EmailService
	triage in.TriageService
}

func NewEmailHandler(emails in.EmailService, triage in.TriageService) *EmailHandler {
	return &EmailHandler{emails: emails, triage: triage}
}

// Register registers email routes.
func (h *EmailHandler) Register(router fiber.Router, aiLimiter fiber.Handler) {
	emails := router.Group("/emails")

	emails.Get("/", h.List)
	emails.Post("/", h.Create)
	emails.Get("/:id", h.Get)
	emails.Put("/:id", h.Update)
	emails.Delete("/:id", h.Delete)

	// AI intake pipeline. Rate limited separately because each request
	// spends model tokens.
	if aiLimiter != nil {
		emails.Post("/ai", aiLimiter, h.ProcessAI)
	} else {
		emails.Post("/ai", h.ProcessAI)
	}
}

// List returns stored emails, optionally filtered by category or score.
func (h *EmailHandler) List(c *fiber.Ctx) error {
	pagination := response.GetPagination(c, 20, 100)

	filter := &domain.EmailFilter{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}
	if v := c.Query("categoria_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperr.InvalidInput("categoria_id", "must be an integer")
		}
		filter.CategoryID = &id
	}
	if v := c.Query("score_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperr.InvalidInput("score_id", "must be an integer")
		}
		filter.ScoreID = &id
	}

	items, total, err := h.emails.ListEmails(c.Context(), filter)
	if err != nil {
		return mapRepoError(err, "emails")
	}

	return response.OKWithMeta(c, items, &response.Meta{
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		HasMore:  pagination.Offset+len(items) < total,
	})
}

func (h *EmailHandler) Get(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	email, err := h.emails.GetEmail(c.Context(), id)
	if err != nil {
		return mapRepoError(err, "email")
	}

	return response.OK(c, email)
}

type createEmailRequest struct {
	Content string  `json:"conteudo"`
	Subject *string `json:"assunto"`
}

// Create stores an email without running the AI pipeline.
func (h *EmailHandler) Create(c *fiber.Ctx) error {
	var req createEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	email := &domain.Email{
		Content: req.Content,
		Subject: req.Subject,
	}

	created, err := h.emails.CreateEmail(c.Context(), email)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return mapRepoError(err, "email")
	}

	return response.Created(c, created)
}

func (h *EmailHandler) Update(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	var update in.EmailUpdate
	if err := c.BodyParser(&update); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	email, err := h.emails.UpdateEmail(c.Context(), id, &update)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return mapRepoError(err, "email")
	}

	return response.OK(c, email)
}

func (h *EmailHandler) Delete(c *fiber.Ctx) error {
	id, err := ParseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.emails.DeleteEmail(c.Context(), id); err != nil {
		return mapRepoError(err, "email")
	}

	return response.NoContent(c)
}

// ProcessAI runs the intake pipeline over raw text or an uploaded
// .pdf/.txt file. Accepts multipart form data with either a "conteudo"
// field or a "file" part, exactly one of the two.
func (h *EmailHandler) ProcessAI(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	req := &in.TriageRequest{
		UserID:  userID,
		Content: c.FormValue("conteudo"),
	}

	fileHeader, fileErr := c.FormFile("file")
	if fileErr == nil && fileHeader != nil {
		if fileHeader.Size > maxUploadBytes {
			return apperr.InvalidInput("file", "file too large")
		}
		f, err := fileHeader.Open()
		if err != nil {
			return apperr.BadRequest("could not read uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		if err != nil {
			return apperr.BadRequest("could not read uploaded file")
		}
		if len(data) > maxUploadBytes {
			return apperr.InvalidInput("file", "file too large")
		}
		req.Filename = fileHeader.Filename
		req.FileData = data
	}

	result, err := h.triage.Process(c.Context(), req)
	if err != nil {
		return err
	}

	return response.Created(c, result)
}
