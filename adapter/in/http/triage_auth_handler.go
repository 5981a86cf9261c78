package http

import (
	"triage_server/core/port/in"
	"triage_server/pkg/apperr"
	"triage_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	service in.AuthService
	jwtAuth fiber.Handler
}

func NewAuthHandler(service in.AuthService, jwtAuth fiber.Handler) *AuthHandler {
	return &AuthHandler{service: service, jwtAuth: jwtAuth}
}

// Register registers auth routes. Registration and login are public, the
// current-user endpoint requires a valid token.
func (h *AuthHandler) Register(router fiber.Router) {
	auth := router.Group("/auth")

	auth.Post("/register", h.RegisterUser)
	auth.Post("/token", h.Login)
	auth.Get("/me", h.jwtAuth, h.Me)
}

func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req in.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	user, err := h.service.Register(c.Context(), &req)
	if err != nil {
		return err
	}

	return response.Created(c, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login accepts either a JSON body or form fields. Form uses the
// username/password names for OAuth2 password-flow compatibility.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest

	if username := c.FormValue("username"); username != "" {
		req.Email = username
		req.Password = c.FormValue("password")
	} else if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return apperr.BadRequest("email and password are required")
	}

	token, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return response.OK(c, token)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return response.OK(c, user)
}
