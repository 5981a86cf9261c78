package in

import (
	"context"

	"triage_server/core/domain"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Token, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
