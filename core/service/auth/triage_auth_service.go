// Package auth implements registration, login and token issuing.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"triage_server/core/domain"
	"triage_server/core/port/in"
	"triage_server/core/port/out"
	"triage_server/pkg/apperr"
)

type Service struct {
	users         out.UserRepository
	jwtSecret     []byte
	expiryMinutes int
}

func NewService(users out.UserRepository, jwtSecret string, expiryMinutes int) *Service {
	if expiryMinutes <= 0 {
		expiryMinutes = 60
	}
	return &Service{
		users:         users,
		jwtSecret:     []byte(jwtSecret),
		expiryMinutes: expiryMinutes,
	}
}

func (s *Service) Register(ctx context.Context, req *in.RegisterRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, apperr.MissingField("email")
	}
	if req.Password == "" {
		return nil, apperr.MissingField("password")
	}

	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, apperr.BadRequest("e-mail já registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.InternalWithError(err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, apperr.DatabaseError("create user", err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*in.Token, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, apperr.BadRequest("e-mail ou senha inválidos")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.BadRequest("e-mail ou senha inválidos")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, apperr.InternalWithError(err)
	}
	return &in.Token{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

func (s *Service) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(s.expiryMinutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

var _ in.AuthService = (*Service)(nil)
