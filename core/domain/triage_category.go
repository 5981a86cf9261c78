package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a user-defined email category used by the dynamic taxonomy.
type Category struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Name        string    `json:"nome"`
	Description *string   `json:"descricao,omitempty"`
	Color       *string   `json:"cor,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Example is a reference email/reply pair attached to a category. Examples
// are embedded into the dynamic system prompt as few-shot guidance.
type Example struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"-"`
	Content    string    `json:"conteudo"`
	Reply      *string   `json:"resposta,omitempty"`
	CategoryID *int64    `json:"categoria_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
