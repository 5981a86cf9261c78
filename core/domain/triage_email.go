package domain

import "time"

// Email is a processed inbound email together with the generated reply.
// JSON field names follow the public API contract (Portuguese).
type Email struct {
	ID             int64     `json:"id"`
	Content        string    `json:"conteudo"`
	Subject        *string   `json:"assunto,omitempty"`
	Classification *string   `json:"classificacao,omitempty"`
	Intent         *string   `json:"intent,omitempty"`
	Evidences      []string  `json:"evidencias,omitempty"`
	Confidence     *float64  `json:"conf,omitempty"`
	Rationale      *string   `json:"rationale,omitempty"`
	Reply          *string   `json:"resposta,omitempty"`
	CategoryID     *int64    `json:"categoria_id,omitempty"`
	ScoreID        *int64    `json:"score_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EmailFilter narrows email listings.
type EmailFilter struct {
	CategoryID *int64
	ScoreID    *int64
	Limit      int
	Offset     int
}
