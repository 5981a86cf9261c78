package domain

import "time"

// Score is a manual quality label an operator can attach to a processed
// email, e.g. "insatisfatorio", "satisfatorio", "excelente".
type Score struct {
	ID             int64     `json:"id"`
	Classification string    `json:"classificacao"`
	CreatedAt      time.Time `json:"created_at"`
}
