package model

import (
	"time"
)

// ExcludedTerm is a user-scoped term filtered out of outbound questions.
type ExcludedTerm struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"id_usuario"`
	Term      string    `json:"termino"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"fecha_creacion"`
}

// CreateExcludedTermRequest is the request to add an excluded term.
type CreateExcludedTermRequest struct {
	Term string `json:"termino"`
}
