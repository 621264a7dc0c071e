package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseSimple is for rows that are never updated.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// NewBase stamps a fresh id and creation time.
func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}
