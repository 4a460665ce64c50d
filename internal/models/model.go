package models

import (
	"time"

	"gorm.io/gorm"
)

type contextKey string

// DBContextURL is the context key for the base URL the backend is reachable at.
const DBContextURL contextKey = "backend-url"

// Model is the base model for all rows in the schemes backend.
//
// IDs are plain integers since scheme references are derived from them
// (ATE00001 is the scheme with ID 1).
type Model struct {
	ID        uint      `json:"id" example:"1"`
	CreatedAt time.Time `json:"createdAt" example:"2023-01-02T19:28:44.491514Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2023-01-17T20:14:01.048145Z"`
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
// They are stored in UTC, but reading them back returns them as +0000.
func (m *Model) AfterFind(_ *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}
