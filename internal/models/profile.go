package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public-facing identity, 1:1 with a User. It is created on
// first bootstrap during onboarding and updated by its owner thereafter.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Location  string    `json:"location,omitempty"`
	About     string    `json:"about,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
