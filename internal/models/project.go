package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen         = "open"
	StatusSeekingHelp  = "seeking_help"
	StatusOfferingHelp = "offering_help"
)

func ValidProjectStatus(s string) bool {
	return s == StatusOpen || s == StatusSeekingHelp || s == StatusOfferingHelp
}

// Categories is an ordered list of category tags stored as a JSON column, so
// one column type serves both Postgres and the sqlite test driver.
type Categories []string

func (c Categories) Value() (driver.Value, error) {
	if c == nil {
		c = Categories{}
	}
	return json.Marshal(c)
}

func (c *Categories) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = Categories{}
		return nil
	default:
		return errors.New("unsupported categories column type")
	}
}

type Project struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title      string     `gorm:"not null" json:"title"`
	Teaser     string     `json:"teaser,omitempty"`
	Categories Categories `gorm:"type:text" json:"categories"`
	Status     string     `gorm:"not null;check:status IN ('open','seeking_help','offering_help')" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Owner Profile `gorm:"foreignKey:OwnerID;references:ID" json:"-"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
