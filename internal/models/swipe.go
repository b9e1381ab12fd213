package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DirectionLike = "like"
	DirectionSkip = "skip"
)

// Swipe records a single like/skip decision. A user gets at most one decision
// per project, ever; the composite unique index rejects re-swipes and is the
// only defense needed against concurrent duplicates.
type Swipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SwiperID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_swipes_swiper_project" json:"swiper_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_swipes_swiper_project" json:"project_id"`
	Direction string    `gorm:"not null;check:direction IN ('like','skip')" json:"direction"`
	CreatedAt time.Time `json:"created_at"`

	Project Project `gorm:"foreignKey:ProjectID;references:ID" json:"-"`
}

func (s *Swipe) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
