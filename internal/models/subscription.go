package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionPending  = "pending"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// Subscription tracks the upsell flow. The row is created pending when a
// checkout session is opened and flipped by the provider webhook; an active
// subscription lifts the daily swipe quota.
type Subscription struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanID            string    `gorm:"not null" json:"plan_id"`
	Status            string    `gorm:"not null;check:status IN ('pending','active','canceled')" json:"status"`
	CheckoutSessionID string    `gorm:"uniqueIndex" json:"-"`
	CurrentPeriodEnd  time.Time `json:"current_period_end"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
