package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/projecthunt/backend/internal/models"
)

func (d *Database) CreateSubscription(sub *models.Subscription) error {
	return d.db.Create(sub).Error
}

func (d *Database) UpdateSubscription(sub *models.Subscription) error {
	return d.db.Save(sub).Error
}

func (d *Database) GetSubscriptionBySession(sessionID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := d.db.Where("checkout_session_id = ?", sessionID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetActiveSubscription returns the user's newest active subscription that
// has not run out, or gorm.ErrRecordNotFound.
func (d *Database) GetActiveSubscription(userID uuid.UUID, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := d.db.
		Where("user_id = ? AND status = ? AND current_period_end > ?", userID, models.SubscriptionActive, now).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
