package database

import (
	"github.com/google/uuid"

	"github.com/projecthunt/backend/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// GetMatchMessages returns a match's messages oldest first for display.
func (d *Database) GetMatchMessages(matchID uuid.UUID, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (d *Database) GetLastMessage(matchID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := d.db.
		Where("match_id = ?", matchID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}
