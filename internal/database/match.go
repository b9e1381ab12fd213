package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projecthunt/backend/internal/models"
)

func (d *Database) GetMatch(id uuid.UUID) (*models.Match, error) {
	var match models.Match
	if err := d.db.First(&match, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (d *Database) GetUserMatches(userID uuid.UUID, limit, offset int) ([]models.Match, error) {
	var matches []models.Match
	err := d.db.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("UserA").
		Preload("UserB").
		Preload("Project").
		Find(&matches).Error
	return matches, err
}

// EnsureMatch finds or creates a match between the two users for the
// icebreaker flow. A new match is scoped to the sender's most recent like on
// a recipient project, falling back to the recipient's newest project;
// gorm.ErrRecordNotFound means the recipient has nothing to anchor a match to.
func (d *Database) EnsureMatch(senderID, recipientID uuid.UUID) (*models.Match, error) {
	a, b := models.OrderPair(senderID, recipientID)

	var match models.Match
	err := d.db.
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Order("created_at DESC").
		First(&match).Error
	if err == nil {
		return &match, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var projectID uuid.UUID
	var liked models.Swipe
	err = d.db.
		Select("swipes.*").
		Joins("JOIN projects ON projects.id = swipes.project_id").
		Where("swipes.swiper_id = ? AND swipes.direction = ? AND projects.owner_id = ?",
			senderID, models.DirectionLike, recipientID).
		Order("swipes.created_at DESC").
		First(&liked).Error
	switch {
	case err == nil:
		projectID = liked.ProjectID
	case errors.Is(err, gorm.ErrRecordNotFound):
		var project models.Project
		if err := d.db.Where("owner_id = ?", recipientID).Order("created_at DESC").First(&project).Error; err != nil {
			return nil, err
		}
		projectID = project.ID
	default:
		return nil, err
	}

	m := models.NewMatch(senderID, recipientID, projectID)
	if err := d.db.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent create; return the winner.
			if err := d.db.Where("user_a_id = ? AND user_b_id = ? AND project_id = ?", a, b, projectID).First(&match).Error; err != nil {
				return nil, err
			}
			return &match, nil
		}
		return nil, err
	}
	return m, nil
}
