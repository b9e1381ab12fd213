package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projecthunt/backend/internal/models"
)

var ErrAlreadySwiped = errors.New("project already swiped")

// RecordSwipe inserts the decision and, on a like, creates the match when the
// project owner has already liked one of the swiper's projects. The swipe and
// the match insert run in one transaction; the unique index on the match
// triple is the backstop against two concurrent reciprocal likes, so a
// duplicate-key error there is swallowed rather than surfaced.
func (d *Database) RecordSwipe(swipe *models.Swipe) (*models.Match, error) {
	var match *models.Match

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(swipe).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySwiped
			}
			return err
		}

		if swipe.Direction != models.DirectionLike {
			return nil
		}

		var project models.Project
		if err := tx.First(&project, "id = ?", swipe.ProjectID).Error; err != nil {
			return err
		}

		var reciprocal int64
		err := tx.Model(&models.Swipe{}).
			Joins("JOIN projects ON projects.id = swipes.project_id").
			Where("swipes.swiper_id = ? AND swipes.direction = ? AND projects.owner_id = ?",
				project.OwnerID, models.DirectionLike, swipe.SwiperID).
			Count(&reciprocal).Error
		if err != nil {
			return err
		}
		if reciprocal == 0 {
			return nil
		}

		m := models.NewMatch(swipe.SwiperID, project.OwnerID, swipe.ProjectID)
		if err := tx.Create(m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		match = m

		return nil
	})

	return match, err
}

// CountSwipesBetween is the authoritative daily-usage count; the quota cache
// seeds itself from it when Redis is cold.
func (d *Database) CountSwipesBetween(userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := d.db.Model(&models.Swipe{}).
		Where("swiper_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}

// GetLikedSwipes returns the user's likes newest first, with the project and
// its owner resolved for display.
func (d *Database) GetLikedSwipes(userID uuid.UUID, limit, offset int) ([]models.Swipe, error) {
	var swipes []models.Swipe
	err := d.db.
		Where("swiper_id = ? AND direction = ?", userID, models.DirectionLike).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Project").
		Preload("Project.Owner").
		Find(&swipes).Error
	return swipes, err
}
