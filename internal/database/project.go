package database

import (
	"github.com/google/uuid"

	"github.com/projecthunt/backend/internal/models"
)

func (d *Database) CreateProject(project *models.Project) error {
	return d.db.Create(project).Error
}

func (d *Database) GetProject(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := d.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (d *Database) GetUserProjects(ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := d.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// GetFeedProjects returns projects the user can still swipe on: not their own
// and not yet decided, newest first.
func (d *Database) GetFeedProjects(userID uuid.UUID, limit, offset int) ([]models.Project, error) {
	var projects []models.Project

	swiped := d.db.Model(&models.Swipe{}).Select("project_id").Where("swiper_id = ?", userID)

	err := d.db.
		Where("owner_id <> ?", userID).
		Where("id NOT IN (?)", swiped).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Owner").
		Find(&projects).Error

	return projects, err
}
