package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/projecthunt/backend/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) GetUser(id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) GetProfile(id uuid.UUID) (*models.Profile, error) {
	profile := models.Profile{}
	if err := d.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates the profile on first onboarding and overwrites the
// editable fields on every later call, keyed on the user id.
func (d *Database) UpsertProfile(profile *models.Profile) error {
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "location", "about", "updated_at"}),
	}).Create(profile).Error
}
