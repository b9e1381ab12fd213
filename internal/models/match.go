package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match pairs two users around a project once their likes are reciprocal.
// The pair is stored normalized (smaller UUID first) so the composite unique
// index covers the unordered pair and concurrent reciprocal likes cannot
// produce two rows.
type Match struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserAID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair_project" json:"user_a_id"`
	UserBID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair_project" json:"user_b_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair_project" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`

	UserA   Profile `gorm:"foreignKey:UserAID;references:ID" json:"-"`
	UserB   Profile `gorm:"foreignKey:UserBID;references:ID" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID;references:ID" json:"-"`
}

// OrderPair returns the two user ids in canonical storage order.
func OrderPair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(x.String(), y.String()) > 0 {
		return y, x
	}
	return x, y
}

func NewMatch(x, y, projectID uuid.UUID) *Match {
	a, b := OrderPair(x, y)
	return &Match{UserAID: a, UserBID: b, ProjectID: projectID}
}

func (m *Match) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Match) HasUser(userID uuid.UUID) bool {
	return m.UserAID == userID || m.UserBID == userID
}

func (m *Match) OtherUser(userID uuid.UUID) uuid.UUID {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}
