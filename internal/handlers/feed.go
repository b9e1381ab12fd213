package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/middleware"
	"github.com/projecthunt/backend/internal/models"
)

type FeedHandler struct {
	db  *database.Database
	log zerolog.Logger
}

func NewFeedHandler(db *database.Database, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{db: db, log: log}
}

// GetFeed returns the page of projects the caller can still swipe on. An
// empty list is the normal end of the swipe loop, not an error.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	limit, offset := pagination(c, 20)

	projects, err := h.db.GetFeedProjects(userID, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("feed: query")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	items := make([]gin.H, len(projects))
	for i := range projects {
		items[i] = formatProjectSummary(&projects[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func formatProjectSummary(p *models.Project) gin.H {
	ownerName := p.Owner.Name
	if ownerName == "" {
		ownerName = "Unknown"
	}

	return gin.H{
		"id":         p.ID,
		"owner_id":   p.OwnerID,
		"title":      p.Title,
		"teaser":     p.Teaser,
		"categories": p.Categories,
		"status":     p.Status,
		"created_at": p.CreatedAt,
		"owner":      gin.H{"name": ownerName},
	}
}
