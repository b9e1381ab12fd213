package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/middleware"
)

type LikesHandler struct {
	db  *database.Database
	log zerolog.Logger
}

func NewLikesHandler(db *database.Database, log zerolog.Logger) *LikesHandler {
	return &LikesHandler{db: db, log: log}
}

// GetLikes lists the projects the caller liked, newest like first.
func (h *LikesHandler) GetLikes(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	limit, offset := pagination(c, 20)

	swipes, err := h.db.GetLikedSwipes(userID, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("likes: query")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	items := make([]gin.H, 0, len(swipes))
	for i := range swipes {
		if swipes[i].Project.ID == uuid.Nil {
			continue
		}
		item := formatProjectSummary(&swipes[i].Project)
		item["liked_at"] = swipes[i].CreatedAt
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
