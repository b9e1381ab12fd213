package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/handlers/dto"
	"github.com/projecthunt/backend/internal/middleware"
	"github.com/projecthunt/backend/internal/models"
)

type ProjectHandler struct {
	db  *database.Database
	log zerolog.Logger
}

func NewProjectHandler(db *database.Database, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{db: db, log: log}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	project := &models.Project{
		OwnerID:    userID,
		Title:      trimmed(req.Title),
		Teaser:     trimmed(req.Teaser),
		Categories: models.Categories(req.Categories),
		Status:     req.Status,
		CreatedAt:  time.Now(),
	}

	if project.Title == "" || req.Categories == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	if err := h.db.CreateProject(project); err != nil {
		h.log.Error().Err(err).Msg("project: create")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetMyProjects lists the caller's own projects for the profile view.
func (h *ProjectHandler) GetMyProjects(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	projects, err := h.db.GetUserProjects(userID)
	if err != nil {
		h.log.Error().Err(err).Msg("project: list own")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": projects})
}
