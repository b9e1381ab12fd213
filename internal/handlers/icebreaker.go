package handlers

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/handlers/dto"
	"github.com/projecthunt/backend/internal/middleware"
	"github.com/projecthunt/backend/internal/models"
	ws "github.com/projecthunt/backend/internal/websocket"
)

type IcebreakerHandler struct {
	db  *database.Database
	hub *ws.Hub
	log zerolog.Logger
}

func NewIcebreakerHandler(db *database.Database, hub *ws.Hub, log zerolog.Logger) *IcebreakerHandler {
	return &IcebreakerHandler{db: db, hub: hub, log: log}
}

// Send opens (or reuses) a conversation with another user and delivers the
// first message in one call. The match is anchored to the sender's most
// recent like on one of the recipient's projects, falling back to the
// recipient's newest project.
func (h *IcebreakerHandler) Send(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.IcebreakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil || recipientID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	content := trimmed(req.IcebreakerText)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	match, err := h.db.EnsureMatch(userID, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
			return
		}
		h.log.Error().Err(err).Msg("icebreaker: ensure match")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	message := &models.Message{
		MatchID:   match.ID,
		SenderID:  userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := h.db.SaveMessage(message); err != nil {
		h.log.Error().Err(err).Msg("icebreaker: save message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	h.hub.NotifyUser(recipientID, ws.TypeMessage, message)

	c.JSON(http.StatusCreated, gin.H{"conversationId": match.ID})
}
