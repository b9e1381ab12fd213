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

const maxMessageLength = 1000

type ChatHandler struct {
	db  *database.Database
	hub *ws.Hub
	log zerolog.Logger
}

func NewChatHandler(db *database.Database, hub *ws.Hub, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{db: db, hub: hub, log: log}
}

// GetChats lists the caller's matches newest first, each with the other
// participant's name and the project they matched on.
func (h *ChatHandler) GetChats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	limit, offset := pagination(c, 20)

	matches, err := h.db.GetUserMatches(userID, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("chats: query")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	items := make([]gin.H, len(matches))
	for i := range matches {
		items[i] = h.formatMatch(&matches[i], userID)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetMessages returns a match's messages oldest first. A match the caller
// does not participate in answers 403 whether or not it exists, so the
// endpoint never leaks which match ids are real.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	matchIDStr := c.Query("matchId")
	if matchIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}
	matchID, err := uuid.Parse(matchIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	match, ok := h.authorizedMatch(c, matchID, userID)
	if !ok {
		return
	}

	limit, offset := pagination(c, 50)

	messages, err := h.db.GetMatchMessages(match.ID, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("messages: query")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage appends to a match's conversation and pushes the message to
// both participants' live connections.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	content := trimmed(req.Content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	match, ok := h.authorizedMatch(c, matchID, userID)
	if !ok {
		return
	}

	message := &models.Message{
		MatchID:   match.ID,
		SenderID:  userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := h.db.SaveMessage(message); err != nil {
		h.log.Error().Err(err).Msg("messages: save")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	h.hub.NotifyUser(match.UserAID, ws.TypeMessage, message)
	h.hub.NotifyUser(match.UserBID, ws.TypeMessage, message)

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// authorizedMatch loads the match and enforces the participant rule. Unknown
// and forbidden are deliberately the same response.
func (h *ChatHandler) authorizedMatch(c *gin.Context, matchID, userID uuid.UUID) (*models.Match, bool) {
	match, err := h.db.GetMatch(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN"})
			return nil, false
		}
		h.log.Error().Err(err).Msg("messages: load match")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return nil, false
	}

	if !match.HasUser(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN"})
		return nil, false
	}

	return match, true
}

func (h *ChatHandler) formatMatch(m *models.Match, viewerID uuid.UUID) gin.H {
	other := m.UserA
	if m.UserAID == viewerID {
		other = m.UserB
	}
	otherName := other.Name
	if otherName == "" {
		otherName = "Unknown"
	}

	item := gin.H{
		"id":         m.ID,
		"user_a_id":  m.UserAID,
		"user_b_id":  m.UserBID,
		"project_id": m.ProjectID,
		"created_at": m.CreatedAt,
		"other_user": gin.H{
			"id":   other.ID,
			"name": otherName,
		},
		"project": gin.H{
			"id":    m.Project.ID,
			"title": m.Project.Title,
		},
	}

	if last, err := h.db.GetLastMessage(m.ID); err == nil {
		item["last_message"] = gin.H{
			"content":    last.Content,
			"sender_id":  last.SenderID,
			"created_at": last.CreatedAt,
		}
	}

	return item
}
