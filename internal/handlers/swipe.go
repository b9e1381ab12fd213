package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/handlers/dto"
	"github.com/projecthunt/backend/internal/middleware"
	"github.com/projecthunt/backend/internal/models"
	ws "github.com/projecthunt/backend/internal/websocket"
	"github.com/projecthunt/backend/pkg/quota"
)

type SwipeHandler struct {
	db    *database.Database
	quota *quota.Service
	hub   *ws.Hub
	log   zerolog.Logger
}

func NewSwipeHandler(db *database.Database, q *quota.Service, hub *ws.Hub, log zerolog.Logger) *SwipeHandler {
	return &SwipeHandler{db: db, quota: q, hub: hub, log: log}
}

// RecordSwipe handles POST /swipes. Order matters: validation, then project
// existence, then quota, then the insert — so a re-swipe conflicts with 409
// before it could ever consume quota, and an exhausted quota answers 429
// before any write.
func (h *SwipeHandler) RecordSwipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	project, err := h.db.GetProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PROJECT_NOT_FOUND"})
			return
		}
		h.log.Error().Err(err).Msg("swipe: load project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	premium := false
	if _, err := h.db.GetActiveSubscription(userID, time.Now()); err == nil {
		premium = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.log.Error().Err(err).Msg("swipe: subscription lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	if !premium {
		used, err := h.quota.Used(c.Request.Context(), userID, func(from, to time.Time) (int64, error) {
			return h.db.CountSwipesBetween(userID, from, to)
		})
		if err != nil {
			h.log.Error().Err(err).Msg("swipe: quota lookup")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
			return
		}
		if used >= int64(h.quota.Limit()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "LIMIT"})
			return
		}
	}

	swipe := &models.Swipe{
		SwiperID:  userID,
		ProjectID: project.ID,
		Direction: req.Direction,
		CreatedAt: time.Now(),
	}

	match, err := h.db.RecordSwipe(swipe)
	if err != nil {
		if errors.Is(err, database.ErrAlreadySwiped) {
			c.JSON(http.StatusConflict, gin.H{"error": "ALREADY_SWIPED"})
			return
		}
		h.log.Error().Err(err).Msg("swipe: record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	if err := h.quota.Record(c.Request.Context(), userID); err != nil {
		// The swipe row is already durable; the counter reseeds from the
		// database on the next read.
		h.log.Warn().Err(err).Msg("swipe: quota record")
	}

	if match != nil {
		h.hub.NotifyUser(match.UserAID, ws.TypeMatch, match)
		h.hub.NotifyUser(match.UserBID, ws.TypeMatch, match)
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// GetStats reports today's usage for the quota banner.
func (h *SwipeHandler) GetStats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	used, err := h.quota.Used(c.Request.Context(), userID, func(from, to time.Time) (int64, error) {
		return h.db.CountSwipesBetween(userID, from, to)
	})
	if err != nil {
		h.log.Error().Err(err).Msg("swipe stats: lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	max := h.quota.Limit()
	remaining := int64(max) - used
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, dto.SwipeStatsResponse{
		TodaySwipes:     used,
		MaxDailySwipes:  max,
		RemainingSwipes: remaining,
		LimitReached:    used >= int64(max),
	})
}
