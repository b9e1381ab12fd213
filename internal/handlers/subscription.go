package handlers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecthunt/backend/internal/config"
	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/handlers/dto"
	"github.com/projecthunt/backend/internal/middleware"
	"github.com/projecthunt/backend/internal/models"
)

// SubscriptionHandler drives the upsell flow. The payment provider itself
// stays external: checkout hands the client a redirect URL, and the provider
// calls back on the webhook to settle the session.
type SubscriptionHandler struct {
	db       *database.Database
	checkout config.Checkout
	log      zerolog.Logger
}

func NewSubscriptionHandler(db *database.Database, checkout config.Checkout, log zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, checkout: checkout, log: log}
}

func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.checkout.Plans})
}

func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	sub, err := h.db.GetActiveSubscription(userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"isActive": false})
			return
		}
		h.log.Error().Err(err).Msg("subscription: status lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isActive":         true,
		"planId":           sub.PlanID,
		"currentPeriodEnd": sub.CurrentPeriodEnd,
	})
}

// CreateCheckout records a pending subscription and returns the provider
// redirect URL for it.
func (h *SubscriptionHandler) CreateCheckout(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	plan := h.checkout.PlanByPriceID(req.PriceID)
	if plan == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	sub := &models.Subscription{
		UserID:            userID,
		PlanID:            plan.ID,
		Status:            models.SubscriptionPending,
		CheckoutSessionID: uuid.NewString(),
	}

	if err := h.db.CreateSubscription(sub); err != nil {
		h.log.Error().Err(err).Msg("subscription: create pending")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sub.CheckoutSessionID,
		"url":       fmt.Sprintf("%s/%s?key=%s", h.checkout.BaseURL, sub.CheckoutSessionID, h.checkout.PublishableKey),
	})
}

// Webhook settles a checkout session. It is authenticated by a shared secret
// header, not a user session.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if h.checkout.WebhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(h.checkout.WebhookSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
		return
	}

	var event dto.CheckoutWebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	sub, err := h.db.GetSubscriptionBySession(event.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
			return
		}
		h.log.Error().Err(err).Msg("subscription: webhook lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	switch event.Status {
	case "completed":
		sub.Status = models.SubscriptionActive
		sub.CurrentPeriodEnd = periodEnd(h.checkout, sub.PlanID, time.Now())
	case "canceled":
		sub.Status = models.SubscriptionCanceled
	}
	sub.UpdatedAt = time.Now()

	if err := h.db.UpdateSubscription(sub); err != nil {
		h.log.Error().Err(err).Msg("subscription: webhook update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func periodEnd(checkout config.Checkout, planID string, from time.Time) time.Time {
	for _, plan := range checkout.Plans {
		if plan.ID == planID && plan.Interval == "year" {
			return from.AddDate(1, 0, 0)
		}
	}
	return from.AddDate(0, 1, 0)
}
