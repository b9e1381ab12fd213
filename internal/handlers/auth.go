package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/handlers/dto"
	"github.com/projecthunt/backend/internal/middleware"
	"github.com/projecthunt/backend/internal/models"
	"github.com/projecthunt/backend/pkg/auth"
)

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
	log        zerolog.Logger
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, redis: rdb, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "EMAIL_TAKEN"})
			return
		}
		h.log.Error().Err(err).Msg("register: save user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "INVALID_CREDENTIALS"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "INVALID_CREDENTIALS"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		h.log.Error().Err(err).Msg("login: token generation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout blacklists the token in Redis until it would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
		return
	}

	ttl := time.Until(exp)
	h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl)

	c.Status(http.StatusOK)
}

// Me is session introspection for the client's boot sequence. It never
// requires auth and always answers 200.
func (h *AuthHandler) Me(c *gin.Context) {
	resp := gin.H{
		"hasUser":   false,
		"userId":    nil,
		"userEmail": nil,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	exists, err := h.redis.Exists(c.Request.Context(), "blacklist:"+rawToken).Result()
	if err != nil || exists > 0 {
		c.JSON(http.StatusOK, resp)
		return
	}

	claims, err := h.jwtManager.Verify(rawToken)
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	resp["hasUser"] = true
	resp["userId"] = user.ID
	resp["userEmail"] = user.Email
	c.JSON(http.StatusOK, resp)
}

// BootstrapProfile creates or updates the caller's profile during onboarding.
func (h *AuthHandler) BootstrapProfile(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.BootstrapProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	name := trimmed(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		return
	}

	profile := &models.Profile{
		ID:        userID,
		Name:      name,
		Location:  trimmed(req.Location),
		About:     trimmed(req.About),
		UpdatedAt: time.Now(),
	}

	if err := h.db.UpsertProfile(profile); err != nil {
		h.log.Error().Err(err).Msg("bootstrap-profile: upsert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
