package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/projecthunt/backend/cmd/server"
	"github.com/projecthunt/backend/internal/config"
	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/handlers"
	"github.com/projecthunt/backend/internal/models"
	ws "github.com/projecthunt/backend/internal/websocket"
	"github.com/projecthunt/backend/pkg/auth"
	"github.com/projecthunt/backend/pkg/quota"
)

const webhookSecret = "test-webhook-secret"

type testEnv struct {
	router *gin.Engine
	db     *database.Database
	gorm   *gorm.DB
	redis  *redis.Client
	mini   *miniredis.Miniredis
	jwt    *auth.JWTManager
	quota  *quota.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// A single in-memory sqlite database must not fan out over the pool.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(gdb))
	db := database.NewDatabase(gdb)

	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	log := zerolog.Nop()
	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	hub := ws.NewHub(log)
	go hub.Run()
	t.Cleanup(hub.Stop)

	quotaSvc := quota.NewService(rdb, 10)

	checkout := config.Checkout{
		BaseURL:       "https://checkout.test/session",
		WebhookSecret: webhookSecret,
		Plans: []config.Plan{
			{ID: "premium_monthly", Name: "Premium", PriceID: "price_m", Interval: "month"},
			{ID: "premium_yearly", Name: "Premium Yearly", PriceID: "price_y", Interval: "year"},
		},
	}

	router := gin.New()
	server.APIEndpoints(router, server.Handlers{
		Auth:         handlers.NewAuthHandler(db, jwtMgr, rdb, log),
		Feed:         handlers.NewFeedHandler(db, log),
		Swipe:        handlers.NewSwipeHandler(db, quotaSvc, hub, log),
		Project:      handlers.NewProjectHandler(db, log),
		Likes:        handlers.NewLikesHandler(db, log),
		Chat:         handlers.NewChatHandler(db, hub, log),
		Icebreaker:   handlers.NewIcebreakerHandler(db, hub, log),
		Subscription: handlers.NewSubscriptionHandler(db, checkout, log),
		WebSocket:    handlers.NewWebSocketHandler(hub),
		JWTManager:   jwtMgr,
		Redis:        rdb,
	})

	return &testEnv{
		router: router,
		db:     db,
		gorm:   gdb,
		redis:  rdb,
		mini:   mini,
		jwt:    jwtMgr,
		quota:  quotaSvc,
	}
}

// newUser persists a user with a profile and returns the id and a valid token.
func (e *testEnv) newUser(t *testing.T, name string) (uuid.UUID, string) {
	t.Helper()

	user := &models.User{Email: name + "@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, e.db.SaveUser(user))
	require.NoError(t, e.db.UpsertProfile(&models.Profile{ID: user.ID, Name: name, UpdatedAt: time.Now()}))

	token, err := e.jwt.Generate(user.ID.String())
	require.NoError(t, err)

	return user.ID, token
}

func (e *testEnv) newProject(t *testing.T, ownerID uuid.UUID, title string, createdAt time.Time) *models.Project {
	t.Helper()

	project := &models.Project{
		OwnerID:    ownerID,
		Title:      title,
		Teaser:     title + " teaser",
		Categories: models.Categories{"DevTools", "AI"},
		Status:     models.StatusOpen,
		CreatedAt:  createdAt,
	}
	require.NoError(t, e.gorm.Create(project).Error)
	return project
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
