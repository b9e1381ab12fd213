package server

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/projecthunt/backend/internal/config"
	"github.com/projecthunt/backend/internal/database"
	"github.com/projecthunt/backend/internal/handlers"
	ws "github.com/projecthunt/backend/internal/websocket"
	"github.com/projecthunt/backend/pkg/auth"
	"github.com/projecthunt/backend/pkg/quota"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Config     *config.Config
	Log        zerolog.Logger
}

func NewServer() *Server {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	hub := ws.NewHub(log)
	go hub.Run()

	quotaSvc := quota.NewService(rdb, cfg.MaxDailySwipes)

	h := Handlers{
		Auth:         handlers.NewAuthHandler(dbConn, jwtMgr, rdb, log),
		Feed:         handlers.NewFeedHandler(dbConn, log),
		Swipe:        handlers.NewSwipeHandler(dbConn, quotaSvc, hub, log),
		Project:      handlers.NewProjectHandler(dbConn, log),
		Likes:        handlers.NewLikesHandler(dbConn, log),
		Chat:         handlers.NewChatHandler(dbConn, hub, log),
		Icebreaker:   handlers.NewIcebreakerHandler(dbConn, hub, log),
		Subscription: handlers.NewSubscriptionHandler(dbConn, cfg.Checkout, log),
		WebSocket:    handlers.NewWebSocketHandler(hub),
		JWTManager:   jwtMgr,
		Redis:        rdb,
	}

	router := gin.Default()
	APIEndpoints(router, h)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Config:     cfg,
		Log:        log,
	}
}

func (s *Server) Run() {
	s.Log.Info().Str("port", s.Config.Port).Msg("server starting")
	if err := s.Router.Run(":" + s.Config.Port); err != nil {
		s.Log.Fatal().Err(err).Msg("server run error")
	}
}
