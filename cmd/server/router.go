package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/projecthunt/backend/internal/handlers"
	"github.com/projecthunt/backend/internal/middleware"
	"github.com/projecthunt/backend/pkg/auth"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Feed         *handlers.FeedHandler
	Swipe        *handlers.SwipeHandler
	Project      *handlers.ProjectHandler
	Likes        *handlers.LikesHandler
	Chat         *handlers.ChatHandler
	Icebreaker   *handlers.IcebreakerHandler
	Subscription *handlers.SubscriptionHandler
	WebSocket    *handlers.WebSocketHandler
	JWTManager   *auth.JWTManager
	Redis        *redis.Client
}

func APIEndpoints(r *gin.Engine, h Handlers) {
	// Open endpoints
	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)
	r.GET("/auth/me", h.Auth.Me)
	r.POST("/subscription/webhook", h.Subscription.Webhook)

	// Authenticated API
	api := r.Group("")
	api.Use(middleware.AuthMiddleware(h.JWTManager, h.Redis))
	{
		api.POST("/auth/logout", h.Auth.Logout)
		api.POST("/auth/bootstrap-profile", h.Auth.BootstrapProfile)

		api.GET("/feed", h.Feed.GetFeed)

		api.POST("/swipes", h.Swipe.RecordSwipe)
		api.GET("/swipes", h.Swipe.GetStats)
		api.GET("/likes", h.Likes.GetLikes)

		api.POST("/projects/create", h.Project.CreateProject)
		api.GET("/projects/mine", h.Project.GetMyProjects)

		api.GET("/chats", h.Chat.GetChats)
		api.GET("/messages", h.Chat.GetMessages)
		api.POST("/messages", h.Chat.SendMessage)
		api.POST("/icebreaker", h.Icebreaker.Send)

		api.GET("/subscription/plans", h.Subscription.GetPlans)
		api.GET("/subscription/status", h.Subscription.GetStatus)
		api.POST("/subscription/checkout", h.Subscription.CreateCheckout)
	}

	// WebSocket (token via query param)
	r.GET("/ws", middleware.WSAuthMiddleware(h.JWTManager, h.Redis), h.WebSocket.HandleWebSocket)
}
