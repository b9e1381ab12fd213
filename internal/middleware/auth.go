package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/projecthunt/backend/pkg/auth"
)

const UserIDKey = "userID"

// AuthMiddleware verifies the bearer token and rejects blacklisted ones.
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
			c.Abort()
			return
		}

		userID, err := resolveToken(c.Request.Context(), jwtManager, redisClient, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// WSAuthMiddleware is the websocket variant: browsers cannot set headers on
// upgrade requests, so the token may arrive as a query parameter.
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
			c.Abort()
			return
		}

		userID, err := resolveToken(c.Request.Context(), jwtManager, redisClient, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

var errTokenRejected = errors.New("token is blacklisted")

func resolveToken(ctx context.Context, jwtManager *auth.JWTManager, redisClient *redis.Client, token string) (uuid.UUID, error) {
	exists, err := redisClient.Exists(ctx, "blacklist:"+token).Result()
	if err != nil || exists > 0 {
		return uuid.Nil, errTokenRejected
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(claims.Subject)
}
