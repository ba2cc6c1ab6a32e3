package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/shared"
	"compliance-backend/internal/shared/response"
	"compliance-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and stores the acting user id in the context
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authentication credentials were not provided.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(shared.ContextKeyRequestID)).Msg("Rejected token")
			response.Unauthorized(c, "Given token not valid for any token type")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Token contained no recognizable user identification")
			c.Abort()
			return
		}

		c.Set(shared.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the acting user placed by AuthMiddleware
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(shared.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
