package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"compliance-backend/internal/shared"
)

const HeaderRequestID = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(shared.ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
