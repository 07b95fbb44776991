package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
)

// UserIDHeader carries the terminal operator's ID. Requests without it are
// served as an anonymous viewer in the default timezone.
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

// IdentityMiddleware reads the operator ID set by the upstream gateway.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			c.Next()
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid "+UserIDHeader+" header")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the caller's ID, or uuid.Nil for anonymous requests.
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// ClientKey scopes idempotency keys to a caller: the remote address, plus
// the user ID when one was sent.
func ClientKey(c *gin.Context) string {
	key := "ip:" + c.ClientIP()
	if id := GetUserID(c); id != uuid.Nil {
		key += "|user:" + id.String()
	}
	return key
}
