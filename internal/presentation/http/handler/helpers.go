package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos-api/internal/presentation/http/middleware"
)

// GetUserID returns the caller's user ID, or uuid.Nil when the request is
// anonymous.
func GetUserID(c *gin.Context) uuid.UUID {
	return middleware.GetUserID(c)
}

// requireUserID writes a 401 and returns false for anonymous requests.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID := GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "The "+middleware.UserIDHeader+" header is required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id parameter, writing a 400 when it is not a UUID.
func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseStatus accepts a status name ("Open") or its number ("0").
func parseStatus(s string) (enum.OrderStatus, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		status := enum.OrderStatus(n)
		return status, status.Valid()
	}
	return enum.ParseOrderStatus(s)
}
