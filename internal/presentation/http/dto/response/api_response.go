package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/pagination"
)

// RequestIDKey is the gin context key the request logger stores the
// request ID under.
const RequestIDKey = "request_id"

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Meta    Meta                  `json:"meta"`
}

type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func meta(c *gin.Context) Meta {
	id := c.GetString(RequestIDKey)
	if id == "" {
		id = c.GetHeader("X-Request-ID")
	}
	if id == "" {
		id = uuid.NewString()
	}
	return Meta{Timestamp: time.Now().UTC().Format(time.RFC3339), RequestID: id}
}

func write(c *gin.Context, status int, body APIResponse) {
	body.Meta = meta(c)
	c.JSON(status, body)
}

func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, APIResponse{Success: true, Message: message, Data: data})
}

// Page answers 200 with one page of results and its pagination block.
func Page[T any](c *gin.Context, message string, result *pagination.PaginatedResult[T]) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: result})
}

// Error answers with the status and field errors carried by err. Errors
// that are not AppErrors become a bare 500.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	write(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
}

func ErrorWithCode(c *gin.Context, status int, message string) {
	write(c, status, APIResponse{Message: message})
}

// ValidationError answers 422 listing the offending fields.
func ValidationError(c *gin.Context, fields []apperror.FieldError) {
	Error(c, apperror.NewValidationError(fields))
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}
