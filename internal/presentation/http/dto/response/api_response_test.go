package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, requestID string, h gin.HandlerFunc) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if requestID != "" {
		c.Set(RequestIDKey, requestID)
	}
	h(c)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestValidationError(t *testing.T) {
	rec, body := run(t, "req-9", func(c *gin.Context) {
		ValidationError(c, []apperror.FieldError{{Field: "items", Message: "must contain at least 1"}})
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failed", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "items", body.Errors[0].Field)
	assert.Equal(t, "req-9", body.Meta.RequestID)
}

func TestError_HidesUnknownErrors(t *testing.T) {
	rec, body := run(t, "", func(c *gin.Context) {
		Error(c, errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotEmpty(t, body.Meta.RequestID)
}

func TestCreated(t *testing.T) {
	rec, body := run(t, "", func(c *gin.Context) { Created(c, "Order created", gin.H{"id": 1}) })

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Empty(t, body.Errors)
}
