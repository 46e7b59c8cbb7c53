package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendSuccess(c, http.StatusCreated, map[string]string{"name": "x"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "x", body["data"].(map[string]interface{})["name"])
}

func TestSendError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendError(c, http.StatusForbidden, ErrCodeForbidden, MsgAccessDenied)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, c.IsAborted())
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, ErrCodeForbidden, body.Code)
	assert.Equal(t, "Access denied", body.Detail)
}

func TestAppError(t *testing.T) {
	err := NewPolicyError(MsgNoVacantSlots, "")
	assert.Equal(t, "POLICY_VIOLATION: There are no vacant slots for this position", err.Error())

	withDetails := NewInternalError("Failed to save", "disk full")
	assert.Contains(t, withDetails.Error(), "disk full")

	var target *AppError
	wrapped := errors.Join(errors.New("outer"), err)
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, ErrCodePolicyViolation, target.Code)
}
