package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"codetogether-api/internal/response"
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyToken  = "jwtToken"
)

// AuthData holds the authenticated user ID and the bearer token string.
type AuthData struct {
	UserID uuid.UUID
	Token  string
}

// ExtractAuthData reads user_id and jwtToken from the Gin context and answers 401 when missing.
func ExtractAuthData(c *gin.Context) (AuthData, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, response.MsgCouldNotValidate)
		return AuthData{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, response.MsgCouldNotValidate)
		return AuthData{}, false
	}

	tokenStr, _ := c.Get(ContextKeyToken)
	token, _ := tokenStr.(string)

	return AuthData{
		UserID: userUUID,
		Token:  token,
	}, true
}

// parseUUIDParam parses a path parameter and answers 400 when it is not a UUID
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
