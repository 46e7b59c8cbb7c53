package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"codetogether-api/internal/response"
)

// TokenValidator resolves a bearer token to the ID of an existing user
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// AuthWithValidator returns a middleware that requires a valid bearer token.
// On success user_id and jwtToken are stored in the context.
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, response.MsgCouldNotValidate)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userID, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, response.MsgCouldNotValidate)
			return
		}

		c.Set("user_id", userID)
		c.Set("jwtToken", tokenString)

		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>"; the scheme is case-insensitive
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
