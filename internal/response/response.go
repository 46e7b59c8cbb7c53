package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse wraps a successful payload
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Detail  string `json:"detail"`
}

// SendSuccess writes data wrapped in the success envelope
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// SendError writes an error body and aborts the handler chain
func SendError(c *gin.Context, status int, code, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Code:    code,
		Detail:  detail,
	})
}
