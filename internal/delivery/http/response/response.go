package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success writes data as the JSON body
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}
