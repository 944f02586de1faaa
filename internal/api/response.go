package api

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// respondList includes a count alongside the data, the shape the admin
// listings use.
func respondList(c *gin.Context, status int, count int, data interface{}) {
	c.JSON(status, Response{Success: true, Count: &count, Data: data})
}

// abortWithError returns a failure envelope and stops the handler chain.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Success: false, Error: message})
}

// Client-safe message for unexpected failures. The real error is logged
// server-side only.
const genericErrorMessage = "Something went wrong. Please try again later."
