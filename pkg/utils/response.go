package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape returned by the search and filter endpoints on failure.
type ErrorBody struct {
	Error string `json:"error"`
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{Error: message})
}
