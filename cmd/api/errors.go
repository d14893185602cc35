package api

import (
	"log"
	"net/http"
	"runtime/debug"

	"taskpro-backend/internal/apperror"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
// Causes and stack traces are only exposed in development.
func ErrorMiddleware(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.StatusOf(err)
		resp := errorResponse{Message: apperror.MessageOf(err)}

		if status >= http.StatusInternalServerError {
			log.Printf("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		if development {
			resp.Stack = err.Error()
		}

		c.JSON(status, resp)
	}
}

// RecoveryMiddleware turns a panic into a 500 with the usual error body.
func RecoveryMiddleware(development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		stack := string(debug.Stack())
		log.Printf("[API] panic on %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, recovered, stack)

		resp := errorResponse{Message: "Internal server error"}
		if development {
			resp.Stack = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse{Message: "Resource not found"})
}
