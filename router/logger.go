package router

import (
	"log"
	"time"

	"dumbbell/middleware"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request, plus any handler errors gin collected.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		log.Printf("[%s] %s %s %s -> %d (%s)",
			middleware.GetRequestID(c), c.ClientIP(), c.Request.Method, path, c.Writer.Status(), time.Since(start))
		for _, e := range c.Errors {
			log.Printf("[%s] error: %v", middleware.GetRequestID(c), e.Err)
		}
	}
}
