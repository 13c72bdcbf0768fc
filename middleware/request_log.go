package middleware

import (
	"context"
	"log"
	"time"

	"main/repository"

	"github.com/gin-gonic/gin"
	"github.com/mileusna/useragent"
)

// RequestLogMiddleware counts (method, route) hits in the request log
// collection along with the client that made them. The write happens off
// the request goroutine; a failed count never affects the response.
func RequestLogMiddleware(logsRepo *repository.LogsRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		ua := useragent.Parse(c.Request.UserAgent())
		client := ua.Name
		if ua.OS != "" {
			client = ua.Name + "/" + ua.OS
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := logsRepo.IncrementRequestCount(ctx, method, path, client); err != nil {
				log.Printf("Failed to record request log for %s %s: %v", method, path, err)
			}
		}()

		c.Next()
	}
}
