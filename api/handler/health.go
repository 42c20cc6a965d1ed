package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skinprices/cache"
	"github.com/use-agent/skinprices/models"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// Reports "empty" when no readable price book exists yet; the server is
// still up and a refresh can create one.
func Health(cc *cache.Cache, path string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, entries := "healthy", 0
		if book, err := cc.Book(path); err != nil {
			status = "empty"
		} else {
			entries = book.Len()
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Entries: entries,
			Version: Version,
		})
	}
}
