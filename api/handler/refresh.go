package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skinprices/cache"
	"github.com/use-agent/skinprices/models"
	"github.com/use-agent/skinprices/scraper"
)

// Runner performs one scrape and reports where it wrote the book.
type Runner interface {
	Run(ctx context.Context) (*scraper.Result, error)
	OutputPath() string
}

// Refresh returns a handler for POST /api/v1/refresh.
//
// Runs never overlap: a request arriving while one is in flight gets 409
// instead of waiting.
func Refresh(r Runner, cc *cache.Cache) gin.HandlerFunc {
	var mu sync.Mutex
	return func(c *gin.Context) {
		if !mu.TryLock() {
			se := models.NewScrapeError(models.ErrCodeRefreshBusy, "a refresh is already running", nil)
			c.JSON(mapErrorToStatus(se), models.RefreshResponse{Error: se.ToDetail()})
			return
		}
		defer mu.Unlock()

		res, err := r.Run(c.Request.Context())
		if err != nil {
			se := toScrapeError(err)
			slog.Warn("refresh failed", "code", se.Code, "error", err)
			c.JSON(mapErrorToStatus(se), models.RefreshResponse{
				Path:  r.OutputPath(),
				Error: se.ToDetail(),
			})
			return
		}
		cc.Invalidate(res.Path)

		c.JSON(http.StatusOK, models.RefreshResponse{
			Success:     true,
			Count:       res.Count,
			Path:        res.Path,
			Engine:      res.Engine,
			Fingerprint: fmt.Sprintf("%016x", res.Fingerprint),
			DurationMs:  res.Duration.Milliseconds(),
		})
	}
}
