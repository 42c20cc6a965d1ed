package handler

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skinprices/cache"
	"github.com/use-agent/skinprices/models"
	"github.com/use-agent/skinprices/prices"
)

// toScrapeError keeps typed errors as they are and wraps everything else
// as internal.
func toScrapeError(err error) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	return models.NewScrapeError(models.ErrCodeInternal, "internal error", err)
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeNoTableBody:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeFetch, models.ErrCodeDecode:
		return http.StatusBadGateway // 502
	case models.ErrCodeNotFound:
		return http.StatusNotFound // 404
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeRefreshBusy:
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}

// loadBook reads the book through the cache. A missing file is NOT_FOUND.
func loadBook(cc *cache.Cache, path string) (*prices.Book, *models.ScrapeError) {
	book, err := cc.Book(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, models.NewScrapeError(models.ErrCodeNotFound, "no price book yet; run a refresh", nil)
	case err != nil:
		return nil, models.NewScrapeError(models.ErrCodeInternal, "failed to load price book", err)
	}
	return book, nil
}

func abortWithError(c *gin.Context, se *models.ScrapeError) {
	c.AbortWithStatusJSON(mapErrorToStatus(se), models.ErrorResponse{Error: se.ToDetail()})
}
