package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/skinprices/cache"
	"github.com/use-agent/skinprices/models"
	"github.com/use-agent/skinprices/prices"
)

const maxSuggestions = 5

// ListPrices returns a handler for GET /api/v1/prices.
// The optional "champion" query narrows the result to one champion's skins.
func ListPrices(cc *cache.Cache, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		book, se := loadBook(cc, path)
		if se != nil {
			abortWithError(c, se)
			return
		}

		if champion := c.Query("champion"); champion != "" {
			filtered := prices.NewBook()
			for _, key := range prices.Champion(book, champion) {
				price, _ := book.Get(key)
				filtered.Set(key, price)
			}
			book = filtered
		}

		raw, err := book.MarshalJSON()
		if err != nil {
			abortWithError(c, toScrapeError(err))
			return
		}
		c.JSON(http.StatusOK, models.PricesResponse{
			Success: true,
			Count:   book.Len(),
			Prices:  raw,
		})
	}
}

// GetPrice returns a handler for GET /api/v1/prices/:key.
func GetPrice(cc *cache.Cache, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondLookup(c, cc, path, strings.ToLower(c.Param("key")))
	}
}

// Lookup returns a handler for GET /api/v1/lookup?champion=&skin=.
// The key is derived the same way the scraper derives it.
func Lookup(cc *cache.Cache, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		champion, skin := c.Query("champion"), c.Query("skin")
		if champion == "" || skin == "" {
			abortWithError(c, models.NewScrapeError(models.ErrCodeInvalidInput, "champion and skin are required", nil))
			return
		}
		respondLookup(c, cc, path, prices.Key(champion, skin))
	}
}

func respondLookup(c *gin.Context, cc *cache.Cache, path, key string) {
	book, se := loadBook(cc, path)
	if se != nil {
		abortWithError(c, se)
		return
	}

	if price, ok := book.Get(key); ok {
		c.JSON(http.StatusOK, models.PriceResponse{Success: true, Key: key, Price: price})
		return
	}
	c.JSON(http.StatusNotFound, models.PriceResponse{
		Key:         key,
		Suggestions: prices.Suggest(book, key, maxSuggestions),
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeNotFound,
			Message: "no price for " + key,
		},
	})
}
