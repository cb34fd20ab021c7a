package util

import (
	"bitwise74/review-api/internal/apperr"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var validLimits = []int{10, 20, 50, 100}

type Page struct {
	Limit  int
	Number int
}

// List is the envelope every paginated endpoint answers with
type List[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

// ParsePage reads the 0-based ?page= and ?limit= query parameters
func ParsePage(c *gin.Context) (Page, error) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || !slices.Contains(validLimits, limit) {
		return Page{}, apperr.Validation("limit", "Invalid limit provided")
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		return Page{}, apperr.Validation("page", "Invalid page provided")
	}

	return Page{Limit: limit, Number: page}, nil
}

// Scope applies the page window to a query
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Number * p.Limit).Limit(p.Limit)
}
