package title

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// filters turns the ?genre=, ?category=, ?name= and ?year= query parameters into a scope
func filters(c *gin.Context) (func(*gorm.DB) *gorm.DB, error) {
	genre := c.Query("genre")
	category := c.Query("category")
	name := strings.TrimSpace(c.Query("name"))

	var year *int
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return nil, apperr.Validation("year", "Enter a whole number")
		}
		year = &y
	}

	return func(db *gorm.DB) *gorm.DB {
		if genre != "" {
			db = db.Where("titles.id IN (SELECT title_genres.title_id FROM title_genres "+
				"JOIN genres ON genres.id = title_genres.genre_id WHERE genres.slug = ?)", genre)
		}

		if category != "" {
			db = db.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", category)
		}

		if name != "" {
			db = db.Where("LOWER(titles.name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}

		if year != nil {
			db = db.Where("titles.year = ?", *year)
		}

		return db
	}, nil
}

// TitleList returns titles newest first with their current rating
func TitleList(c *gin.Context, d *internal.Deps) {
	page, err := util.ParsePage(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	scope, err := filters(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()

	var out util.List[titleResponse]
	if err := d.DB.WithContext(ctx).Model(&model.Title{}).Scopes(scope).Count(&out.Count).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	var titles []model.Title
	err = withRating(d.DB.WithContext(ctx)).
		Scopes(scope, page.Scope).
		Order("titles.year DESC, titles.id").
		Find(&titles).
		Error
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	out.Results = make([]titleResponse, 0, len(titles))
	for i := range titles {
		out.Results = append(out.Results, toResponse(&titles[i]))
	}

	c.JSON(http.StatusOK, out)
}
