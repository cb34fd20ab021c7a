package title

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/validators"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createBody struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	Category    string   `json:"category"`
}

func TitleCreate(c *gin.Context, d *internal.Deps) {
	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	if err := validators.YearValidator(*data.Year, d.Now()); err != nil {
		apperr.Respond(c, apperr.Validation("year", err.Error()))
		return
	}

	ctx := c.Request.Context()
	t := model.Title{
		Name:        data.Name,
		Year:        *data.Year,
		Description: data.Description,
	}

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := resolveGenres(tx, data.Genre)
		if err != nil {
			return err
		}

		t.CategoryID, err = resolveCategory(tx, data.Category)
		if err != nil {
			return err
		}

		if err := tx.Omit("Category", "Genres", "Reviews").Create(&t).Error; err != nil {
			return err
		}

		return linkGenres(tx, t.ID, genres)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	created, err := load(ctx, d.DB, t.ID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(created))
}
