package title

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"bitwise74/review-api/validators"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// editBody is a partial update. A nil Genre keeps the current genres, an empty
// list clears them. An empty Category removes the title from its category.
type editBody struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

func TitleEdit(c *gin.Context, d *internal.Deps) {
	id, ok := util.UintParam(c, "title_id")
	if !ok {
		apperr.Respond(c, apperr.NotFound("Title"))
		return
	}

	ctx := c.Request.Context()

	if _, err := load(ctx, d.DB, id); err != nil {
		apperr.Respond(c, err)
		return
	}

	var data editBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	updates := map[string]any{}

	if data.Name != nil {
		if *data.Name == "" {
			apperr.Respond(c, apperr.Validation("name", "This field may not be blank"))
			return
		}
		updates["name"] = *data.Name
	}

	if data.Year != nil {
		if err := validators.YearValidator(*data.Year, d.Now()); err != nil {
			apperr.Respond(c, apperr.Validation("year", err.Error()))
			return
		}
		updates["year"] = *data.Year
	}

	if data.Description != nil {
		updates["description"] = *data.Description
	}

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if data.Category != nil {
			catID, err := resolveCategory(tx, *data.Category)
			if err != nil {
				return err
			}
			updates["category_id"] = catID
		}

		if len(updates) > 0 {
			if err := tx.Model(&model.Title{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if data.Genre == nil {
			return nil
		}

		genres, err := resolveGenres(tx, data.Genre)
		if err != nil {
			return err
		}

		return linkGenres(tx, id, genres)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	t, err := load(ctx, d.DB, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(t))
}
