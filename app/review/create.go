package review

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/middleware"
	"bitwise74/review-api/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgAlreadyReviewed = "You have already reviewed this title"

type createBody struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

// ReviewCreate posts the caller's review of a title. Title and author come
// from the path and the token, a user gets one review per title.
func ReviewCreate(c *gin.Context, d *internal.Deps) {
	tid, err := titleID(c, d.DB)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	if err := validators.ScoreValidator(*data.Score); err != nil {
		apperr.Respond(c, apperr.Validation("score", err.Error()))
		return
	}

	author := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var existing int64
	err = d.DB.WithContext(ctx).
		Model(&model.Review{}).
		Where("title_id = ? AND author_id = ?", tid, author.ID).
		Count(&existing).
		Error
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	if existing > 0 {
		apperr.Respond(c, apperr.Validation("non_field_errors", msgAlreadyReviewed))
		return
	}

	r := model.Review{
		TitleID:  tid,
		AuthorID: author.ID,
		Text:     data.Text,
		Score:    *data.Score,
	}

	if err := d.DB.WithContext(ctx).Omit(clause.Associations).Create(&r).Error; err != nil {
		// The unique index caught a concurrent duplicate
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperr.Respond(c, apperr.Validation("non_field_errors", msgAlreadyReviewed))
			return
		}

		apperr.Respond(c, apperr.Internal(err))
		return
	}

	r.Author = *author
	c.JSON(http.StatusCreated, toResponse(&r))
}
