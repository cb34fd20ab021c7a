package review

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/internal/permission"
	"bitwise74/review-api/pkg/middleware"
	"bitwise74/review-api/validators"
	"net/http"

	"github.com/gin-gonic/gin"
)

type editBody struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewEdit changes the text or score of a review. Only its author and staff
// may do so, the one review per title rule doesn't apply to edits.
func ReviewEdit(c *gin.Context, d *internal.Deps) {
	r, err := load(c, d.DB)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	err = permission.CheckObject(permission.For(permission.Reviews), c.Request.Method, middleware.CurrentUser(c), r.AuthorID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var data editBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	updates := map[string]any{}

	if data.Text != nil {
		if *data.Text == "" {
			apperr.Respond(c, apperr.Validation("text", "This field may not be blank"))
			return
		}
		updates["text"] = *data.Text
	}

	if data.Score != nil {
		if err := validators.ScoreValidator(*data.Score); err != nil {
			apperr.Respond(c, apperr.Validation("score", err.Error()))
			return
		}
		updates["score"] = *data.Score
	}

	ctx := c.Request.Context()

	if len(updates) > 0 {
		if err := d.DB.WithContext(ctx).Model(&model.Review{}).Where("id = ?", r.ID).Updates(updates).Error; err != nil {
			apperr.Respond(c, apperr.Internal(err))
			return
		}
	}

	r, err = find(ctx, d.DB, r.TitleID, r.ID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(r))
}
