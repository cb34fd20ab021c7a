package comment

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

func CommentList(c *gin.Context, d *internal.Deps) {
	r, err := parentReview(c, d.DB)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	page, err := util.ParsePage(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()

	var out util.List[commentResponse]
	if err := d.DB.WithContext(ctx).Model(&model.Comment{}).Where("review_id = ?", r.ID).Count(&out.Count).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	var comments []model.Comment
	err = d.DB.WithContext(ctx).
		Preload("Author").
		Where("review_id = ?", r.ID).
		Scopes(page.Scope).
		Order("pub_date, id").
		Find(&comments).
		Error
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	out.Results = make([]commentResponse, 0, len(comments))
	for i := range comments {
		out.Results = append(out.Results, toResponse(&comments[i]))
	}

	c.JSON(http.StatusOK, out)
}
