package review

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ReviewList(c *gin.Context, d *internal.Deps) {
	tid, err := titleID(c, d.DB)
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

	var out util.List[reviewResponse]
	if err := d.DB.WithContext(ctx).Model(&model.Review{}).Where("title_id = ?", tid).Count(&out.Count).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	var reviews []model.Review
	err = d.DB.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", tid).
		Scopes(page.Scope).
		Order("pub_date DESC, id DESC").
		Find(&reviews).
		Error
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	out.Results = make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out.Results = append(out.Results, toResponse(&reviews[i]))
	}

	c.JSON(http.StatusOK, out)
}
