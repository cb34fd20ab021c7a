package comment

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type textBody struct {
	Text string `json:"text" binding:"required"`
}

func CommentCreate(c *gin.Context, d *internal.Deps) {
	r, err := parentReview(c, d.DB)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var data textBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	author := middleware.CurrentUser(c)
	cm := model.Comment{
		ReviewID: r.ID,
		TitleID:  r.TitleID,
		AuthorID: author.ID,
		Text:     data.Text,
	}

	if err := d.DB.WithContext(c.Request.Context()).Omit(clause.Associations).Create(&cm).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	cm.Author = *author
	c.JSON(http.StatusCreated, toResponse(&cm))
}
