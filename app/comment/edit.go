package comment

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/internal/permission"
	"bitwise74/review-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func CommentEdit(c *gin.Context, d *internal.Deps) {
	cm, err := load(c, d.DB)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	err = permission.CheckObject(permission.For(permission.Comments), c.Request.Method, middleware.CurrentUser(c), cm.AuthorID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var data textBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	err = d.DB.WithContext(c.Request.Context()).
		Model(&model.Comment{}).
		Where("id = ?", cm.ID).
		Update("text", data.Text).
		Error
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	cm.Text = data.Text
	c.JSON(http.StatusOK, toResponse(cm))
}
