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

func CommentDelete(c *gin.Context, d *internal.Deps) {
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

	if err := d.DB.WithContext(c.Request.Context()).Delete(&model.Comment{}, cm.ID).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	c.Status(http.StatusNoContent)
}
