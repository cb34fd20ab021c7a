package review

import (
	"bitwise74/review-api/db"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/permission"
	"bitwise74/review-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReviewDelete removes a review and its comments
func ReviewDelete(c *gin.Context, d *internal.Deps) {
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

	err = d.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return db.DeleteReview(tx, r.ID)
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	c.Status(http.StatusNoContent)
}
