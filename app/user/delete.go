package user

import (
	"bitwise74/review-api/db"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDelete removes an account together with its reviews and comments
func UserDelete(c *gin.Context, d *internal.Deps) {
	ctx := c.Request.Context()

	u, err := findByUsername(ctx, d.DB, c.Param("username"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	err = d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return db.DeleteUser(tx, u.ID)
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	zap.L().Info("User deleted", zap.String("username", u.Username), zap.String("requestID", c.GetString("requestID")))
	c.Status(http.StatusNoContent)
}
