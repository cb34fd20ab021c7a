package title

import (
	"bitwise74/review-api/db"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TitleDelete removes a title with every review and comment posted on it
func TitleDelete(c *gin.Context, d *internal.Deps) {
	id, ok := util.UintParam(c, "title_id")
	if !ok {
		apperr.Respond(c, apperr.NotFound("Title"))
		return
	}

	ctx := c.Request.Context()

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Take(&model.Title{}, id).Error; err != nil {
			return err
		}

		return db.DeleteTitle(tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.NotFound("Title"))
			return
		}

		apperr.Respond(c, apperr.Internal(err))
		return
	}

	zap.L().Info("Title deleted", zap.Uint("titleID", id), zap.String("requestID", c.GetString("requestID")))
	c.Status(http.StatusNoContent)
}
