package comment

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
)

func CommentFetch(c *gin.Context, d *internal.Deps) {
	cm, err := load(c, d.DB)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(cm))
}
