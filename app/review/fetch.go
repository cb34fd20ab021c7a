package review

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ReviewFetch(c *gin.Context, d *internal.Deps) {
	r, err := load(c, d.DB)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(r))
}
