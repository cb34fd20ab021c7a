package user

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UserFetch(c *gin.Context, d *internal.Deps) {
	u, err := findByUsername(c.Request.Context(), d.DB, c.Param("username"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}
