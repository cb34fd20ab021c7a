package user

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UserEdit(c *gin.Context, d *internal.Deps) {
	ctx := c.Request.Context()

	u, err := findByUsername(ctx, d.DB, c.Param("username"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var data editBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	updates, err := data.changes(ctx, d.DB, u, true)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := apply(ctx, d.DB, u, updates); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}
