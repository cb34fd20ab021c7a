package user

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func MeFetch(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, toResponse(middleware.CurrentUser(c)))
}

// MeEdit updates the caller's own profile. A role in the payload is ignored,
// nobody promotes themselves through this route.
func MeEdit(c *gin.Context, d *internal.Deps) {
	u := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var data editBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	updates, err := data.changes(ctx, d.DB, u, false)
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
