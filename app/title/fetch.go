package title

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

func TitleFetch(c *gin.Context, d *internal.Deps) {
	id, ok := util.UintParam(c, "title_id")
	if !ok {
		apperr.Respond(c, apperr.NotFound("Title"))
		return
	}

	t, err := load(c.Request.Context(), d.DB, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(t))
}
