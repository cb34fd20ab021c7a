package user

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func UserList(c *gin.Context, d *internal.Deps) {
	page, err := util.ParsePage(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	query := d.DB.WithContext(c.Request.Context()).Model(&model.User{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	query = query.Session(&gorm.Session{})

	var out util.List[userResponse]
	if err := query.Count(&out.Count).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	var users []model.User
	err = query.
		Scopes(page.Scope).
		Order("username").
		Find(&users).
		Error
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	out.Results = make([]userResponse, 0, len(users))
	for i := range users {
		out.Results = append(out.Results, toResponse(&users[i]))
	}

	c.JSON(http.StatusOK, out)
}
