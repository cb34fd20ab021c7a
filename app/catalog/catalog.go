// Package catalog serves categories and genres. Both are plain slug/name
// pairs that anyone can read and only admins can change.
package catalog

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"bitwise74/review-api/validators"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Keys naming each list in the list cache
const (
	CategoryListKey = "categories"
	GenreListKey    = "genres"
)

type entry interface {
	model.Category | model.Genre
}

type createBody struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

func list[T entry](c *gin.Context, d *internal.Deps) {
	page, err := util.ParsePage(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	query := d.DB.WithContext(c.Request.Context()).Model(new(T))
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	query = query.Session(&gorm.Session{})

	var out util.List[T]
	if err := query.Count(&out.Count).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	out.Results = []T{}
	if err := query.Scopes(page.Scope).Order("name, id").Find(&out.Results).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, out)
}

func create[T entry](c *gin.Context, d *internal.Deps, listKey string, build func(name, slug string) T) {
	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	if err := validators.SlugValidator(data.Slug); err != nil {
		apperr.Respond(c, apperr.Validation("slug", err.Error()))
		return
	}

	ctx := c.Request.Context()

	var taken int64
	if err := d.DB.WithContext(ctx).Model(new(T)).Where("slug = ?", data.Slug).Count(&taken).Error; err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	if taken > 0 {
		apperr.Respond(c, apperr.Validation("slug", "This slug is already in use"))
		return
	}

	item := build(data.Name, data.Slug)
	if err := d.DB.WithContext(ctx).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperr.Respond(c, apperr.Validation("slug", "This slug is already in use"))
			return
		}

		apperr.Respond(c, apperr.Internal(err))
		return
	}

	d.Lists.Invalidate(listKey)
	c.JSON(http.StatusCreated, item)
}

// remove looks the entry up by the slug in the path, then hands its ID to
// cascade inside a transaction
func remove[T entry](c *gin.Context, d *internal.Deps, resource, listKey string, cascade func(tx *gorm.DB, id uint) error) {
	ctx := c.Request.Context()

	var id uint
	err := d.DB.WithContext(ctx).
		Model(new(T)).
		Select("id").
		Where("slug = ?", c.Param("slug")).
		Take(&id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.NotFound(resource))
			return
		}

		apperr.Respond(c, apperr.Internal(err))
		return
	}

	err = d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return cascade(tx, id)
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	d.Lists.Invalidate(listKey)
	c.Status(http.StatusNoContent)
}
