package catalog

import (
	"bitwise74/review-api/db"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/model"

	"github.com/gin-gonic/gin"
)

func CategoryList(c *gin.Context, d *internal.Deps) {
	list[model.Category](c, d)
}

func CategoryCreate(c *gin.Context, d *internal.Deps) {
	create(c, d, CategoryListKey, func(name, slug string) model.Category {
		return model.Category{Name: name, Slug: slug}
	})
}

// CategoryDelete removes a category. Titles in it stay, without a category.
func CategoryDelete(c *gin.Context, d *internal.Deps) {
	remove[model.Category](c, d, "Category", CategoryListKey, db.DeleteCategory)
}
