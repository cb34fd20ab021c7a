package catalog

import (
	"bitwise74/review-api/db"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/model"

	"github.com/gin-gonic/gin"
)

func GenreList(c *gin.Context, d *internal.Deps) {
	list[model.Genre](c, d)
}

func GenreCreate(c *gin.Context, d *internal.Deps) {
	create(c, d, GenreListKey, func(name, slug string) model.Genre {
		return model.Genre{Name: name, Slug: slug}
	})
}

// GenreDelete removes a genre and its links to titles
func GenreDelete(c *gin.Context, d *internal.Deps) {
	remove[model.Genre](c, d, "Genre", GenreListKey, db.DeleteGenre)
}
