// Package title serves the title catalog along with the review based rating
package title

import (
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
)

type titleResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Rating      *int            `json:"rating"`
	Description string          `json:"description"`
	Genre       []model.Genre   `json:"genre"`
	Category    *model.Category `json:"category"`
}

func toResponse(t *model.Title) titleResponse {
	r := titleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       t.Genres,
		Category:    t.Category,
	}

	if r.Genre == nil {
		r.Genre = []model.Genre{}
	}

	// Whole points only, the fraction is dropped
	if t.Rating != nil {
		v := int(*t.Rating)
		r.Rating = &v
	}

	return r
}

// withRating selects titles together with the average score of their reviews
func withRating(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Title{}).
		Select("titles.*, CAST(AVG(reviews.score) AS FLOAT) AS rating").
		Joins("LEFT JOIN reviews ON reviews.title_id = titles.id").
		Group("titles.id").
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name")
		})
}

func load(ctx context.Context, db *gorm.DB, id uint) (*model.Title, error) {
	var t model.Title

	err := withRating(db.WithContext(ctx)).Where("titles.id = ?", id).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Title")
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// resolveGenres maps genre slugs to rows, any unknown slug is a validation error
func resolveGenres(tx *gorm.DB, slugs []string) ([]model.Genre, error) {
	slugs = slices.Compact(slices.Sorted(slices.Values(slugs)))
	if len(slugs) == 0 {
		return nil, nil
	}

	var genres []model.Genre
	if err := tx.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}

	if len(genres) != len(slugs) {
		for _, s := range slugs {
			if !slices.ContainsFunc(genres, func(g model.Genre) bool { return g.Slug == s }) {
				return nil, apperr.Validation("genre", "Unknown genre "+s)
			}
		}
	}

	return genres, nil
}

// resolveCategory maps a category slug to its ID. An empty slug means no category.
func resolveCategory(tx *gorm.DB, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}

	var cat model.Category
	err := tx.Where("slug = ?", slug).Take(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("category", "Unknown category "+slug)
	}
	if err != nil {
		return nil, err
	}

	return &cat.ID, nil
}

// linkGenres replaces the genre set of a title
func linkGenres(tx *gorm.DB, titleID uint, genres []model.Genre) error {
	if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", titleID).Error; err != nil {
		return err
	}

	if len(genres) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, map[string]any{"title_id": titleID, "genre_id": g.ID})
	}

	return tx.Table("title_genres").Create(rows).Error
}
