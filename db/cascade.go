package db

import (
	"bitwise74/review-api/internal/model"

	"gorm.io/gorm"
)

// The functions below remove an entity together with everything it owns. They
// must be called with a transaction handle so a failure leaves nothing half
// deleted. Postgres carries matching ON DELETE constraints, sqlite doesn't
// enforce foreign keys by default, so the cascade is always spelled out here.

// DeleteReview removes a review and its comments
func DeleteReview(tx *gorm.DB, reviewID uint) error {
	if err := tx.Where("review_id = ?", reviewID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}

	return tx.Delete(&model.Review{}, reviewID).Error
}

// DeleteTitle removes a title, its reviews, their comments and its genre links
func DeleteTitle(tx *gorm.DB, titleID uint) error {
	if err := tx.Where("title_id = ?", titleID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}

	if err := tx.Where("title_id = ?", titleID).Delete(&model.Review{}).Error; err != nil {
		return err
	}

	if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", titleID).Error; err != nil {
		return err
	}

	return tx.Delete(&model.Title{}, titleID).Error
}

// DeleteUser removes an account along with the reviews and comments it authored.
// Comments other people left under the user's reviews go with those reviews.
func DeleteUser(tx *gorm.DB, userID uint) error {
	ownReviews := tx.Model(&model.Review{}).Select("id").Where("author_id = ?", userID)

	if err := tx.Where("review_id IN (?) OR author_id = ?", ownReviews, userID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}

	if err := tx.Where("author_id = ?", userID).Delete(&model.Review{}).Error; err != nil {
		return err
	}

	return tx.Delete(&model.User{}, userID).Error
}

// DeleteCategory removes a category, titles that used it are left without one
func DeleteCategory(tx *gorm.DB, categoryID uint) error {
	err := tx.Model(&model.Title{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).
		Error
	if err != nil {
		return err
	}

	return tx.Delete(&model.Category{}, categoryID).Error
}

// DeleteGenre removes a genre and unlinks it from every title
func DeleteGenre(tx *gorm.DB, genreID uint) error {
	if err := tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", genreID).Error; err != nil {
		return err
	}

	return tx.Delete(&model.Genre{}, genreID).Error
}
