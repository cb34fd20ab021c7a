// Package comment serves the discussion under a review
package comment

import (
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type commentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func toResponse(cm *model.Comment) commentResponse {
	return commentResponse{
		ID:      cm.ID,
		Text:    cm.Text,
		Author:  cm.Author.Username,
		PubDate: cm.PubDate,
	}
}

// parentReview resolves the review in the path. It must belong to the title in
// the path too, otherwise the review doesn't exist as far as the caller knows.
func parentReview(c *gin.Context, db *gorm.DB) (*model.Review, error) {
	tid, tok := util.UintParam(c, "title_id")
	rid, rok := util.UintParam(c, "review_id")
	if !tok || !rok {
		return nil, apperr.NotFound("Review")
	}

	var r model.Review
	err := db.WithContext(c.Request.Context()).
		Select("id", "title_id").
		Where("id = ? AND title_id = ?", rid, tid).
		Take(&r).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Review")
	}
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// load finds the comment in the path under its parent review
func load(c *gin.Context, db *gorm.DB) (*model.Comment, error) {
	r, err := parentReview(c, db)
	if err != nil {
		return nil, err
	}

	id, ok := util.UintParam(c, "comment_id")
	if !ok {
		return nil, apperr.NotFound("Comment")
	}

	return find(c, db, r.ID, id)
}

func find(c *gin.Context, db *gorm.DB, reviewID, commentID uint) (*model.Comment, error) {
	var cm model.Comment

	err := db.WithContext(c.Request.Context()).
		Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		Take(&cm).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Comment")
	}
	if err != nil {
		return nil, err
	}

	return &cm, nil
}
