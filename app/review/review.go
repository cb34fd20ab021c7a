// Package review serves the reviews posted on a title
package review

import (
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/util"
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type reviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func toResponse(r *model.Review) reviewResponse {
	return reviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

// titleID reads the title from the path and makes sure it exists
func titleID(c *gin.Context, db *gorm.DB) (uint, error) {
	id, ok := util.UintParam(c, "title_id")
	if !ok {
		return 0, apperr.NotFound("Title")
	}

	var n int64
	if err := db.WithContext(c.Request.Context()).Model(&model.Title{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, apperr.NotFound("Title")
	}

	return id, nil
}

// load finds a review only if it belongs to the title in the path
func load(c *gin.Context, db *gorm.DB) (*model.Review, error) {
	tid, tok := util.UintParam(c, "title_id")
	rid, rok := util.UintParam(c, "review_id")
	if !tok || !rok {
		return nil, apperr.NotFound("Review")
	}

	return find(c.Request.Context(), db, tid, rid)
}

func find(ctx context.Context, db *gorm.DB, titleID, reviewID uint) (*model.Review, error) {
	var r model.Review

	err := db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
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
