package model

import "time"

// Review is a user's scored opinion of a title. A user may review a given title once,
// which the idx_review_author_title unique index enforces at the storage level
type Review struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	TitleID  uint      `gorm:"not null;uniqueIndex:idx_review_author_title,priority:2"`
	AuthorID uint      `gorm:"not null;uniqueIndex:idx_review_author_title,priority:1"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"not null"`
	Score    int       `gorm:"not null;check:chk_reviews_score,score >= 1 AND score <= 10"`
	PubDate  time.Time `gorm:"autoCreateTime;index"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE"`
}
