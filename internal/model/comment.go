package model

import "time"

type Comment struct {
	ID       uint `gorm:"primaryKey;autoIncrement"`
	ReviewID uint `gorm:"not null;index"`
	// Denormalized from the review so comments can be scoped by title without a join
	TitleID  uint      `gorm:"not null;index"`
	AuthorID uint      `gorm:"not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"not null"`
	PubDate  time.Time `gorm:"autoCreateTime;index"`
}
