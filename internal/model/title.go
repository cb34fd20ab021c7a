package model

type Title struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:256;not null;index"`
	Year        int    `gorm:"not null;index"`
	Description string

	CategoryID *uint     `gorm:"index"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL"`
	Genres     []Genre   `gorm:"many2many:title_genres"`
	Reviews    []Review  `gorm:"constraint:OnDelete:CASCADE"`

	// Average review score. Only filled by queries that aggregate it, never stored
	Rating *float64 `gorm:"->;-:migration"`
}
