package model

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"size:256;not null;index" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"size:256;not null;index" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
}
