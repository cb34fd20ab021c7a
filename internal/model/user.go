// Package model defines database models
package model

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"uniqueIndex;size:150;not null"`
	Email     string `gorm:"uniqueIndex;size:254;not null"`
	Role      Role   `gorm:"size:16;not null;default:user"`
	Bio       string
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	// Unix seconds of the last successful token exchange, 0 if never.
	// Part of the confirmation code derivation, bumping it revokes outstanding codes.
	LastLoginAt int64 `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role.AtLeast(RoleAdmin)
}

func (u *User) IsModerator() bool {
	return u != nil && u.Role.AtLeast(RoleModerator)
}
