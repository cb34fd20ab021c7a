// Package user serves the user directory, both the admin facing endpoints and
// the caller's own profile
package user

import (
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/validators"
	"context"
	"errors"

	"gorm.io/gorm"
)

type userResponse struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
	Role      model.Role `json:"role"`
}

func toResponse(u *model.User) userResponse {
	return userResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// editBody is a partial update, nil fields are left untouched
type editBody struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// changes validates b against u and returns the columns to update.
// The role is only considered when allowRole is set.
func (b *editBody) changes(ctx context.Context, db *gorm.DB, u *model.User, allowRole bool) (map[string]any, error) {
	updates := map[string]any{}

	if b.Username != nil && *b.Username != u.Username {
		if err := validators.UsernameValidator(*b.Username); err != nil {
			return nil, apperr.Validation("username", err.Error())
		}
		if err := ensureFree(ctx, db, "username", *b.Username, u.ID); err != nil {
			return nil, err
		}
		updates["username"] = *b.Username
	}

	if b.Email != nil && *b.Email != u.Email {
		if err := validators.EmailValidator(*b.Email); err != nil {
			return nil, apperr.Validation("email", err.Error())
		}
		if err := ensureFree(ctx, db, "email", *b.Email, u.ID); err != nil {
			return nil, err
		}
		updates["email"] = *b.Email
	}

	if b.FirstName != nil {
		updates["first_name"] = *b.FirstName
	}
	if b.LastName != nil {
		updates["last_name"] = *b.LastName
	}
	if b.Bio != nil {
		updates["bio"] = *b.Bio
	}

	if allowRole && b.Role != nil {
		role, err := model.ParseRole(*b.Role)
		if err != nil {
			return nil, apperr.Validation("role", err.Error())
		}
		updates["role"] = role
	}

	return updates, nil
}

// ensureFree fails with a validation error when another user already holds value in column
func ensureFree(ctx context.Context, db *gorm.DB, column, value string, selfID uint) error {
	var taken int64

	err := db.WithContext(ctx).
		Model(&model.User{}).
		Where(column+" = ? AND id <> ?", value, selfID).
		Count(&taken).
		Error
	if err != nil {
		return err
	}

	if taken > 0 {
		return apperr.Validation(column, "A user with this "+column+" already exists")
	}

	return nil
}

// apply writes updates to u and reloads it. Duplicate keys that slipped past
// ensureFree are reported as validation errors.
func apply(ctx context.Context, db *gorm.DB, u *model.User, updates map[string]any) error {
	if len(updates) > 0 {
		err := db.WithContext(ctx).Model(u).Updates(updates).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Validation("username", "A user with this username or email already exists")
		}
		if err != nil {
			return err
		}
	}

	return db.WithContext(ctx).First(u, u.ID).Error
}

func findByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	var u model.User

	err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}
