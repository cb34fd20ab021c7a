package user

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type createBody struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UserCreate lets an admin create an account directly. The new user gets a
// confirmation code later by signing up with the same username and email.
func UserCreate(c *gin.Context, d *internal.Deps) {
	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		apperr.Respond(c, apperr.Validation("username", err.Error()))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		apperr.Respond(c, apperr.Validation("email", err.Error()))
		return
	}

	role := model.RoleUser
	if data.Role != "" {
		r, err := model.ParseRole(data.Role)
		if err != nil {
			apperr.Respond(c, apperr.Validation("role", err.Error()))
			return
		}
		role = r
	}

	ctx := c.Request.Context()

	if err := ensureFree(ctx, d.DB, "username", data.Username, 0); err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := ensureFree(ctx, d.DB, "email", data.Email, 0); err != nil {
		apperr.Respond(c, err)
		return
	}

	u := model.User{
		Username:  data.Username,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Bio:       data.Bio,
		Role:      role,
	}

	if err := d.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperr.Respond(c, apperr.Validation("username", "A user with this username or email already exists"))
			return
		}

		apperr.Respond(c, apperr.Internal(err))
		return
	}

	zap.L().Info("User created by admin",
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
		zap.String("requestID", c.GetString("requestID")),
	)

	c.JSON(http.StatusCreated, toResponse(&u))
}
