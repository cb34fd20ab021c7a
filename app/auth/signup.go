package auth

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/internal/service"
	"bitwise74/review-api/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type signupBody struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// Signup registers a user, or finds the one already registered under exactly this
// username and email, and mails it a fresh confirmation code
func Signup(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data signupBody
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

	ctx := c.Request.Context()

	var matches []model.User
	err := d.DB.WithContext(ctx).
		Where("username = ? OR email = ?", data.Username, data.Email).
		Find(&matches).
		Error
	if err != nil {
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	var user *model.User
	fields := map[string]string{}

	for i := range matches {
		m := &matches[i]

		switch {
		case m.Username == data.Username && m.Email == data.Email:
			user = m
		case m.Username == data.Username:
			fields["username"] = "A user with this username already exists"
		default:
			fields["email"] = "A user with this email already exists"
		}
	}

	if len(fields) > 0 {
		apperr.Respond(c, apperr.ValidationFields(fields))
		return
	}

	created := user == nil
	if created {
		user = &model.User{
			Username: data.Username,
			Email:    data.Email,
			Role:     model.RoleUser,
		}

		if err := d.DB.WithContext(ctx).Create(user).Error; err != nil {
			// Lost a race against another signup with the same username or email
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperr.Respond(c, apperr.Validation("username", "A user with this username or email already exists"))
				return
			}

			apperr.Respond(c, apperr.Internal(err))
			return
		}

		zap.L().Info("User registered", zap.Uint("userID", user.ID), zap.String("requestID", requestID))
	}

	code := d.Codes.Make(user)

	if err := d.Mailer.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		if errors.Is(err, service.ErrRecipientIsSender) {
			// The address can never receive a code, don't keep an account bound to it
			if created {
				if err := d.DB.WithContext(ctx).Delete(&model.User{}, user.ID).Error; err != nil {
					zap.L().Error("Failed to remove unreachable user", zap.Error(err), zap.String("requestID", requestID))
				}
			}

			apperr.Respond(c, apperr.Validation("email", "This email address can't be used"))
			return
		}

		zap.L().Error("Failed to send confirmation code", zap.Error(err), zap.String("requestID", requestID))
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}
