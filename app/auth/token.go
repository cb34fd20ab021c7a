package auth

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type tokenBody struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

const msgBadCode = "Incorrect confirmation code"

// Token trades a confirmation code for an access token. A code works once,
// using it moves last_login_at and with it the state the code was derived from.
func Token(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data tokenBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	ctx := c.Request.Context()

	var user model.User
	err := d.DB.WithContext(ctx).
		Where("username = ?", data.Username).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.NotFound("User"))
			return
		}

		apperr.Respond(c, apperr.Internal(err))
		return
	}

	if !d.Codes.Check(&user, data.ConfirmationCode) {
		zap.L().Debug("Confirmation code rejected", zap.Uint("userID", user.ID), zap.String("requestID", requestID))
		apperr.Respond(c, apperr.Validation("confirmation_code", msgBadCode))
		return
	}

	// Always advance, two logins within the same second must still differ
	loginAt := max(d.Now().Unix(), user.LastLoginAt+1)

	r := d.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND last_login_at = ?", user.ID, user.LastLoginAt).
		Update("last_login_at", loginAt)
	if r.Error != nil {
		apperr.Respond(c, apperr.Internal(r.Error))
		return
	}

	// Someone else redeemed the same code first
	if r.RowsAffected == 0 {
		apperr.Respond(c, apperr.Validation("confirmation_code", msgBadCode))
		return
	}

	user.LastLoginAt = loginAt

	token, err := d.Tokens.Issue(&user)
	if err != nil {
		zap.L().Error("Failed to sign access token", zap.Error(err), zap.String("requestID", requestID))
		apperr.Respond(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jwt_token": token,
	})
}
