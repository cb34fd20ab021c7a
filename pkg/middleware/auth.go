package middleware

import (
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/pkg/security"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userKey = "user"

// NewAuthMiddleware resolves the caller from an optional "Authorization: Bearer" header.
// Requests without the header continue anonymously, a header carrying a bad token is
// rejected outright. The user row is loaded on every request so role changes and
// deleted accounts take effect immediately.
func NewAuthMiddleware(db *gorm.DB, tokens *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || tokenStr == "" {
			apperr.Respond(c, apperr.Unauthenticated("Invalid authorization header format"))
			return
		}

		userID, err := tokens.Parse(tokenStr)
		if err != nil {
			msg := "Authorization token invalid"
			if errors.Is(err, security.ErrTokenExpired) {
				msg = "Authorization token expired. Please log in again"
			}

			apperr.Respond(c, apperr.Unauthenticated(msg))
			return
		}

		var user model.User
		err = db.WithContext(c.Request.Context()).First(&user, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.Unauthenticated("User not found"))
				return
			}

			zap.L().Error("Failed to load authenticated user", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
			apperr.Respond(c, apperr.Internal(err))
			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// CurrentUser returns the authenticated caller or nil for anonymous requests
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}

	u, _ := v.(*model.User)
	return u
}
