package middleware

import (
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/permission"

	"github.com/gin-gonic/gin"
)

// RequirePolicy runs the request phase of p. The object phase is left to the
// handler because only it knows which entity is being touched.
func RequirePolicy(p permission.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := permission.Check(p, c.Request.Method, CurrentUser(c)); err != nil {
			apperr.Respond(c, err)
			return
		}

		c.Next()
	}
}

// RequireResource is RequirePolicy with the policy registered for r
func RequireResource(r permission.Resource) gin.HandlerFunc {
	return RequirePolicy(permission.For(r))
}
