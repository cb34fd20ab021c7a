package app

import (
	"bitwise74/review-api/app/auth"
	"bitwise74/review-api/app/catalog"
	"bitwise74/review-api/app/comment"
	"bitwise74/review-api/app/review"
	"bitwise74/review-api/app/title"
	"bitwise74/review-api/app/user"
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/permission"
	"bitwise74/review-api/pkg/middleware"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options carries the transport level settings of the router. The zero value
// gives a bare router with no limits and no CORS. List caching lives in
// Deps.Lists so the handlers that write can invalidate it.
type Options struct {
	CORSOrigins []string
	RateLimit   middleware.RateLimiterConfig
	// Maximum request body size in bytes, 0 disables the limit
	BodyLimit int64
	Turnstile middleware.TurnstileConfig
}

func NewRouter(d *internal.Deps, o Options) *gin.Engine {
	apperr.UseJSONFieldNames()

	router := gin.New()

	if len(o.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     o.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.Use(
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == http.MethodHead
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if u := middleware.CurrentUser(c); u != nil {
					fields = append(fields, zap.String("user", u.Username))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	base := []gin.HandlerFunc{middleware.RateLimiterMiddleware(o.RateLimit)}
	if o.BodyLimit > 0 {
		base = append(base, middleware.BodySizeLimiter(o.BodyLimit))
	}
	base = append(base, middleware.NewAuthMiddleware(d.DB, d.Tokens))

	turnstile := middleware.NewTurnstileMiddleware(o.Turnstile)

	v1 := router.Group("/v1", base...)
	{
		// HEAD /v1/heartbeat		-> Used to check if the server is alive
		v1.HEAD("/heartbeat", func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	a := v1.Group("/auth")
	{
		// POST /v1/auth/signup/	-> Creates an account if needed and mails a confirmation code
		a.POST("/signup/", turnstile, func(c *gin.Context) { auth.Signup(c, d) })

		// POST /v1/auth/token/		-> Exchanges a confirmation code for an access token
		a.POST("/token/", func(c *gin.Context) { auth.Token(c, d) })
	}

	me := v1.Group("/users/me", middleware.RequireResource(permission.Me))
	{
		// GET /v1/users/me/		-> Returns the caller's profile
		me.GET("/", func(c *gin.Context) { user.MeFetch(c, d) })

		// PATCH /v1/users/me/		-> Edits the caller's profile, the role can't be changed here
		me.PATCH("/", func(c *gin.Context) { user.MeEdit(c, d) })
	}

	u := v1.Group("/users", middleware.RequireResource(permission.Users))
	{
		// GET /v1/users/		-> Lists users, ?search= matches usernames
		u.GET("/", func(c *gin.Context) { user.UserList(c, d) })

		// POST /v1/users/		-> Creates a user with any role
		u.POST("/", func(c *gin.Context) { user.UserCreate(c, d) })

		// GET /v1/users/:username/	-> Returns a user
		u.GET("/:username/", func(c *gin.Context) { user.UserFetch(c, d) })

		// PATCH /v1/users/:username/	-> Edits a user
		u.PATCH("/:username/", func(c *gin.Context) { user.UserEdit(c, d) })

		// DELETE /v1/users/:username/	-> Deletes a user with everything they wrote
		u.DELETE("/:username/", func(c *gin.Context) { user.UserDelete(c, d) })
	}

	cat := v1.Group("/categories", middleware.RequireResource(permission.Categories))
	{
		// GET /v1/categories/		-> Lists categories, ?search= matches names
		cat.GET("/", d.Lists.Middleware(catalog.CategoryListKey), func(c *gin.Context) { catalog.CategoryList(c, d) })

		// POST /v1/categories/		-> Creates a category
		cat.POST("/", func(c *gin.Context) { catalog.CategoryCreate(c, d) })

		// DELETE /v1/categories/:slug/	-> Deletes a category, its titles are kept
		cat.DELETE("/:slug/", func(c *gin.Context) { catalog.CategoryDelete(c, d) })
	}

	gen := v1.Group("/genres", middleware.RequireResource(permission.Genres))
	{
		// GET /v1/genres/		-> Lists genres, ?search= matches names
		gen.GET("/", d.Lists.Middleware(catalog.GenreListKey), func(c *gin.Context) { catalog.GenreList(c, d) })

		// POST /v1/genres/		-> Creates a genre
		gen.POST("/", func(c *gin.Context) { catalog.GenreCreate(c, d) })

		// DELETE /v1/genres/:slug/	-> Deletes a genre and unlinks it from titles
		gen.DELETE("/:slug/", func(c *gin.Context) { catalog.GenreDelete(c, d) })
	}

	t := v1.Group("/titles", middleware.RequireResource(permission.Titles))
	{
		// GET /v1/titles/		-> Lists titles, filterable by genre, category, name and year
		t.GET("/", func(c *gin.Context) { title.TitleList(c, d) })

		// POST /v1/titles/		-> Creates a title
		t.POST("/", func(c *gin.Context) { title.TitleCreate(c, d) })

		// GET /v1/titles/:title_id/	-> Returns a title with its rating
		t.GET("/:title_id/", func(c *gin.Context) { title.TitleFetch(c, d) })

		// PATCH /v1/titles/:title_id/	-> Edits a title
		t.PATCH("/:title_id/", func(c *gin.Context) { title.TitleEdit(c, d) })

		// DELETE /v1/titles/:title_id/	-> Deletes a title with its reviews and comments
		t.DELETE("/:title_id/", func(c *gin.Context) { title.TitleDelete(c, d) })
	}

	r := v1.Group("/titles/:title_id/reviews", middleware.RequireResource(permission.Reviews))
	{
		r.GET("/", func(c *gin.Context) { review.ReviewList(c, d) })
		r.POST("/", func(c *gin.Context) { review.ReviewCreate(c, d) })
		r.GET("/:review_id/", func(c *gin.Context) { review.ReviewFetch(c, d) })
		r.PATCH("/:review_id/", func(c *gin.Context) { review.ReviewEdit(c, d) })
		r.DELETE("/:review_id/", func(c *gin.Context) { review.ReviewDelete(c, d) })
	}

	cm := v1.Group("/titles/:title_id/reviews/:review_id/comments", middleware.RequireResource(permission.Comments))
	{
		cm.GET("/", func(c *gin.Context) { comment.CommentList(c, d) })
		cm.POST("/", func(c *gin.Context) { comment.CommentCreate(c, d) })
		cm.GET("/:comment_id/", func(c *gin.Context) { comment.CommentFetch(c, d) })
		cm.PATCH("/:comment_id/", func(c *gin.Context) { comment.CommentEdit(c, d) })
		cm.DELETE("/:comment_id/", func(c *gin.Context) { comment.CommentDelete(c, d) })
	}

	return router
}
