package middleware_test

import (
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/internal/permission"
	"bitwise74/review-api/internal/testutil"
	"bitwise74/review-api/pkg/middleware"
	"bitwise74/review-api/pkg/security"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// whoami answers with the caller's username or "anonymous"
func whoami(c *gin.Context) {
	name := "anonymous"
	if u := middleware.CurrentUser(c); u != nil {
		name = u.Username
	}

	c.String(http.StatusOK, name)
}

func serve(r *gin.Engine, method, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	deps, _ := testutil.NewDeps(t)
	alice := testutil.CreateUser(t, deps.DB, "alice", model.RoleUser)
	gone := testutil.CreateUser(t, deps.DB, "gone", model.RoleUser)

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware(), middleware.NewAuthMiddleware(deps.DB, deps.Tokens))
	r.GET("/", whoami)

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = serve(r, http.MethodGet, "/", "Bearer "+testutil.Token(t, deps, alice))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())

	for _, header := range []string{"Token abc", "Bearer", "Bearer not.a.jwt", "bearer " + testutil.Token(t, deps, alice)} {
		w = serve(r, http.MethodGet, "/", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}

	expired, err := security.NewTokenIssuer(testutil.Secret, -time.Minute)
	require.NoError(t, err)
	stale, err := expired.Issue(alice)
	require.NoError(t, err)

	w = serve(r, http.MethodGet, "/", "Bearer "+stale)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")

	goneToken := testutil.Token(t, deps, gone)
	require.NoError(t, deps.DB.Delete(gone).Error)

	w = serve(r, http.MethodGet, "/", "Bearer "+goneToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestRequirePolicy(t *testing.T) {
	deps, _ := testutil.NewDeps(t)
	user := testutil.CreateUser(t, deps.DB, "user", model.RoleUser)
	admin := testutil.CreateUser(t, deps.DB, "admin", model.RoleAdmin)

	r := gin.New()
	r.Use(middleware.NewAuthMiddleware(deps.DB, deps.Tokens), middleware.RequireResource(permission.Categories))
	r.GET("/", whoami)
	r.POST("/", whoami)

	cases := []struct {
		method string
		auth   string
		status int
	}{
		{http.MethodGet, "", http.StatusOK},
		{http.MethodPost, "", http.StatusUnauthorized},
		{http.MethodPost, "Bearer " + testutil.Token(t, deps, user), http.StatusForbidden},
		{http.MethodPost, "Bearer " + testutil.Token(t, deps, admin), http.StatusOK},
	}

	for _, tc := range cases {
		w := serve(r, tc.method, "/", tc.auth)
		assert.Equal(t, tc.status, w.Code, "%s %q", tc.method, tc.auth)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := serve(r, http.MethodGet, "/", "")
	assert.Len(t, w.Body.String(), 12)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	assert.NotEqual(t, w.Body.String(), serve(r, http.MethodGet, "/", "").Body.String())
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{RequestsPerSecond: 1, Burst: 2}))
	r.GET("/", whoami)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", "").Code)
}

func TestRateLimiter_ReleasedWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := gin.New()
	r.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, Context: ctx}))
	r.GET("/", whoami)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", "").Code)

	cancel()

	// A closed store keeps no limiters, requests still go through
	assert.Eventually(t, func() bool {
		return serve(r, http.MethodGet, "/", "").Code == http.StatusOK &&
			serve(r, http.MethodGet, "/", "").Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{}))
	r.GET("/", whoami)

	for range 50 {
		require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "").Code)
	}
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.Use(middleware.BodySizeLimiter(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string, chunked bool) int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if chunked {
			req.ContentLength = -1
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post("short", false))
	assert.Equal(t, http.StatusRequestEntityTooLarge, post("way too long", false))
	assert.Equal(t, http.StatusBadRequest, post("way too long", true))
}

func TestTurnstile(t *testing.T) {
	verifier := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Response string `json:"response"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		_ = json.NewEncoder(w).Encode(map[string]any{"success": req.Response == "human"})
	}))
	defer verifier.Close()

	r := gin.New()
	r.Use(middleware.NewTurnstileMiddleware(middleware.TurnstileConfig{
		Enabled:     true,
		SecretToken: "secret",
		VerifyURL:   verifier.URL,
	}))
	r.POST("/", whoami)

	send := func(token string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if token != "" {
			req.Header.Set("TurnstileToken", token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("human"))
	assert.Equal(t, http.StatusUnauthorized, send("robot"))
	assert.Equal(t, http.StatusBadRequest, send(""))
}

func TestTurnstile_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(middleware.NewTurnstileMiddleware(middleware.TurnstileConfig{}))
	r.POST("/", whoami)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/", "").Code)
}
