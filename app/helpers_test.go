package app

import (
	"bitwise74/review-api/internal"
	"bitwise74/review-api/internal/model"
	"bitwise74/review-api/internal/testutil"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	t      *testing.T
	deps   *internal.Deps
	db     *gorm.DB
	mail   *testutil.Mail
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWith(t, nil)
}

// newEnvWith lets setup adjust the deps before the router is built
func newEnvWith(t *testing.T, setup func(d *internal.Deps)) *env {
	t.Helper()

	deps, mail := testutil.NewDeps(t)
	if setup != nil {
		setup(deps)
	}

	return &env{
		t:      t,
		deps:   deps,
		db:     deps.DB,
		mail:   mail,
		router: NewRouter(deps, Options{}),
	}
}

// do sends body as JSON, as the given user when u isn't nil
func (e *env) do(method, target string, u *model.User, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+testutil.Token(e.t, e.deps, u))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) user(username string, role model.Role) *model.User {
	e.t.Helper()
	return testutil.CreateUser(e.t, e.db, username, role)
}

func (e *env) category(slug string) *model.Category {
	e.t.Helper()

	c := &model.Category{Name: "Category " + slug, Slug: slug}
	require.NoError(e.t, e.db.Create(c).Error)
	return c
}

func (e *env) genre(slug string) *model.Genre {
	e.t.Helper()

	g := &model.Genre{Name: "Genre " + slug, Slug: slug}
	require.NoError(e.t, e.db.Create(g).Error)
	return g
}

func (e *env) title(name string, year int, cat *model.Category, genres ...model.Genre) *model.Title {
	e.t.Helper()

	t := &model.Title{Name: name, Year: year}
	if cat != nil {
		t.CategoryID = &cat.ID
	}
	require.NoError(e.t, e.db.Omit("Category", "Genres", "Reviews").Create(t).Error)

	for _, g := range genres {
		link := map[string]any{"title_id": t.ID, "genre_id": g.ID}
		require.NoError(e.t, e.db.Table("title_genres").Create(link).Error)
	}

	return t
}

func (e *env) review(title *model.Title, author *model.User, score int) *model.Review {
	e.t.Helper()

	r := &model.Review{TitleID: title.ID, AuthorID: author.ID, Text: "review by " + author.Username, Score: score}
	require.NoError(e.t, e.db.Omit("Author", "Comments").Create(r).Error)
	return r
}

func (e *env) comment(r *model.Review, author *model.User) *model.Comment {
	e.t.Helper()

	c := &model.Comment{ReviewID: r.ID, TitleID: r.TitleID, AuthorID: author.ID, Text: "comment by " + author.Username}
	require.NoError(e.t, e.db.Omit("Author").Create(c).Error)
	return c
}

func (e *env) count(m any, query string, args ...any) int64 {
	e.t.Helper()

	var n int64
	require.NoError(e.t, e.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// results returns the results array of a paginated response
func results(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var out struct {
		Count   int64            `json:"count"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Results
}

func fields(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	f, _ := decode(t, w)["fields"].(map[string]any)
	return f
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
