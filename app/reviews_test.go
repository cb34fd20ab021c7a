package app

import (
	"bitwise74/review-api/internal/model"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewsPath(t *model.Title) string {
	return "/v1/titles/" + itoa(t.ID) + "/reviews/"
}

func reviewPath(r *model.Review) string {
	return "/v1/titles/" + itoa(r.TitleID) + "/reviews/" + itoa(r.ID) + "/"
}

func TestReviewCreate(t *testing.T) {
	e := newEnv(t)
	author := e.user("author", model.RoleUser)
	title := e.title("Solaris", 1972, nil)

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, reviewsPath(title), nil, gin.H{"text": "x", "score": 5}).Code)

	w := e.do(http.MethodPost, reviewsPath(title), author, gin.H{"text": "Slow and great", "score": 9})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := decode(t, w)
	assert.Equal(t, "author", got["author"])
	assert.Equal(t, float64(9), got["score"])
	assert.NotEmpty(t, got["pub_date"])

	// One review per title
	w = e.do(http.MethodPost, reviewsPath(title), author, gin.H{"text": "Again", "score": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, fields(t, w), "non_field_errors")
	assert.Equal(t, int64(1), e.count(&model.Review{}, "title_id = ?", title.ID))

	// but a different title is fine
	other := e.title("Stalker", 1979, nil)
	assert.Equal(t, http.StatusCreated, e.do(http.MethodPost, reviewsPath(other), author, gin.H{"text": "Zone", "score": 10}).Code)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPost, "/v1/titles/999/reviews/", author, gin.H{"text": "x", "score": 5}).Code)
}

func TestReviewCreate_ScoreBounds(t *testing.T) {
	e := newEnv(t)
	title := e.title("Mirror", 1975, nil)

	cases := []struct {
		score  any
		status int
	}{
		{0, http.StatusBadRequest},
		{1, http.StatusCreated},
		{10, http.StatusCreated},
		{11, http.StatusBadRequest},
		{-3, http.StatusBadRequest},
		{"7", http.StatusBadRequest},
		{nil, http.StatusBadRequest},
	}

	for i, tc := range cases {
		u := e.user("critic"+itoa(uint(i)), model.RoleUser)
		w := e.do(http.MethodPost, reviewsPath(title), u, gin.H{"text": "ok", "score": tc.score})
		assert.Equal(t, tc.status, w.Code, "score %v: %s", tc.score, w.Body.String())
	}
}

func TestReview_ReadIsPublic(t *testing.T) {
	e := newEnv(t)
	title := e.title("Solaris", 1972, nil)
	r := e.review(title, e.user("author", model.RoleUser), 8)
	e.review(title, e.user("second", model.RoleUser), 6)

	w := e.do(http.MethodGet, reviewsPath(title), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, results(t, w), 2)

	w = e.do(http.MethodGet, reviewPath(r), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "author", decode(t, w)["author"])
}

func TestReview_ScopedToTitle(t *testing.T) {
	e := newEnv(t)
	solaris := e.title("Solaris", 1972, nil)
	stalker := e.title("Stalker", 1979, nil)
	r := e.review(solaris, e.user("author", model.RoleUser), 8)

	wrong := "/v1/titles/" + itoa(stalker.ID) + "/reviews/" + itoa(r.ID) + "/"
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, wrong, nil, nil).Code)

	w := e.do(http.MethodGet, reviewsPath(stalker), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, results(t, w))

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/v1/titles/999/reviews/", nil, nil).Code)
}

func TestReviewEdit_Permissions(t *testing.T) {
	e := newEnv(t)
	author := e.user("author", model.RoleUser)
	stranger := e.user("stranger", model.RoleUser)
	moder := e.user("moder", model.RoleModerator)
	admin := e.user("admin", model.RoleAdmin)
	title := e.title("Solaris", 1972, nil)
	r := e.review(title, author, 5)

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodPatch, reviewPath(r), nil, gin.H{"score": 1}).Code)

	w := e.do(http.MethodPatch, reviewPath(r), stranger, gin.H{"score": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied", decode(t, w)["error"])
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodDelete, reviewPath(r), stranger, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, reviewPath(r), stranger, nil).Code)

	// Editing never trips the one review per title rule
	w = e.do(http.MethodPatch, reviewPath(r), author, gin.H{"text": "Changed my mind", "score": 7})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(7), decode(t, w)["score"])
	assert.Equal(t, "Changed my mind", decode(t, w)["text"])

	w = e.do(http.MethodPatch, reviewPath(r), moder, gin.H{"text": "Moderated"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "author", decode(t, w)["author"])
	assert.Equal(t, float64(7), decode(t, w)["score"])

	w = e.do(http.MethodPatch, reviewPath(r), author, gin.H{"score": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, fields(t, w), "score")

	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, reviewPath(r), admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, reviewPath(r), nil, nil).Code)
}

func TestReviewDelete_Cascades(t *testing.T) {
	e := newEnv(t)
	author := e.user("author", model.RoleUser)
	title := e.title("Solaris", 1972, nil)
	r := e.review(title, author, 5)
	keep := e.review(title, e.user("other", model.RoleUser), 6)
	e.comment(r, author)
	e.comment(r, author)
	e.comment(keep, author)

	require.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, reviewPath(r), author, nil).Code)

	assert.Zero(t, e.count(&model.Comment{}, "review_id = ?", r.ID))
	assert.Equal(t, int64(1), e.count(&model.Comment{}, "review_id = ?", keep.ID))

	// The author may review the title again afterwards
	w := e.do(http.MethodPost, reviewsPath(title), author, gin.H{"text": "Second take", "score": 8})
	assert.Equal(t, http.StatusCreated, w.Code)
}
