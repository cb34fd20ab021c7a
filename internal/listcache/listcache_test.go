package listcache

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func counter(l *Cache, resource string) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)

	hits := 0
	r := gin.New()
	r.GET("/"+resource, l.Middleware(resource), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, strconv.Itoa(hits))
	})

	return r, &hits
}

func get(r *gin.Engine, target string) string {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w.Body.String()
}

func TestCache_ServesUntilInvalidated(t *testing.T) {
	l := New(persist.NewMemoryStore(time.Minute), time.Minute)
	r, hits := counter(l, "genres")

	assert.Equal(t, "1", get(r, "/genres"))
	assert.Equal(t, "1", get(r, "/genres"))
	assert.Equal(t, "2", get(r, "/genres?search=rock"))

	l.Invalidate("genres")

	assert.Equal(t, "3", get(r, "/genres"))
	assert.Equal(t, "4", get(r, "/genres?search=rock"))
	assert.Equal(t, 4, *hits)
}

func TestCache_InvalidationIsPerResource(t *testing.T) {
	l := New(persist.NewMemoryStore(time.Minute), time.Minute)
	r, _ := counter(l, "genres")

	assert.Equal(t, "1", get(r, "/genres"))
	l.Invalidate("categories")
	assert.Equal(t, "1", get(r, "/genres"))
}

func TestCache_Disabled(t *testing.T) {
	l := New(nil, time.Minute)
	assert.Nil(t, l)
	assert.Nil(t, New(persist.NewMemoryStore(time.Minute), 0))

	r, _ := counter(l, "genres")
	assert.Equal(t, "1", get(r, "/genres"))
	assert.Equal(t, "2", get(r, "/genres"))

	l.Invalidate("genres")
}

func TestCache_GenerationMovesForwardOnStoppedClock(t *testing.T) {
	l := New(persist.NewMemoryStore(time.Minute), time.Minute)
	l.now = func() time.Time { return time.Unix(0, 5) }
	r, _ := counter(l, "genres")

	assert.Equal(t, "1", get(r, "/genres"))
	l.Invalidate("genres")
	assert.Equal(t, "2", get(r, "/genres"))
	l.Invalidate("genres")
	assert.Equal(t, "3", get(r, "/genres"))
}
