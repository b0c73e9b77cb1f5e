package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste3d/vod-platform/internal/infrastructure/security"
	"github.com/waste3d/vod-platform/internal/platform/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(tm *security.TokenManager, roles ...string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger.Nop()))
	handlers := []gin.HandlerFunc{AuthMiddleware(tm, nil)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey)+"/"+c.GetString(RoleKey))
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tm := security.NewTokenManager("secret")
	token, err := tm.Generate("user-1", security.RoleMember, time.Minute)
	require.NoError(t, err)
	r := newEngine(tm)

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK, "user-1/member"},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token}) }, http.StatusOK, "user-1/member"},
		{"missing", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"malformed header", func(req *http.Request) { req.Header.Set("Authorization", "Token "+token) }, http.StatusUnauthorized, ""},
		{"bad token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareCustomDeny(t *testing.T) {
	tm := security.NewTokenManager("secret")
	r := gin.New()
	r.GET("/me", AuthMiddleware(tm, func(c *gin.Context, status int, message string) {
		c.AbortWithStatus(http.StatusSeeOther)
	}), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRequireRoles(t *testing.T) {
	tm := security.NewTokenManager("secret")
	r := newEngine(tm, security.RoleAdmin)

	member, _ := tm.Generate("user-1", security.RoleMember, time.Minute)
	admin, _ := tm.Generate("root", security.RoleAdmin, time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+member)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "root/admin", w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/", NewRateLimiter(nil).Limit("admin_write", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	r := gin.New()
	r.GET("/", NewRateLimiter(client).Limit("admin_write", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	mr.FastForward(time.Minute)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
