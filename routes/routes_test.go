package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Endpoint not found")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter()

	cases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/me"},
		{"GET", "/api/feed"},
		{"GET", "/api/filters"},
		{"GET", "/api/featured"},
		{"GET", "/api/posts/65f000000000000000000001"},
		{"POST", "/api/posts"},
		{"PUT", "/api/posts/65f000000000000000000001"},
		{"DELETE", "/api/posts/65f000000000000000000001"},
		{"PUT", "/api/posts/65f000000000000000000001/featured"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestTokenSignInDisabledWithoutSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("BOOTSTRAP_SECRET", "")
	router := SetupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/session/token", strings.NewReader(`{"token":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
