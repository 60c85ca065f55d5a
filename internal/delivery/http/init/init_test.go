package http_init

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
}

func TestPoolRegistersUnderPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pool := NewControllerPool()
	pool.Add(pingController{})
	pool.Register()

	w := httptest.NewRecorder()
	pool.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	pool.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pool := NewControllerPool(WithCORS([]string{"https://party.example.com"}))
	pool.Add(pingController{})
	pool.Register()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
	req.Header.Set("Origin", "https://party.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	pool.Handler().ServeHTTP(w, req)

	assert.Equal(t, "https://party.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
