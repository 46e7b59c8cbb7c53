package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     string
		origin      string
		method      string
		wantStatus  int
		wantAllowed string
	}{
		{name: "listed origin", allowed: "http://a.test, http://b.test", origin: "http://b.test", method: http.MethodGet, wantStatus: http.StatusOK, wantAllowed: "http://b.test"},
		{name: "unlisted origin", allowed: "http://a.test", origin: "http://evil.test", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "wildcard", allowed: "*", origin: "http://any.test", method: http.MethodGet, wantStatus: http.StatusOK, wantAllowed: "http://any.test"},
		{name: "preflight", allowed: "http://a.test", origin: "http://a.test", method: http.MethodOptions, wantStatus: http.StatusNoContent, wantAllowed: "http://a.test"},
		{name: "no origin header", allowed: "*", method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(CORS(tt.allowed))
			router.GET("/resource", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/resource", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	userID := uuid.New()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/ok", "/missing", "/broken", "/health"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 3, logs.Len(), "probe endpoints are not logged")

	completed := logs.FilterMessage("Request completed").All()
	if assert.Len(t, completed, 1) {
		assert.Equal(t, userID.String(), completed[0].ContextMap()["user_id"])
	}
	assert.Equal(t, 1, logs.FilterMessage("Client error").FilterField(zap.Int("status", http.StatusNotFound)).Len())
	assert.Equal(t, 1, logs.FilterMessage("Server error").Len())
}
