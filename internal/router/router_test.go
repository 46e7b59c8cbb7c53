package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"codetogether-api/internal/auth"
	"codetogether-api/internal/config"
	"codetogether-api/internal/database"
	"codetogether-api/internal/metrics"
)

// setupTestDB opens a migrated in-memory SQLite database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	return db
}

// setupTestRouter creates a test router configuration with a private metrics registry
func setupTestRouter(t *testing.T, basePath string) *Config {
	t.Helper()
	return &Config{
		DB:       setupTestDB(t),
		Logger:   zap.NewNop(),
		Metrics:  metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop()),
		BasePath: basePath,
		Tokens:   auth.NewJWTIssuer("test-secret"),
		Hasher:   auth.NewBcryptHasher(4),
		TokenTTL: 30 * time.Minute,
	}
}

// TestMetricsEndpoint_RootPath tests /metrics endpoint at root path
func TestMetricsEndpoint_RootPath(t *testing.T) {
	router := Setup(*setupTestRouter(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	assert.Contains(t, body, "go_goroutines", "default registry exposes Go runtime metrics")
}

// TestMetricsEndpoint_WithBasePath tests /metrics endpoint with base path configured
func TestMetricsEndpoint_WithBasePath(t *testing.T) {
	basePath := "/api"
	router := Setup(*setupTestRouter(t, basePath))

	for _, path := range []string{"/metrics", basePath + "/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code, "metrics must not require authentication")
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}

// TestMetricsEndpoint_ContainsAllMetrics tests that gauges and plain counters are registered up front
func TestMetricsEndpoint_ContainsAllMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	_ = metrics.NewWithRegistry(registry, zap.NewNop())

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[mf.GetName()] = true
	}

	expected := []string{
		"codetogether_db_connections_open",
		"codetogether_db_connections_in_use",
		"codetogether_db_connections_idle",
		"codetogether_db_connections_max",
		"codetogether_user_registered_total",
		"codetogether_project_created_total",
		"codetogether_application_submitted_total",
	}
	for _, metric := range expected {
		assert.True(t, metricNames[metric], "Registry should contain metric: %s", metric)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := Setup(*setupTestRouter(t, "/api"))

	for _, path := range []string{"/health", "/ready", "/api/health", "/api/ready"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "codetogether-api")
		})
	}
}

func TestReady_WithoutDatabase(t *testing.T) {
	cfg := setupTestRouter(t, "")
	cfg.DB = nil
	router := Setup(*cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProtectedRoutes_RequireBearer(t *testing.T) {
	router := Setup(*setupTestRouter(t, "/api"))

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPut, "/api/v1/users/me"},
		{http.MethodDelete, "/api/v1/users/me"},
		{http.MethodPost, "/api/v1/users/me/avatar/upload-url"},
		{http.MethodPut, "/api/v1/users/me/avatar"},
		{http.MethodPost, "/api/v1/projects"},
		{http.MethodPut, "/api/v1/projects/00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/v1/projects/00000000-0000-0000-0000-000000000001"},
		{http.MethodPost, "/api/v1/projects/00000000-0000-0000-0000-000000000001/positions"},
		{http.MethodPut, "/api/v1/positions/00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/v1/positions/00000000-0000-0000-0000-000000000001"},
		{http.MethodPost, "/api/v1/positions/00000000-0000-0000-0000-000000000001/applications"},
		{http.MethodGet, "/api/v1/positions/00000000-0000-0000-0000-000000000001/applications"},
		{http.MethodPut, "/api/v1/applications/00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/v1/applications/00000000-0000-0000-0000-000000000001"},
		{http.MethodPost, "/api/v1/applications/00000000-0000-0000-0000-000000000001/approved"},
		{http.MethodPost, "/api/v1/applications/00000000-0000-0000-0000-000000000001/rejected"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestPublicRoutes_DoNotRequireBearer(t *testing.T) {
	router := Setup(*setupTestRouter(t, "/api"))

	paths := []string{
		"/api/v1/users/00000000-0000-0000-0000-000000000001",
		"/api/v1/projects/00000000-0000-0000-0000-000000000001",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects/00000000-0000-0000-0000-000000000001/positions", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	cfg := setupTestRouter(t, "/api")
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}
	router := Setup(*cfg)

	login := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"nobody@example.com","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "192.0.2.10:5555"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, login())
	assert.Equal(t, http.StatusUnauthorized, login())
	assert.Equal(t, http.StatusTooManyRequests, login())

	// the limiter is scoped to auth routes
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/00000000-0000-0000-0000-000000000001", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	cfg := setupTestRouter(t, "/api")
	cfg.CORSOrigins = "http://localhost:3000"
	router := Setup(*cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
