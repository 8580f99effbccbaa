package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := cache.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		JWTSecret:       "secret",
		OpeningHoursTTL: time.Minute,
		ClinicTimezone:  "UTC",
	}

	r := gin.New()
	shutdown := RegisterRoutes(r, db, rdb, cfg, zap.NewNop())
	t.Cleanup(shutdown)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := newEngine(t)

	w := serve(r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clinic_availability_slots_generated")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	r := newEngine(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/appointments"},
		{http.MethodGet, "/api/me/appointments"},
		{http.MethodPatch, "/api/me/appointments/ap-1/cancel"},
		{http.MethodPut, "/api/doctors/doc-1/opening-hours"},
		{http.MethodGet, "/api/doctor/audit-logs"},
	} {
		w := serve(r, tc.method, tc.path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	// each engine gets its own metrics registry
	assert.NotPanics(t, func() {
		newEngine(t)
		newEngine(t)
	})
}
