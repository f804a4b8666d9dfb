package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/internal/report"
	"BulletCatalyst/internal/service/cache"
	"BulletCatalyst/internal/service/ratelimit"
	"BulletCatalyst/pkg/logger"
)

func newTestHandler(snap *cache.Snapshot) *ReportHandler {
	return NewReportHandler(snap, nil, ratelimit.New(10, time.Minute), report.NewRenderer(6), logger.Nop())
}

func serve(h *ReportHandler, method, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func storedReport() *models.Report {
	return &models.Report{
		GeneratedAt: time.Now(),
		Status:      []models.ProviderStatus{{Provider: "openai", Label: "GPT", State: "OK", Count: 1}},
		Tracks: []models.RankedTrack{{
			Provider: "openai", Label: "GPT",
			Results: []models.MergedResult{{
				Ticker: "NVDA",
				Tracks: map[string]models.TrackScore{"openai": {Sentiment: 80, Score: 80}},
			}},
		}},
	}
}

func TestGetReportEmpty(t *testing.T) {
	rec := serve(newTestHandler(cache.NewSnapshot(time.Hour)), http.MethodGet, "/api/report")
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")
}

func TestGetReportJSON(t *testing.T) {
	snap := cache.NewSnapshot(time.Hour)
	snap.Set(storedReport())

	rec := serve(newTestHandler(snap), http.MethodGet, "/api/report")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NVDA")
}

func TestGetReportMarkdown(t *testing.T) {
	snap := cache.NewSnapshot(time.Hour)
	snap.Set(storedReport())

	rec := serve(newTestHandler(snap), http.MethodGet, "/api/report?format=markdown")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Body.String(), "# Bullet Catalyst Report")
}

func TestGetReportBadFormat(t *testing.T) {
	snap := cache.NewSnapshot(time.Hour)
	snap.Set(storedReport())

	rec := serve(newTestHandler(snap), http.MethodGet, "/api/report?format=xml")
	assert.Contains(t, rec.Body.String(), "ERR_ONEOF")
}

func TestGetStatus(t *testing.T) {
	snap := cache.NewSnapshot(time.Hour)
	snap.Set(storedReport())

	rec := serve(newTestHandler(snap), http.MethodGet, "/api/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"has_report":true`)
	assert.Contains(t, rec.Body.String(), "GPT: OK (1)")
}

func TestTriggerRunRateLimited(t *testing.T) {
	h := NewReportHandler(cache.NewSnapshot(time.Hour), nil, ratelimit.New(0, time.Minute), report.NewRenderer(6), logger.Nop())
	rec := serve(h, http.MethodPost, "/api/run")
	assert.Contains(t, rec.Body.String(), "ERR_TOO_MANY_REQUESTS")
}
