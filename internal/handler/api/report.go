// Package api exposes the latest report and a manual run trigger over
// HTTP, plus a websocket feed of run events.
package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"BulletCatalyst/internal/report"
	"BulletCatalyst/internal/service/cache"
	"BulletCatalyst/internal/service/ratelimit"
	"BulletCatalyst/internal/usecase"
	pkghttp "BulletCatalyst/pkg/http"
	"BulletCatalyst/pkg/logger"
)

// runBudget bounds a triggered background run.
const runBudget = 10 * time.Minute

type ReportHandler struct {
	snapshot *cache.Snapshot
	runner   *usecase.Runner
	limiter  *ratelimit.Limiter
	renderer *report.Renderer
	log      *logger.Logger
	running  atomic.Bool
}

var _ pkghttp.Handler = (*ReportHandler)(nil)

func NewReportHandler(
	snapshot *cache.Snapshot,
	runner *usecase.Runner,
	limiter *ratelimit.Limiter,
	renderer *report.Renderer,
	log *logger.Logger,
) *ReportHandler {
	return &ReportHandler{
		snapshot: snapshot,
		runner:   runner,
		limiter:  limiter,
		renderer: renderer,
		log:      log,
	}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/report", h.getReport)
	e.GET("/api/status", h.getStatus)
	e.POST("/api/run", h.triggerRun)
}

type reportQuery struct {
	Format string `query:"format" default:"json" validate:"oneof=json markdown"`
}

// getReport serves the latest snapshot, as JSON by default or rendered
// markdown with ?format=markdown. A stale or absent snapshot is a 404.
func (h *ReportHandler) getReport(c echo.Context) error {
	q := new(reportQuery)
	if verr := pkghttp.ReadAndValidateRequest(c, q); verr != nil {
		return pkghttp.BadRequestResponse(c, verr)
	}

	rep, ok := h.snapshot.Get()
	if !ok {
		return pkghttp.AppErrorResponse(c, pkghttp.NotFoundError("no fresh report available"))
	}

	if q.Format == "markdown" {
		return c.Blob(http.StatusOK, "text/markdown; charset=utf-8",
			[]byte(h.renderer.Markdown(rep)))
	}
	return pkghttp.SuccessResponse(c, rep)
}

func (h *ReportHandler) getStatus(c echo.Context) error {
	type status struct {
		HasReport   bool   `json:"has_report"`
		Running     bool   `json:"running"`
		StatusLine  string `json:"status_line,omitempty"`
		GeneratedAt string `json:"generated_at,omitempty"`
		AgeSeconds  int    `json:"age_seconds,omitempty"`
	}

	s := status{Running: h.running.Load()}
	if rep, ok := h.snapshot.Get(); ok {
		s.HasReport = true
		s.StatusLine = rep.StatusLine()
		s.GeneratedAt = rep.GeneratedAt.Format(time.RFC3339)
		s.AgeSeconds = int(h.snapshot.Age().Seconds())
	}
	return pkghttp.SuccessResponse(c, s)
}

// triggerRun starts a pipeline run in the background and returns 202.
// Triggers are rate limited and concurrent runs are rejected.
func (h *ReportHandler) triggerRun(c echo.Context) error {
	if !h.limiter.Allow() {
		return pkghttp.AppErrorResponse(c, pkghttp.TooManyRequestsError("run trigger rate exceeded"))
	}
	if !h.running.CompareAndSwap(false, true) {
		return pkghttp.AppErrorResponse(c, pkghttp.TooManyRequestsError("a run is already in progress"))
	}

	go func() {
		defer h.running.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), runBudget)
		defer cancel()

		rep, err := h.runner.Run(ctx)
		if err != nil {
			h.log.Error("triggered run failed", logger.Error(err))
			return
		}
		h.snapshot.Set(rep)
	}()

	return pkghttp.AcceptedResponse(c, map[string]string{"state": "started"})
}
