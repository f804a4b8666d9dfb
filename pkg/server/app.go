package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"BulletCatalyst/internal/domain/service"
	"BulletCatalyst/internal/handler/api"
	"BulletCatalyst/internal/report"
	"BulletCatalyst/internal/service/cache"
	"BulletCatalyst/internal/services/screen"
	"BulletCatalyst/internal/usecase"
	"BulletCatalyst/pkg/config"
	xhttp "BulletCatalyst/pkg/http"
	applogger "BulletCatalyst/pkg/logger"
)

// App encapsulates the entire application lifecycle. It supports a
// one-shot pipeline run producing a report, and a serve mode with a
// cron schedule and an HTTP API over the latest snapshot.
type App struct {
	cfg       *config.Config
	runner    *usecase.Runner
	screeners []service.Screener
	snapshot  *cache.Snapshot
	renderer  *report.Renderer
	reports   *api.ReportHandler
	events    *api.EventsHandler
	log       *applogger.Logger

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	runner *usecase.Runner,
	screeners []service.Screener,
	snapshot *cache.Snapshot,
	renderer *report.Renderer,
	reports *api.ReportHandler,
	events *api.EventsHandler,
	log *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		runner:    runner,
		screeners: screeners,
		snapshot:  snapshot,
		renderer:  renderer,
		reports:   reports,
		events:    events,
		log:       log,
	}
}

// RunOnce executes one pipeline run and writes the rendered report to
// the configured output.
func (a *App) RunOnce(ctx context.Context) error {
	rep, err := a.runner.Run(ctx)
	if err != nil {
		return err
	}
	a.snapshot.Set(rep)

	out := a.renderer.Markdown(rep)
	if a.cfg.Report.Output == "stdout" || a.cfg.Report.Output == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(a.cfg.Report.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	a.log.Info("report written", applogger.String("path", a.cfg.Report.Output))
	return nil
}

// DryRun prints the prompt corpus without contacting any provider.
func (a *App) DryRun(ctx context.Context) error {
	text, err := a.runner.DryRun(ctx)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// Probe checks a single provider's credentials and connectivity and
// returns a process exit code.
func (a *App) Probe(ctx context.Context, provider string) (int, error) {
	for _, s := range a.screeners {
		if s.Name() == provider {
			return screen.Probe(ctx, s, a.log), nil
		}
	}
	return 0, fmt.Errorf("unknown provider %q", provider)
}

// Serve starts the HTTP API and, when enabled, the cron schedule, and
// blocks until interrupted. A first run is kicked off immediately so
// the API has a snapshot to serve.
func (a *App) Serve() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(routeSet{a.reports, a.events},
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go a.runAndStore(ctx)

	var schedule *cron.Cron
	if a.cfg.Schedule.Enabled {
		schedule = cron.New()
		if _, err := schedule.AddFunc(a.cfg.Schedule.Cron, func() { a.runAndStore(ctx) }); err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
		schedule.Start()
		a.log.Info("schedule started", applogger.String("cron", a.cfg.Schedule.Cron))
	}

	if err := a.httpServer.Start(); err != nil {
		return err
	}
	a.log.Info("serving", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	if schedule != nil {
		schedule.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	return a.httpServer.Stop(shutdownCtx)
}

func (a *App) runAndStore(ctx context.Context) {
	rep, err := a.runner.Run(ctx)
	if err != nil {
		a.log.Error("scheduled run failed", applogger.Error(err))
		return
	}
	a.snapshot.Set(rep)
}

// routeSet registers several handlers on one Echo instance.
type routeSet []xhttp.Handler

func (r routeSet) RegisterRoutes(e *echo.Echo) {
	for _, h := range r {
		h.RegisterRoutes(e)
	}
}
