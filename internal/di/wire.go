//go:build wireinject
// +build wireinject

package di

import (
	"BulletCatalyst/pkg/config"
	"BulletCatalyst/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Ingestion and screening
		ProvideFeedSource,
		ProvideScreeners,
		ProvideScorer,

		// Pipeline
		ProvideEventsHandler,
		ProvideRunner,

		// Serving
		ProvideSnapshot,
		ProvideRenderer,
		ProvideLimiter,
		ProvideReportHandler,

		ProvideApp,
	)
	return &server.App{}, nil
}
