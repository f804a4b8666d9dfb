package screen

import (
	"context"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/internal/domain/service"
	"BulletCatalyst/pkg/logger"
)

// Probe exit codes, for shell health checks.
const (
	ProbeOK        = 0
	ProbeNoKey     = 2
	ProbeForbidden = 3
	ProbeHTTP      = 4
	ProbeTransport = 5
)

const probeCorpus = "=== AAPL ===\n• Apple reports quarterly results\n"

// Probe sends a one-ticker corpus through a single provider and maps
// the outcome to an exit code, so credentials and connectivity can be
// verified without a full run.
func Probe(ctx context.Context, s service.Screener, log *logger.Logger) int {
	res := s.Evaluate(ctx, probeCorpus)
	if res.OK {
		log.Info("probe ok",
			logger.String("provider", s.Name()),
			logger.Int("results", len(res.Results)),
		)
		return ProbeOK
	}

	log.Error("probe failed",
		logger.String("provider", s.Name()),
		logger.String("kind", string(res.ErrKind)),
		logger.String("detail", res.ErrMsg),
	)

	switch res.ErrKind {
	case models.ErrMissingKey, models.ErrUnauthorized:
		return ProbeNoKey
	case models.ErrForbidden, models.ErrNoCredits:
		return ProbeForbidden
	case models.ErrTimeout, models.ErrUnavailable:
		return ProbeTransport
	default:
		return ProbeHTTP
	}
}
