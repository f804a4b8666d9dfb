package repository

import (
	"context"

	"BulletCatalyst/internal/domain/models"
)

// FeedSource pulls already-normalized news documents from the outside
// world. Implementations must strip markup and whitespace; the core
// never sees raw feed XML.
type FeedSource interface {
	Fetch(ctx context.Context) ([]models.NewsDocument, error)
}

// EventSink receives run lifecycle events for operational visibility
// (websocket feed). Events are observational and never influence
// control flow.
type EventSink interface {
	Publish(event RunEvent)
}

// RunEvent is one pipeline progress notification.
type RunEvent struct {
	Type     string `json:"type"` // run_started, provider_done, run_finished, run_failed
	Provider string `json:"provider,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Metrics records operational counters for the pipeline.
type Metrics interface {
	RecordProviderRequest(provider, outcome string)
	RecordParseFailure(provider string)
	RecordRunDuration(seconds float64)
	RecordIngest(documents, tickers int)
}
