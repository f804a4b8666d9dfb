package screen

import (
	"BulletCatalyst/pkg/config"
	"BulletCatalyst/pkg/logger"
)

const systemPrompt = "You are an equity news analyst. You only answer with JSON."

const openaiTask = `For every "=== TICKER ===" section above, rate the near-term sentiment
from 0 (very bearish) to 100 (very bullish) based only on the listed
headlines, and name the concrete catalysts behind the rating. Reply
with a JSON object {"results":[{"ticker","sentiment","catalysts","rationale"}]}.`

// tickerBatchSchema is the strict structured-output contract. Strict
// mode requires every property to be listed as required.
var tickerBatchSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "TickerBatch",
		"strict": true,
		"schema": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"results"},
			"properties": map[string]any{
				"results": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"required":             []string{"ticker", "sentiment", "catalysts", "rationale"},
						"properties": map[string]any{
							"ticker":    map[string]any{"type": "string"},
							"sentiment": map[string]any{"type": "number"},
							"catalysts": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"rationale": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

// NewOpenAI builds the GPT screener. It is the only provider that
// supports strict structured outputs, so it gets the schema format.
func NewOpenAI(cfg config.Provider, log *logger.Logger, logRaw bool) *Client {
	return NewClient(Policy{
		Name:           "openai",
		Label:          "GPT",
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		Models:         []string{cfg.Model},
		System:         systemPrompt,
		Task:           openaiTask,
		ResponseFormat: tickerBatchSchema,
		Neutral:        50,
		Timeout:        cfg.Timeout,
		Temperature:    temperatureOr(cfg, 0.2),
		MaxTokens:      cfg.MaxTokens,
	}, log, logRaw)
}

func temperatureOr(cfg config.Provider, fallback float64) float64 {
	if cfg.Temperature > 0 {
		return cfg.Temperature
	}
	return fallback
}
