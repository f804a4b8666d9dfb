package screen

import (
	"BulletCatalyst/pkg/config"
	"BulletCatalyst/pkg/logger"
)

const xaiTask = `Rate every "=== TICKER ===" section above for near-term sentiment on a
0-100 scale (0 very bearish, 100 very bullish) and list its concrete
catalysts. Answer with nothing but a JSON object of the form
{"results":[{"ticker","sentiment","catalysts","rationale"}]}.`

var jsonObjectFormat = map[string]any{"type": "json_object"}

// NewXAI builds the Grok screener. Grok only guarantees json_object
// mode; some deployments have dropped the chat completions path, so
// the client falls back to the /responses endpoint on 404.
func NewXAI(cfg config.Provider, log *logger.Logger, logRaw bool) *Client {
	return NewClient(Policy{
		Name:              "xai",
		Label:             "Grok",
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		Models:            []string{cfg.Model},
		System:            systemPrompt,
		Task:              xaiTask,
		ResponseFormat:    jsonObjectFormat,
		Neutral:           48,
		Timeout:           cfg.Timeout,
		Temperature:       temperatureOr(cfg, 0.1),
		TopP:              1,
		MaxTokens:         cfg.MaxTokens,
		ResponsesFallback: true,
	}, log, logRaw)
}
