package screen

import (
	"BulletCatalyst/pkg/config"
	"BulletCatalyst/pkg/logger"
)

const groqTask = `For each "=== TICKER ===" section above, score near-term sentiment on
a 0-100 scale and list concrete catalysts. Respond only with a JSON
object {"results":[{"ticker","sentiment","catalysts","rationale"}]}.`

// NewGroq builds the Groq screener. Groq retires hosted models on
// short notice, so the configured model is backed by a fallback chain
// walked when the endpoint rejects one.
func NewGroq(cfg config.Provider, log *logger.Logger, logRaw bool) *Client {
	models := append([]string{cfg.Model}, cfg.FallbackModels...)
	return NewClient(Policy{
		Name:            "groq",
		Label:           "Groq",
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.APIKey,
		Models:          models,
		System:          systemPrompt,
		Task:            groqTask,
		ResponseFormat:  jsonObjectFormat,
		Neutral:         48,
		Timeout:         cfg.Timeout,
		Temperature:     temperatureOr(cfg, 0.2),
		MaxTokens:       cfg.MaxTokens,
		AdvanceOnReject: true,
	}, log, logRaw)
}
