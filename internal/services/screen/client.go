// Package screen sends the news corpus to LLM providers and turns their
// replies into per-ticker assessments. All three providers speak an
// OpenAI-compatible chat API, so one client covers them; the differences
// live in Policy.
package screen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/internal/domain/service"
	pkghttp "BulletCatalyst/pkg/http"
	"BulletCatalyst/pkg/logger"
	"BulletCatalyst/pkg/util"
)

var creditsPattern = regexp.MustCompile(`(?i)credits`)

// Policy captures everything that differs between providers: endpoint,
// credentials, model candidates, prompt task, response format, and the
// neutral sentiment substituted for unset values downstream.
type Policy struct {
	Name           string
	Label          string
	BaseURL        string
	APIKey         string
	Models         []string // primary first, then fallbacks
	System         string
	Task           string
	ResponseFormat map[string]any
	Neutral        int
	Timeout        time.Duration
	Temperature    float64
	TopP           float64 // 0 omits the field
	MaxTokens      int

	// AdvanceOnReject walks the model list when the endpoint rejects a
	// model with 400, 403 or 404. Two consecutive rejections stop the
	// walk early.
	AdvanceOnReject bool

	// ResponsesFallback retries the newer /responses endpoint when the
	// chat completions path 404s.
	ResponsesFallback bool
}

type Client struct {
	policy Policy
	http   *pkghttp.Client
	log    *logger.Logger
	logRaw bool
}

var _ service.Screener = (*Client)(nil)

func NewClient(policy Policy, log *logger.Logger, logRaw bool) *Client {
	return &Client{
		policy: policy,
		http:   pkghttp.NewClient(pkghttp.WithTimeout(policy.Timeout + 5*time.Second)),
		log:    log,
		logRaw: logRaw,
	}
}

func (c *Client) Name() string  { return c.policy.Name }
func (c *Client) Label() string { return c.policy.Label }
func (c *Client) Neutral() int  { return c.policy.Neutral }

// Evaluate sends the corpus and returns the provider's assessments.
// Failures are returned as data, never as an error: a missing key, an
// HTTP rejection, a timeout and an unparseable reply all map to a
// failed ProviderResult with the matching kind.
func (c *Client) Evaluate(ctx context.Context, corpus string) models.ProviderResult {
	p := c.policy
	if p.APIKey == "" {
		return models.Failure(p.Name, models.ErrMissingKey, "api key not configured")
	}

	c.log.Info("querying provider",
		logger.String("provider", p.Name),
		logger.String("model", p.Models[0]),
		logger.String("key", util.MaskSecret(p.APIKey)),
	)

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	prompt := "PROMPT CORPUS:\n" + corpus + "\n\nTASK:\n" + p.Task

	rejects := 0
	for i, model := range p.Models {
		status, body, err := c.sendChat(ctx, model, prompt)
		if err != nil {
			return c.transportFailure(ctx, err)
		}

		if status == 404 && p.ResponsesFallback {
			c.log.Warn("chat endpoint missing, retrying responses endpoint",
				logger.String("provider", p.Name))
			status, body, err = c.sendResponses(ctx, model, prompt)
			if err != nil {
				return c.transportFailure(ctx, err)
			}
			if status >= 200 && status < 300 {
				return c.finish(extractResponsesText(body), body)
			}
			return c.statusFailure(status, body)
		}

		if status >= 200 && status < 300 {
			return c.finish(extractChatText(body), body)
		}

		rejected := status == 400 || status == 403 || status == 404
		if rejected && p.AdvanceOnReject && i < len(p.Models)-1 {
			rejects++
			c.log.Warn("model rejected, trying fallback",
				logger.String("provider", p.Name),
				logger.String("model", model),
				logger.Int("status", status),
			)
			if rejects >= 2 {
				return models.Failure(p.Name, models.ErrUnavailable,
					fmt.Sprintf("all usable models rejected (last status %d)", status))
			}
			continue
		}

		return c.statusFailure(status, body)
	}

	return models.Failure(p.Name, models.ErrUnavailable, "model candidates exhausted")
}

func (c *Client) sendChat(ctx context.Context, model, prompt string) (int, []byte, error) {
	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": c.policy.System},
			{"role": "user", "content": prompt},
		},
		"temperature": c.policy.Temperature,
		"max_tokens":  c.policy.MaxTokens,
	}
	if c.policy.TopP > 0 {
		payload["top_p"] = c.policy.TopP
	}
	if c.policy.ResponseFormat != nil {
		payload["response_format"] = c.policy.ResponseFormat
	}
	return c.send(ctx, c.policy.BaseURL+"/chat/completions", payload)
}

// sendResponses targets the /responses API shape: messages become an
// "input" array and the reply text lives under output[0].content[0].
func (c *Client) sendResponses(ctx context.Context, model, prompt string) (int, []byte, error) {
	payload := map[string]any{
		"model": model,
		"input": []map[string]string{
			{"role": "system", "content": c.policy.System},
			{"role": "user", "content": prompt},
		},
		"temperature":       c.policy.Temperature,
		"max_output_tokens": c.policy.MaxTokens,
	}
	return c.send(ctx, c.policy.BaseURL+"/responses", payload)
}

func (c *Client) send(ctx context.Context, url string, payload map[string]any) (int, []byte, error) {
	return c.http.SendForStatus(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodPost,
		URL:    url,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.policy.APIKey,
			"Content-Type":  "application/json",
		},
		Body: payload,
	})
}

func (c *Client) finish(reply string, body []byte) models.ProviderResult {
	p := c.policy
	if c.logRaw {
		c.log.Debug("raw provider payload",
			logger.String("provider", p.Name),
			logger.String("payload", util.Truncate(string(body), 2000)),
		)
	}

	results := decodeResults(reply)
	if results == nil {
		return models.Failure(p.Name, models.ErrParseFailure,
			"unparseable reply: "+util.Truncate(util.CleanSpaces(reply), 200))
	}
	return models.ProviderResult{Provider: p.Name, Results: results, OK: true}
}

func (c *Client) transportFailure(ctx context.Context, err error) models.ProviderResult {
	p := c.policy
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.Failure(p.Name, models.ErrTimeout,
			fmt.Sprintf("no reply within %s", p.Timeout))
	}
	return models.Failure(p.Name, models.ErrUnavailable, err.Error())
}

func (c *Client) statusFailure(status int, body []byte) models.ProviderResult {
	p := c.policy
	snippet := util.Truncate(util.CleanSpaces(string(body)), 200)
	switch {
	case status == 401:
		return models.Failure(p.Name, models.ErrUnauthorized, snippet)
	case status == 403 && creditsPattern.MatchString(snippet):
		return models.Failure(p.Name, models.ErrNoCredits, snippet)
	case status == 403:
		return models.Failure(p.Name, models.ErrForbidden, snippet)
	default:
		return models.Failure(p.Name, models.ErrHTTP,
			fmt.Sprintf("status %d: %s", status, snippet))
	}
}

func extractChatText(body []byte) string {
	var env struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Choices) == 0 {
		return ""
	}
	return env.Choices[0].Message.Content
}

func extractResponsesText(body []byte) string {
	var env struct {
		Output []struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if len(env.Output) == 0 || len(env.Output[0].Content) == 0 {
		return ""
	}
	return env.Output[0].Content[0].Text
}
