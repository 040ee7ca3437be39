// Package llm is the adapter for the remote OpenAI-compatible text-generation
// service: availability probe, model listing and single-turn completion.
//
// The adapter resolves every failure to a value at its boundary. CheckAvailability
// and ListModels degrade to false and an empty list; Complete returns an *Error
// that callers turn into their deterministic fallback.
package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/metrics"
)

// Fixed sampling parameters for every completion.
const (
	Temperature = 0.7
	TopP        = 0.9
	MaxTokens   = 1000
)

// Operation names used in errors, logs and metrics.
const (
	OpCheckAvailability = "check_availability"
	OpListModels        = "list_models"
	OpComplete          = "complete"
)

// Message roles accepted by Complete.
const (
	RoleSystem = openai.ChatMessageRoleSystem
	RoleUser   = openai.ChatMessageRoleUser
)

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// Completer is the slice of the adapter the categorizer and assistant depend on.
type Completer interface {
	Complete(ctx context.Context, messages []Message, model string) (string, error)
}

// Options configures the adapter. Each field deterministically affects request
// construction: APIKey gates every call and sets the bearer header, BaseURL
// prefixes both endpoints, SiteURL and SiteName add HTTP-Referer and X-Title.
type Options struct {
	APIKey   string
	BaseURL  string
	Model    string
	SiteURL  string
	SiteName string
	Timeout  time.Duration

	// HTTPClient overrides the transport base; tests point it at httptest servers.
	HTTPClient *http.Client
}

// Client implements Completer over go-openai.
type Client struct {
	opts     Options
	api      *openai.Client
	logger   logging.Logger
	recorder *metrics.Recorder
}

// NewClient builds the adapter. It never fails: a missing key or base URL only
// makes every call report KindNotConfigured.
func NewClient(opts Options, logger logging.Logger, recorder *metrics.Recorder) *Client {
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")

	c := &Client{
		opts:     opts,
		logger:   logging.OrDefault(logger).WithField(logging.FieldComponent, "llm"),
		recorder: recorder,
	}

	if c.configured() {
		cfg := openai.DefaultConfig(opts.APIKey)
		cfg.BaseURL = opts.BaseURL
		cfg.HTTPClient = c.httpClient()
		c.api = openai.NewClientWithConfig(cfg)
	}
	return c
}

// Model returns the configured default model.
func (c *Client) Model() string {
	return c.opts.Model
}

func (c *Client) configured() bool {
	return c.opts.APIKey != "" && c.opts.BaseURL != ""
}

func (c *Client) httpClient() *http.Client {
	base := http.DefaultTransport
	var timeout time.Duration
	if c.opts.HTTPClient != nil {
		if c.opts.HTTPClient.Transport != nil {
			base = c.opts.HTTPClient.Transport
		}
		timeout = c.opts.HTTPClient.Timeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{base: base, headers: buildHeaders(c.opts)},
	}
}

// CheckAvailability probes GET {baseURL}/models. It returns false, never an
// error, when the service is unconfigured or the probe fails.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	if !c.configured() {
		c.observe(OpCheckAvailability, string(KindNotConfigured))
		return false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.ListModels(ctx); err != nil {
		e := classify(OpCheckAvailability, err)
		c.logger.WithError(err).Debug("Model service unavailable",
			logging.Field{Key: logging.FieldReason, Value: string(e.Kind)})
		c.observe(OpCheckAvailability, string(e.Kind))
		return false
	}
	c.observe(OpCheckAvailability, metrics.OutcomeSuccess)
	return true
}

// ListModels returns the model ids served by the endpoint, or an empty list on
// any failure.
func (c *Client) ListModels(ctx context.Context) []string {
	if !c.configured() {
		c.observe(OpListModels, string(KindNotConfigured))
		return []string{}
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	list, err := c.api.ListModels(ctx)
	if err != nil {
		e := classify(OpListModels, err)
		c.logger.WithError(err).Warn("Failed to list models",
			logging.Field{Key: logging.FieldReason, Value: string(e.Kind)})
		c.observe(OpListModels, string(e.Kind))
		return []string{}
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	c.observe(OpListModels, metrics.OutcomeSuccess)
	return ids
}

// Complete issues one POST {baseURL}/chat/completions and returns
// choices[0].message.content. An empty model selects the configured default.
// Every failure, including a timeout, is returned as *Error.
func (c *Client) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	if !c.configured() {
		c.observe(OpComplete, string(KindNotConfigured))
		return "", &Error{Op: OpComplete, Kind: KindNotConfigured, Err: ErrNotConfigured}
	}
	if model == "" {
		model = c.opts.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toOpenAIMessages(messages),
		Temperature: Temperature,
		TopP:        TopP,
		MaxTokens:   MaxTokens,
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		e := classify(OpComplete, err)
		c.observe(OpComplete, string(e.Kind))
		return "", e
	}

	content, shapeErr := extractContent(resp)
	if shapeErr != nil {
		c.observe(OpComplete, string(shapeErr.Kind))
		return "", shapeErr
	}

	c.logger.Debug("Model completion received",
		logging.Field{Key: logging.FieldModel, Value: model},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	c.observe(OpComplete, metrics.OutcomeSuccess)
	return content, nil
}

// extractContent checks the expected response shape before reading
// choices[0].message.content.
func extractContent(resp openai.ChatCompletionResponse) (string, *Error) {
	if len(resp.Choices) == 0 {
		return "", &Error{Op: OpComplete, Kind: KindMalformed, Err: errNoChoices}
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &Error{Op: OpComplete, Kind: KindEmpty, Err: errEmptyContent}
	}
	return content, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.opts.Timeout > 0 {
		return context.WithTimeout(ctx, c.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) observe(op, outcome string) {
	c.recorder.ObserveModelRequest(op, outcome)
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
