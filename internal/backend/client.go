// Package backend invokes a named text-generation model through an
// OpenAI-compatible chat-completions endpoint (OpenRouter by default) and
// measures what the benchmark cares about: wall-clock latency and reported
// cost. One outbound call per invocation; no retries, no caching.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/respjson"
	"github.com/openai/openai-go/shared"
)

// Error reports a failed or malformed generation call.
type Error struct {
	Model string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Model, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// GenerationResult is the outcome of one generation call. Cost and token
// fields are nil when the backend did not report them; nil is distinct
// from zero, because zero is a valid real cost.
type GenerationResult struct {
	Content          string   `json:"content"`
	ElapsedSeconds   float64  `json:"elapsed_s"`
	CostUSD          *float64 `json:"cost_usd,omitempty"`
	TotalTokens      *int64   `json:"total_tokens,omitempty"`
	PromptTokens     *int64   `json:"prompt_tokens,omitempty"`
	CompletionTokens *int64   `json:"completion_tokens,omitempty"`
}

// Client calls a chat-completions endpoint with bearer auth. Any provider
// exposing the OpenAI response shape is substitutable via baseURL.
type Client struct {
	api     openai.Client
	timeout time.Duration
}

// NewClient builds a Client. The API key is injected here, never read from
// the environment inside call paths. A zero timeout disables the per-call
// deadline.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	opts := []openaiopt.RequestOption{
		openaiopt.WithAPIKey(apiKey),
		// One outbound call per invocation. SDK retries would multiply
		// calls and fold backoff into the measured latency.
		openaiopt.WithMaxRetries(0),
		openaiopt.WithHeader("HTTP-Referer", "https://markm8.com"),
		openaiopt.WithHeader("X-Title", "MarkM8 Synthesis Benchmark"),
	}
	if baseURL != "" {
		opts = append(opts, openaiopt.WithBaseURL(baseURL))
	}
	return &Client{api: openai.NewClient(opts...), timeout: timeout}
}

// Generate sends a single-user-message completion request and returns the
// first choice's text. Elapsed time spans the full round trip, network
// included; that measurement is the point of the benchmark, so it is taken
// immediately around the call. Timeouts surface as a *Error like any other
// backend failure.
func (c *Client) Generate(ctx context.Context, model, prompt string, temperature float64) (*GenerationResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    []openai.ChatCompletionMessageParamUnion{userMessage(prompt)},
		Temperature: openai.Float(temperature),
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, params)
	elapsed := time.Since(start)
	if err != nil {
		return nil, &Error{Model: model, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Model: model, Err: errors.New("no choices in response")}
	}

	res := &GenerationResult{
		Content:        resp.Choices[0].Message.Content,
		ElapsedSeconds: elapsed.Seconds(),
		CostUSD:        extraCost(resp.Usage.JSON.ExtraFields),
	}
	if resp.Usage.TotalTokens > 0 {
		res.TotalTokens = ptr(resp.Usage.TotalTokens)
	}
	if resp.Usage.PromptTokens > 0 {
		res.PromptTokens = ptr(resp.Usage.PromptTokens)
	}
	if resp.Usage.CompletionTokens > 0 {
		res.CompletionTokens = ptr(resp.Usage.CompletionTokens)
	}
	return res, nil
}

// extraCost reads OpenRouter's non-standard usage.cost field. A missing or
// unparseable field means the cost is unknown, never zero.
func extraCost(extra map[string]respjson.Field) *float64 {
	f, ok := extra["cost"]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(f.Raw(), 64)
	if err != nil {
		return nil
	}
	return &v
}

func userMessage(text string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(text),
			},
		},
	}
}

func ptr[T any](v T) *T { return &v }
