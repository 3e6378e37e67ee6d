// Package llm talks to external language-model services for scenario
// generation and report analysis. Completions are untrusted free-form
// text; callers coerce them into structured types via ParseScenarios
// and ParseAnalysis and fall back to deterministic local generation on
// any failure. A failed call is never retried.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/apiprobe/apiprobe/pkg/defaults"
	"github.com/apiprobe/apiprobe/pkg/duration"
	"github.com/apiprobe/apiprobe/pkg/httpclient"
	"github.com/apiprobe/apiprobe/pkg/iohelper"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
)

// Provider identifies an LLM provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"

	// ProviderNone disables external calls; callers use the
	// deterministic fallback path end to end.
	ProviderNone Provider = "none"
)

// Environment variables consulted by FromEnv.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvBaseURL      = "APIPROBE_LLM_BASE_URL"
	EnvModel        = "APIPROBE_LLM_MODEL"
)

// Client is a single-round-trip completion service.
type Client interface {
	// Provider returns the provider name.
	Provider() Provider

	// Complete sends one prompt and returns the raw text completion.
	// The result carries no structural guarantee.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Validate checks that credentials are present.
	Validate(ctx context.Context) error
}

// FromEnv builds a client for the named provider using environment
// credentials. ProviderNone returns nil with no error.
func FromEnv(provider Provider) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		c := NewOpenAIClient(os.Getenv(EnvOpenAIKey), os.Getenv(EnvModel))
		if base := os.Getenv(EnvBaseURL); base != "" {
			c.BaseURL = base
		}
		return c, nil
	case ProviderAnthropic:
		c := NewAnthropicClient(os.Getenv(EnvAnthropicKey), os.Getenv(EnvModel))
		if base := os.Getenv(EnvBaseURL); base != "" {
			c.BaseURL = base
		}
		return c, nil
	case ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", provider)
	}
}

func newLLMHTTPClient() *http.Client {
	return httpclient.New(httpclient.Config{
		Timeout:            duration.HTTPLLMCall,
		InsecureSkipVerify: false,
		FollowRedirects:    true,
	})
}

// OpenAIClient implements Client for the OpenAI chat-completions API.
type OpenAIClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    "https://api.openai.com/v1",
		httpClient: newLLMHTTPClient(),
	}
}

func (c *OpenAIClient) Provider() Provider {
	return ProviderOpenAI
}

func (c *OpenAIClient) Validate(ctx context.Context) error {
	if c.APIKey == "" {
		return fmt.Errorf("llm: missing OpenAI API key (%s)", EnvOpenAIKey)
	}
	return nil
}

type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := c.Validate(ctx); err != nil {
		return "", err
	}
	if maxTokens <= 0 {
		maxTokens = defaults.CompletionBudget
	}

	payload, err := jsonutil.Marshal(openAIRequest{
		Model:     c.Model,
		Messages:  []openAIMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", defaults.ContentTypeJSON)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("User-Agent", defaults.UAMinimal)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: openai call: %w", err)
	}
	defer resp.Body.Close()

	body, err := iohelper.ReadBody(resp.Body, iohelper.LLMMaxBodySize)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	var decoded openAIResponse
	if err := jsonutil.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("llm: openai error: %s", decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: openai status %d", resp.StatusCode)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("llm: empty completion")
	}
	return decoded.Choices[0].Message.Content, nil
}

// AnthropicClient implements Client for the Anthropic messages API.
type AnthropicClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	httpClient *http.Client
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &AnthropicClient{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    "https://api.anthropic.com/v1",
		httpClient: newLLMHTTPClient(),
	}
}

func (c *AnthropicClient) Provider() Provider {
	return ProviderAnthropic
}

func (c *AnthropicClient) Validate(ctx context.Context) error {
	if c.APIKey == "" {
		return fmt.Errorf("llm: missing Anthropic API key (%s)", EnvAnthropicKey)
	}
	return nil
}

type anthropicRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []openAIMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := c.Validate(ctx); err != nil {
		return "", err
	}
	if maxTokens <= 0 {
		maxTokens = defaults.CompletionBudget
	}

	payload, err := jsonutil.Marshal(anthropicRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		Messages:  []openAIMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", defaults.ContentTypeJSON)
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("User-Agent", defaults.UAMinimal)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: anthropic call: %w", err)
	}
	defer resp.Body.Close()

	body, err := iohelper.ReadBody(resp.Body, iohelper.LLMMaxBodySize)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	var decoded anthropicResponse
	if err := jsonutil.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("llm: anthropic error: %s", decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: anthropic status %d", resp.StatusCode)
	}
	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("llm: empty completion")
}
