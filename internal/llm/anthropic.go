package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	anthropicMessagesURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	defaultMaxTokens      = 4096
	defaultTemperature    = 0.7
)

// shared HTTP client for Anthropic API calls
var anthropicHTTPClient = &http.Client{
	Timeout: 90 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Anthropic API calls (50 requests/second with burst capacity of 10)
var anthropicRateLimiter = rate.NewLimiter(50, 10)

type messagesRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float32            `json:"temperature"`
}

// content is either a plain string or a list of content blocks
type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesResponse struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
	Model   string         `json:"model"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type AnthropicConfig struct {
	APIKey      string
	Model       string  // e.g., "claude-sonnet-4-20250514"
	MaxTokens   int     // max tokens for response
	Temperature float32 // 0.0 to 1.0, sent as given
	BaseURL     string  // overrides the messages endpoint (tests, proxies)
}

type AnthropicGenerator struct {
	config     AnthropicConfig
	httpClient *http.Client
}

func NewAnthropicGenerator(config AnthropicConfig) *AnthropicGenerator {
	if config.Model == "" {
		config.Model = defaultAnthropicModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	if config.BaseURL == "" {
		config.BaseURL = anthropicMessagesURL
	}

	return &AnthropicGenerator{
		config:     config,
		httpClient: anthropicHTTPClient,
	}
}

func (g *AnthropicGenerator) Model() string {
	return g.config.Model
}

func (g *AnthropicGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	model := req.Model
	if model == "" {
		model = g.config.Model
	}

	// determine max tokens (use request value or fall back to config)
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	messages := make([]anthropicMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, toAnthropicMessage(msg))
	}

	reqBody := messagesRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      req.SystemPrompt,
		Temperature: g.config.Temperature,
		Messages:    messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.config.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	// rate limiting
	if err := anthropicRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, newAPIError(ProviderAnthropic, model, resp.StatusCode, body)
	}

	var apiResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var text strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	respModel := apiResp.Model
	if respModel == "" {
		respModel = model
	}

	return &TextGenerationResponse{
		Text:  strings.TrimSpace(text.String()),
		Model: respModel,
		Usage: Usage{
			InputTokens:  apiResp.Usage.InputTokens,
			OutputTokens: apiResp.Usage.OutputTokens,
		},
	}, nil
}

// image messages become a text block followed by base64 image blocks
func toAnthropicMessage(msg Message) anthropicMessage {
	if len(msg.Images) == 0 {
		return anthropicMessage{Role: msg.Role, Content: msg.Content}
	}

	blocks := make([]contentBlock, 0, len(msg.Images)+1)
	blocks = append(blocks, contentBlock{Type: "text", Text: msg.Content})

	for _, img := range msg.Images {
		blocks = append(blocks, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: img.MIMEType,
				Data:      img.Data,
			},
		})
	}

	return anthropicMessage{Role: msg.Role, Content: blocks}
}
