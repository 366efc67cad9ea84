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
	openaiChatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel       = "gpt-4o"
	defaultOpenAIMaxTokens   = 4096
)

// shared HTTP client for OpenAI API calls
// reuses connection pool and timeout configuration
var openaiHTTPClient = &http.Client{
	Timeout: 90 * time.Second, // per-attempt deadlines come from the caller's context
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for OpenAI API calls (50 requests/second with burst capacity of 10)
var openaiRateLimiter = rate.NewLimiter(50, 10)

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// content is either a plain string or a list of content parts
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type OpenAIConfig struct {
	APIKey      string
	Model       string // e.g., "gpt-4o"
	MaxTokens   int
	Temperature float32 // sent as given
	BaseURL     string // overrides the chat completions endpoint (tests, proxies)
}

type OpenAIGenerator struct {
	config     OpenAIConfig
	httpClient *http.Client
}

func NewOpenAIGenerator(config OpenAIConfig) *OpenAIGenerator {
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultOpenAIMaxTokens
	}

	if config.BaseURL == "" {
		config.BaseURL = openaiChatCompletionsURL
	}

	return &OpenAIGenerator{
		config:     config,
		httpClient: openaiHTTPClient, // use shared client with proper timeouts and connection pooling
	}
}

func (g *OpenAIGenerator) Model() string {
	return g.config.Model
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	model := req.Model
	if model == "" {
		model = g.config.Model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}

	for _, msg := range req.Messages {
		messages = append(messages, toChatMessage(msg))
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: g.config.Temperature,
	}

	if req.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
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
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.config.APIKey))

	// rate limiting
	if err := openaiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, newAPIError(ProviderOpenAI, model, resp.StatusCode, body)
	}

	var apiResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	respModel := apiResp.Model
	if respModel == "" {
		respModel = model
	}

	return &TextGenerationResponse{
		Text:  strings.TrimSpace(apiResp.Choices[0].Message.Content),
		Model: respModel,
		Usage: Usage{
			InputTokens:  apiResp.Usage.PromptTokens,
			OutputTokens: apiResp.Usage.CompletionTokens,
		},
	}, nil
}

// text-only messages stay plain strings; images become data-URI image_url parts
func toChatMessage(msg Message) chatMessage {
	if len(msg.Images) == 0 {
		return chatMessage{Role: msg.Role, Content: msg.Content}
	}

	parts := make([]chatContentPart, 0, len(msg.Images)+1)
	parts = append(parts, chatContentPart{Type: "text", Text: msg.Content})

	for _, img := range msg.Images {
		parts = append(parts, chatContentPart{
			Type:     "image_url",
			ImageURL: &chatImageURL{URL: fmt.Sprintf("data:%s;base64,%s", img.MIMEType, img.Data)},
		})
	}

	return chatMessage{Role: msg.Role, Content: parts}
}
