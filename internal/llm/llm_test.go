package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerator_SendsJSONModeAndImages(t *testing.T) {
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-4o","choices":[{"index":0,"message":{"role":"assistant","content":" {\"ok\":true} "}}],"usage":{"prompt_tokens":12,"completion_tokens":5}}`)) //nolint:errcheck
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "system",
		Messages: []Message{{
			Role:    "user",
			Content: "describe",
			Images:  []Image{{MIMEType: "image/png", Data: "AAAA"}},
		}},
		JSONMode: true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp.Text)
	assert.Equal(t, "gpt-4o", resp.Model)
	assert.Equal(t, 12, resp.Usage.InputTokens)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, captured["response_format"])

	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])

	parts := messages[1].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	imagePart := parts[1].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	assert.Equal(t, "data:image/png;base64,AAAA", imagePart["image_url"].(map[string]any)["url"])
}

func TestOpenAIGenerator_ModelOverride(t *testing.T) {
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: "k", BaseURL: server.URL})

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
		Model:    "gpt-3.5-turbo",
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo", captured["model"])
	assert.Equal(t, "gpt-3.5-turbo", resp.Model)
	assert.Nil(t, captured["response_format"])

	// text-only content stays a plain string
	messages := captured["messages"].([]any)
	assert.Equal(t, "hello", messages[0].(map[string]any)["content"])
}

func TestOpenAIGenerator_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: "k", BaseURL: server.URL})

	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ProviderOpenAI, apiErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "insufficient_quota", apiErr.Type)
	assert.Equal(t, "gpt-4o", apiErr.Model)
	assert.Contains(t, err.Error(), "status 429")
}

func TestAnthropicGenerator_SendsImageBlocks(t *testing.T) {
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_, _ = w.Write([]byte(`{"model":"claude-sonnet-4-20250514","content":[{"type":"text","text":"{\"a\":1}"}],"usage":{"input_tokens":3,"output_tokens":4}}`)) //nolint:errcheck
	}))
	defer server.Close()

	gen := NewAnthropicGenerator(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "system",
		Messages: []Message{{
			Role:    "user",
			Content: "describe",
			Images:  []Image{{MIMEType: "image/jpeg", Data: "BBBB"}},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, resp.Text)
	assert.Equal(t, 4, resp.Usage.OutputTokens)
	assert.Equal(t, "system", captured["system"])

	messages := captured["messages"].([]any)
	blocks := messages[0].(map[string]any)["content"].([]any)
	require.Len(t, blocks, 2)

	source := blocks[1].(map[string]any)["source"].(map[string]any)
	assert.Equal(t, "base64", source["type"])
	assert.Equal(t, "image/jpeg", source["media_type"])
	assert.Equal(t, "BBBB", source["data"])
}

func TestAnthropicGenerator_ModelNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"not_found_error","message":"model: claude-x"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	gen := NewAnthropicGenerator(AnthropicConfig{APIKey: "k", Model: "claude-x", BaseURL: server.URL})

	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found_error", apiErr.Type)
	assert.Equal(t, "claude-x", apiErr.Model)
}

func TestNewAPIError_UnstructuredBody(t *testing.T) {
	apiErr := newAPIError(ProviderOpenAI, "gpt-4o", http.StatusBadGateway, []byte("  upstream exploded \n"))

	assert.Equal(t, "upstream exploded", apiErr.Message)
	assert.Equal(t, "openai API request failed with status 502: upstream exploded", apiErr.Error())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GENERATOR_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PRIMARY_MODEL", "")
	t.Setenv("SECONDARY_MODEL", "gpt-4o-mini")
	t.Setenv("GENERATOR_MAX_TOKENS", "1024")
	t.Setenv("GENERATOR_TEMPERATURE", "not-a-number")

	config, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, "gpt-4o", config.PrimaryModel)
	assert.Equal(t, "gpt-4o-mini", config.SecondaryModel)
	assert.Equal(t, 1024, config.MaxTokens)
	assert.InDelta(t, 0.7, config.Temperature, 0.0001)
}

func TestLoadConfig_ZeroTemperature(t *testing.T) {
	t.Setenv("GENERATOR_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GENERATOR_TEMPERATURE", "0")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Zero(t, config.Temperature)

	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: config.APIKey, Temperature: config.Temperature, BaseURL: server.URL})

	_, err = gen.GenerateText(context.Background(), TextGenerationRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.NoError(t, err)
	assert.Equal(t, float64(0), captured["temperature"])
}

func TestLoadConfig_MissingKey(t *testing.T) {
	t.Setenv("GENERATOR_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := LoadConfig()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestNewGeneratorWithConfig(t *testing.T) {
	gen, err := NewGeneratorWithConfig(&Config{Provider: ProviderAnthropic, APIKey: "k", PrimaryModel: "claude-test"})
	require.NoError(t, err)
	assert.Equal(t, "claude-test", gen.Model())

	_, err = NewGeneratorWithConfig(&Config{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewGeneratorWithConfig(nil)
	assert.Error(t, err)
}
