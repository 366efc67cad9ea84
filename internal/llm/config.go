package llm

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultOpenAISecondaryModel    = "gpt-3.5-turbo"
	defaultAnthropicSecondaryModel = "claude-3-haiku-20240307"
)

// loads generator configuration from environment variables
func LoadConfig() (*Config, error) {
	provider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if provider == "" {
		provider = ProviderOpenAI // default
	}

	var apiKey, primaryModel, secondaryModel string

	switch provider {
	case ProviderOpenAI:
		apiKey = os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}

		primaryModel = defaultOpenAIModel
		secondaryModel = defaultOpenAISecondaryModel
	case ProviderAnthropic:
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}

		primaryModel = defaultAnthropicModel
		secondaryModel = defaultAnthropicSecondaryModel
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", provider)
	}

	if model := os.Getenv("PRIMARY_MODEL"); model != "" {
		primaryModel = model
	}

	if model := os.Getenv("SECONDARY_MODEL"); model != "" {
		secondaryModel = model
	}

	maxTokens := defaultMaxTokens
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			maxTokens = val
		}
	}

	temperature := float32(defaultTemperature)
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			temperature = float32(val)
		}
	}

	return &Config{
		Provider:       provider,
		APIKey:         apiKey,
		PrimaryModel:   primaryModel,
		SecondaryModel: secondaryModel,
		MaxTokens:      maxTokens,
		Temperature:    temperature,
	}, nil
}
