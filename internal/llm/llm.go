package llm

import (
	"fmt"
)

// creates a generator with auto-configuration from environment variables
func NewGenerator() (TextGenerator, *Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	generator, err := NewGeneratorWithConfig(config)
	if err != nil {
		return nil, nil, err
	}

	return generator, config, nil
}

// creates a generator with explicit configuration; the primary model is the default,
// the secondary is selected per request through TextGenerationRequest.Model
func NewGeneratorWithConfig(config *Config) (TextGenerator, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIGenerator(OpenAIConfig{
			APIKey:      config.APIKey,
			Model:       config.PrimaryModel,
			MaxTokens:   config.MaxTokens,
			Temperature: config.Temperature,
		}), nil
	case ProviderAnthropic:
		return NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.APIKey,
			Model:       config.PrimaryModel,
			MaxTokens:   config.MaxTokens,
			Temperature: config.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.Provider)
	}
}
