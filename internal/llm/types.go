package llm

import "context"

// represents different LLM providers
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// generates text from a (possibly multimodal) conversation
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// a base64 image attached to a message, without any data-URI prefix
type Image struct {
	MIMEType string
	Data     string
}

// a single conversation turn
type Message struct {
	Role    string
	Content string
	Images  []Image
}

type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	Model        string // overrides the generator's configured model when set
	MaxTokens    int
	JSONMode     bool // ask the provider for a bare JSON object when supported
}

type TextGenerationResponse struct {
	Text  string
	Model string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// reports whether any message carries an image part
func (r TextGenerationRequest) HasImages() bool {
	for _, msg := range r.Messages {
		if len(msg.Images) > 0 {
			return true
		}
	}

	return false
}

// holds configuration for generator initialization
type Config struct {
	Provider       Provider
	APIKey         string
	PrimaryModel   string // e.g., "gpt-4o"
	SecondaryModel string // e.g., "gpt-3.5-turbo", used when the primary is unavailable
	MaxTokens      int
	Temperature    float32
}
