package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// a non-2xx response from a provider API
type APIError struct {
	Provider   Provider
	Model      string
	StatusCode int
	Type       string // provider error type, e.g. "insufficient_quota" or "invalid_request_error"
	Code       string // provider error code, e.g. "model_not_found"
	Message    string
}

func (e *APIError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s API request failed with status %d", e.Provider, e.StatusCode)

	if e.Type != "" {
		fmt.Fprintf(&b, " (%s", e.Type)
		if e.Code != "" && e.Code != e.Type {
			fmt.Fprintf(&b, "/%s", e.Code)
		}
		b.WriteString(")")
	} else if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}

	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}

	return b.String()
}

// both OpenAI and Anthropic nest their error under an "error" key
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

func newAPIError(provider Provider, model string, status int, body []byte) *APIError {
	apiErr := &APIError{
		Provider:   provider,
		Model:      model,
		StatusCode: status,
	}

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Message = parsed.Error.Message
	apiErr.Type = parsed.Error.Type

	// openai sends code as a string, some proxies send it as a number
	switch code := parsed.Error.Code.(type) {
	case string:
		apiErr.Code = code
	case float64:
		apiErr.Code = fmt.Sprintf("%.0f", code)
	}

	return apiErr
}
