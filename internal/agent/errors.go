package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/lessonplanner/server/internal/llm"
)

// closed set of generation failure kinds
type Kind string

const (
	KindSchemaViolation       Kind = "schema_violation"
	KindUpstreamUnavailable   Kind = "upstream_unavailable"
	KindQuotaExceededUpstream Kind = "quota_exceeded_upstream"
)

var (
	ErrSchemaViolation       = errors.New("model output does not match the artifact schema")
	ErrUpstreamUnavailable   = errors.New("model provider unavailable")
	ErrQuotaExceededUpstream = errors.New("model provider quota exceeded")

	ErrMissingPriorArtifact = errors.New("refinement requires a prior artifact")
)

var kindSentinels = map[Kind]error{
	KindSchemaViolation:       ErrSchemaViolation,
	KindUpstreamUnavailable:   ErrUpstreamUnavailable,
	KindQuotaExceededUpstream: ErrQuotaExceededUpstream,
}

type Error struct {
	Kind Kind
	Err  error
	Raw  string // raw model output, set for schema violations
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// matches the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// maps a provider error to quota exhaustion or general unavailability
func ClassifyProviderError(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUpstreamUnavailable
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return KindQuotaExceededUpstream
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"insufficient_quota", "billing", "quota"} {
		if strings.Contains(msg, marker) {
			return KindQuotaExceededUpstream
		}
	}

	return KindUpstreamUnavailable
}

var modelUnavailableMarkers = []string{
	"not found",
	"not_found",
	"does not exist",
	"unsupported",
	"not supported",
	"unknown",
}

// reports whether the provider rejected the requested model itself
func IsModelUnavailable(err error) bool {
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.StatusCode == http.StatusNotFound || apiErr.Code == "model_not_found" {
		return true
	}

	msg := strings.ToLower(apiErr.Message)
	if !strings.Contains(msg, "model") {
		return false
	}

	for _, marker := range modelUnavailableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
