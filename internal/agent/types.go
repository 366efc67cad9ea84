package agent

import (
	"strings"
	"time"

	"codeberg.org/lessonplanner/server/internal/lesson"
	"codeberg.org/lessonplanner/server/internal/llm"
)

// selects between fresh generation and refinement of an existing artifact
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeRefine   Mode = "refine"
)

// model name reported for artifacts served from the mock generator
const MockModel = "mock"

const defaultAttemptTimeout = 60 * time.Second

// orchestrates model calls for lesson generation and refinement
type Agent struct {
	generator llm.TextGenerator
	config    Config
}

type Config struct {
	PrimaryModel   string
	SecondaryModel string        // retried once when the primary is unknown to the provider
	AttemptTimeout time.Duration // bounds each individual model call
	MaxTokens      int
}

// contains all inputs for one generation. build with NewGenerateRequest or
// NewRefineRequest; both copy their inputs so the request never aliases caller data
type GenerationRequest struct {
	Grade       string
	Topic       string
	Image       *llm.Image // nil for text-only requests
	Mode        Mode
	Prior       *lesson.Artifact
	Instruction string
}

func NewGenerateRequest(grade, topic, imageData string) GenerationRequest {
	req := GenerationRequest{
		Grade: grade,
		Topic: topic,
		Mode:  ModeGenerate,
	}

	if strings.TrimSpace(imageData) != "" {
		img := ParseDataURI(imageData)
		req.Image = &img
	}

	return req
}

func NewRefineRequest(grade, topic string, prior lesson.Artifact, instruction string) GenerationRequest {
	clone := prior.Clone()

	return GenerationRequest{
		Grade:       grade,
		Topic:       topic,
		Mode:        ModeRefine,
		Prior:       &clone,
		Instruction: instruction,
	}
}

// returns a copy of the request with the image dropped
func (r GenerationRequest) WithoutImage() GenerationRequest {
	r.Image = nil
	return r
}

// how the artifact in a Result was produced
type Outcome string

const (
	OutcomeGenerated      Outcome = "generated"
	OutcomeMockFallback   Outcome = "mock_fallback"   // upstream quota exhausted, mock served
	OutcomeRefineFallback Outcome = "refine_fallback" // refinement failed, prior artifact returned
	OutcomeUnchanged      Outcome = "unchanged"       // empty refinement instruction
)

type Result struct {
	Artifact lesson.Artifact
	Model    string
	Outcome  Outcome
	Cause    error // set for fallback outcomes
	Usage    llm.Usage
}

// reports whether the artifact came from somewhere other than a successful model call
func (r *Result) Fallback() bool {
	return r.Outcome == OutcomeMockFallback || r.Outcome == OutcomeRefineFallback
}
