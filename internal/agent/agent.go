package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/lessonplanner/server/internal/lesson"
	"codeberg.org/lessonplanner/server/internal/llm"
	"codeberg.org/lessonplanner/server/internal/metrics"
)

func New(generator llm.TextGenerator, config Config) *Agent {
	if config.PrimaryModel == "" {
		config.PrimaryModel = generator.Model()
	}

	if config.AttemptTimeout <= 0 {
		config.AttemptTimeout = defaultAttemptTimeout
	}

	return &Agent{
		generator: generator,
		config:    config,
	}
}

// runs one generation or refinement. quota exhaustion upstream is absorbed into the
// mock artifact, refinement failures into the prior artifact; everything else is an *Error
func (a *Agent) Execute(ctx context.Context, req GenerationRequest) (*Result, error) {
	if req.Mode == ModeRefine {
		return a.refine(ctx, req)
	}

	artifact, resp, err := a.run(ctx, req)
	if err == nil {
		return &Result{
			Artifact: *artifact,
			Model:    resp.Model,
			Outcome:  OutcomeGenerated,
			Usage:    resp.Usage,
		}, nil
	}

	if errors.Is(err, ErrQuotaExceededUpstream) {
		return &Result{
			Artifact: lesson.BuildMock(req.Grade, req.Topic),
			Model:    MockModel,
			Outcome:  OutcomeMockFallback,
			Cause:    err,
		}, nil
	}

	return nil, err
}

func (a *Agent) refine(ctx context.Context, req GenerationRequest) (*Result, error) {
	if req.Prior == nil {
		return nil, ErrMissingPriorArtifact
	}

	if strings.TrimSpace(req.Instruction) == "" {
		return &Result{
			Artifact: req.Prior.Clone(),
			Outcome:  OutcomeUnchanged,
		}, nil
	}

	artifact, resp, err := a.run(ctx, req)
	if err != nil {
		return &Result{
			Artifact: req.Prior.Clone(),
			Outcome:  OutcomeRefineFallback,
			Cause:    err,
		}, nil
	}

	return &Result{
		Artifact: *artifact,
		Model:    resp.Model,
		Outcome:  OutcomeGenerated,
		Usage:    resp.Usage,
	}, nil
}

// calls the primary model, falls back to the secondary text-only when the primary
// model is unavailable, then parses the output
func (a *Agent) run(ctx context.Context, req GenerationRequest) (*lesson.Artifact, *llm.TextGenerationResponse, error) {
	prompt, err := Build(req)
	if err != nil {
		return nil, nil, err
	}

	resp, err := a.attempt(ctx, prompt, a.config.PrimaryModel)

	if err != nil && IsModelUnavailable(err) && a.hasSecondary() {
		textOnly, buildErr := Build(req.WithoutImage())
		if buildErr != nil {
			return nil, nil, buildErr
		}

		metrics.RecordModelFallback(a.config.PrimaryModel, a.config.SecondaryModel)
		resp, err = a.attempt(ctx, textOnly, a.config.SecondaryModel)
	}

	if err != nil {
		return nil, nil, &Error{Kind: ClassifyProviderError(err), Err: err}
	}

	artifact, err := lesson.Parse(resp.Text)
	if err != nil {
		return nil, nil, &Error{Kind: KindSchemaViolation, Err: err, Raw: resp.Text}
	}

	return artifact, resp, nil
}

func (a *Agent) attempt(ctx context.Context, prompt llm.TextGenerationRequest, model string) (*llm.TextGenerationResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, a.config.AttemptTimeout)
	defer cancel()

	prompt.Model = model
	if prompt.MaxTokens == 0 {
		prompt.MaxTokens = a.config.MaxTokens
	}

	resp, err := a.generator.GenerateText(attemptCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate with %s: %w", model, err)
	}

	return resp, nil
}

func (a *Agent) hasSecondary() bool {
	return a.config.SecondaryModel != "" && a.config.SecondaryModel != a.config.PrimaryModel
}
