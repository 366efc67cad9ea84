package lesson

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"codeberg.org/lessonplanner/server/internal/access"
	"codeberg.org/lessonplanner/server/internal/agent"
	"codeberg.org/lessonplanner/server/internal/auth"
	"codeberg.org/lessonplanner/server/internal/errors"
	"codeberg.org/lessonplanner/server/internal/logger"
	"codeberg.org/lessonplanner/server/internal/metrics"
	"codeberg.org/lessonplanner/server/internal/usage"
	"github.com/gin-gonic/gin"
)

// admits requests and counts completed generations
type Gate interface {
	Admit(ctx context.Context, identity string) (access.Decision, error)
	Record(ctx context.Context, identity string, decision access.Decision) (usage.Remaining, error)
	Release(ctx context.Context, identity string, decision access.Decision) (usage.Remaining, error)
}

// produces lesson artifacts
type Generator interface {
	Execute(ctx context.Context, req agent.GenerationRequest) (*agent.Result, error)
}

type handler struct {
	gate       Gate
	generator  Generator
	upgradeURL string
}

// GenerateHandler godoc
// @Summary Generate a lesson plan and worksheet
// @Description Generates a lesson plan and a 9-item worksheet for a grade and topic, optionally grounded on an uploaded image
// @Tags lesson
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateRequest true "Generation request"
// @Success 200 {object} LessonResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.QuotaExceededResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /generate-lesson [post]
func (h *handler) GenerateHandler(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.ValidationError(c, err)
		return
	}

	grade := strings.TrimSpace(req.Grade)
	topic := strings.TrimSpace(req.Topic)

	if grade == "" || topic == "" {
		errors.ValidationError(c, fmt.Errorf("grade and topic are required"))
		return
	}

	if strings.TrimSpace(req.ImageData) != "" {
		img := agent.ParseDataURI(req.ImageData)
		if _, err := base64.StdEncoding.DecodeString(img.Data); err != nil {
			errors.ValidationError(c, fmt.Errorf("image_data is not valid base64: %w", err))
			return
		}
	}

	h.serve(c, agent.NewGenerateRequest(grade, topic, req.ImageData))
}

// RefineHandler godoc
// @Summary Refine an existing lesson
// @Description Applies a free-text instruction to a previously generated lesson; on failure the current lesson is returned unchanged
// @Tags lesson
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RefineRequest true "Refinement request"
// @Success 200 {object} LessonResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.QuotaExceededResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /generate-lesson/refine [post]
func (h *handler) RefineHandler(c *gin.Context) {
	var req RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.ValidationError(c, err)
		return
	}

	if err := req.CurrentData.Validate(); err != nil {
		errors.ValidationError(c, fmt.Errorf("current_data: %w", err))
		return
	}

	h.serve(c, agent.NewRefineRequest(
		strings.TrimSpace(req.Grade),
		strings.TrimSpace(req.Topic),
		*req.CurrentData,
		req.Prompt,
	))
}

// shared admission, generation and accounting flow for both endpoints
func (h *handler) serve(c *gin.Context, req agent.GenerationRequest) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	ctx := c.Request.Context()

	decision, err := h.gate.Admit(ctx, identity)
	if stderrors.Is(err, access.ErrQuotaExceeded) {
		metrics.RecordAdmission(decision.Tier.String(), false)
		errors.QuotaExceeded(c, decision.Tier.String(), h.upgradeURL)
		return
	}

	if err != nil {
		errors.InternalError(c, "failed to check access", err)
		return
	}

	metrics.RecordAdmission(decision.Tier.String(), true)

	start := time.Now()
	result, err := h.generator.Execute(ctx, req)
	if err != nil {
		metrics.RecordGeneration(string(req.Mode), "error", time.Since(start))
		h.release(ctx, identity, decision)

		logSchemaViolation(identity, err)

		if stderrors.Is(err, agent.ErrMissingPriorArtifact) {
			errors.ValidationError(c, err)
			return
		}

		errors.InternalError(c, "failed to generate lesson", err)
		return
	}

	metrics.RecordGeneration(string(req.Mode), string(result.Outcome), time.Since(start))

	if result.Fallback() {
		logger.Warn("serving fallback lesson",
			"identity", identity,
			"mode", req.Mode,
			"outcome", result.Outcome,
			"error", result.Cause,
		)

		logSchemaViolation(identity, result.Cause)
	}

	remaining := decision.Remaining

	if countsAgainstQuota(result.Outcome) {
		remaining, err = h.gate.Record(ctx, identity, decision)
		if err != nil {
			errors.InternalError(c, "failed to record usage", err)
			return
		}
	} else if released, ok := h.release(ctx, identity, decision); ok {
		remaining = released
	}

	logger.Info("lesson served",
		"identity", identity,
		"mode", req.Mode,
		"outcome", result.Outcome,
		"model", result.Model,
		"tier", decision.Tier,
	)

	c.JSON(http.StatusOK, LessonResponse{
		Artifact:       result.Artifact,
		Tier:           decision.Tier.String(),
		UsageRemaining: remaining,
	})
}

// gives the reserved slot back; the caller's cancellation must not keep it taken
func (h *handler) release(ctx context.Context, identity string, decision access.Decision) (usage.Remaining, bool) {
	remaining, err := h.gate.Release(context.WithoutCancel(ctx), identity, decision)
	if err != nil {
		logger.ErrorErr(err, "failed to release usage", "identity", identity)
		return usage.Remaining{}, false
	}

	return remaining, true
}

func logSchemaViolation(identity string, err error) {
	var agentErr *agent.Error
	if stderrors.As(err, &agentErr) && agentErr.Kind == agent.KindSchemaViolation {
		logger.Warn("model output failed schema validation",
			"identity", identity,
			"raw", agentErr.Raw,
		)
	}
}

// new content was produced, by a model or by the mock
func countsAgainstQuota(outcome agent.Outcome) bool {
	return outcome == agent.OutcomeGenerated || outcome == agent.OutcomeMockFallback
}
