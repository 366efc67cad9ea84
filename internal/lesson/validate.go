package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrInvalidArtifact = errors.New("invalid artifact")

// checks the structural invariants of an artifact
func (a Artifact) Validate() error {
	plan := a.LessonPlan

	if len(plan.Objectives) == 0 {
		return fmt.Errorf("%w: lesson_plan.objectives is empty", ErrInvalidArtifact)
	}

	if len(plan.Materials) == 0 {
		return fmt.Errorf("%w: lesson_plan.materials is empty", ErrInvalidArtifact)
	}

	if len(plan.Activities) == 0 {
		return fmt.Errorf("%w: lesson_plan.activities is empty", ErrInvalidArtifact)
	}

	if strings.TrimSpace(plan.Assessment) == "" {
		return fmt.Errorf("%w: lesson_plan.assessment is empty", ErrInvalidArtifact)
	}

	if strings.TrimSpace(a.Worksheet.Instructions) == "" {
		return fmt.Errorf("%w: worksheet.instructions is empty", ErrInvalidArtifact)
	}

	if len(a.Worksheet.Items) == 0 {
		return fmt.Errorf("%w: worksheet.items is empty", ErrInvalidArtifact)
	}

	for i, item := range a.Worksheet.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("worksheet.items[%d]: %w", i, err)
		}
	}

	return nil
}

// checks a single worksheet item against its variant's rules
func (q QuestionItem) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question is empty", ErrInvalidArtifact)
	}

	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("%w: answer is empty", ErrInvalidArtifact)
	}

	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) != MultipleChoiceOptions {
			return fmt.Errorf("%w: multiple choice needs %d options, got %d", ErrInvalidArtifact, MultipleChoiceOptions, len(q.Options))
		}

		if !slices.Contains(q.Options, q.Answer) {
			return fmt.Errorf("%w: answer %q is not one of the options", ErrInvalidArtifact, q.Answer)
		}
	case TypeFillBlank, TypeShortAnswer:
		if len(q.Options) != 0 {
			return fmt.Errorf("%w: %s items do not take options", ErrInvalidArtifact, q.Type)
		}
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidArtifact, q.Type)
	}

	return nil
}

// decodes raw model output into a validated artifact.
// a single surrounding markdown fence is tolerated.
func Parse(raw string) (*Artifact, error) {
	body := stripFence(strings.TrimSpace(raw))
	if body == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidArtifact)
	}

	var artifact Artifact
	if err := json.Unmarshal([]byte(body), &artifact); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, err
	}

	return &artifact, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	newline := strings.Index(s, "\n")
	if newline == -1 {
		return s
	}

	body := s[newline+1:]
	end := strings.LastIndex(body, "```")
	if end == -1 {
		return s
	}

	return strings.TrimSpace(body[:end])
}
