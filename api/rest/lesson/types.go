package lesson

import (
	lessoncore "codeberg.org/lessonplanner/server/internal/lesson"
	"codeberg.org/lessonplanner/server/internal/usage"
)

// request payload for lesson generation
type GenerateRequest struct {
	Grade     string `json:"grade" binding:"required,max=64" example:"5th Grade"`
	Topic     string `json:"topic" binding:"required,max=200" example:"Fractions"`
	ImageData string `json:"image_data,omitempty" binding:"omitempty,max=14680064"` // base64, optionally a data URI; ~10 MiB image limit
}

// request payload for refining an existing lesson
type RefineRequest struct {
	CurrentData *lessoncore.Artifact `json:"current_data" binding:"required"`
	Prompt      string               `json:"prompt" example:"Add a vocabulary warm-up"`
	Grade       string               `json:"grade" binding:"max=64"`
	Topic       string               `json:"topic" binding:"max=200"`
}

// response payload for both endpoints
type LessonResponse struct {
	lessoncore.Artifact
	Tier           string          `json:"tier" example:"free"`
	UsageRemaining usage.Remaining `json:"usage_remaining" swaggertype:"string" example:"2"`
}
