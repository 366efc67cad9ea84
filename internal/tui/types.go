package tui

import (
	"codeberg.org/lessonplanner/server/internal/lesson"
	"codeberg.org/lessonplanner/server/internal/usage"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// represents the current state of the TUI
type AppState int

const (
	StateForm AppState = iota
	StateLoading
	StateLesson
	StateRefine
)

// main TUI application model
type Model struct {
	state    AppState
	width    int
	height   int
	err      error
	client   *LessonClient
	form     *Form
	spinner  spinner.Model
	viewport viewport.Model
	refine   textinput.Model
	lesson   *LessonResponse
	grade    string
	topic    string
	ready    bool
}

// the body returned by both lesson endpoints
type LessonResponse struct {
	lesson.Artifact
	Tier           string          `json:"tier"`
	UsageRemaining usage.Remaining `json:"usage_remaining"`
}

// sent when a generate or refine request completes
type LessonMsg struct {
	response *LessonResponse
}

// sent when a request fails
type ErrorMsg struct {
	err error
}

// sent when the form is submitted
type SubmitMsg struct {
	Grade string
	Topic string
	Token string
}
