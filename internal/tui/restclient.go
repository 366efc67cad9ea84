package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/lessonplanner/server/internal/lesson"
	tea "github.com/charmbracelet/bubbletea"
)

// timeout for lesson requests; a generation may try two models
const lessonRequestTimeout = 150 * time.Second

// manages HTTP requests to the lesson REST API
type LessonClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a new lesson REST client
func NewLessonClient(endpoint, token string) *LessonClient {
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &LessonClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		httpClient: &http.Client{
			Timeout: lessonRequestTimeout,
		},
	}
}

func (c *LessonClient) SetToken(token string) {
	c.token = token
}

// requests a new lesson for a grade and topic
func (c *LessonClient) Generate(ctx context.Context, grade, topic string) (*LessonResponse, error) {
	return c.post(ctx, "/generate-lesson", generateRequest{Grade: grade, Topic: topic})
}

// asks the server to apply an instruction to the current lesson
func (c *LessonClient) Refine(ctx context.Context, current lesson.Artifact, instruction, grade, topic string) (*LessonResponse, error) {
	return c.post(ctx, "/generate-lesson/refine", refineRequest{
		CurrentData: current,
		Prompt:      instruction,
		Grade:       grade,
		Topic:       topic,
	})
}

// returns a tea.Cmd that sends a generate request
func (c *LessonClient) GenerateCmd(grade, topic string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lessonRequestTimeout)
		defer cancel()

		resp, err := c.Generate(ctx, grade, topic)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return LessonMsg{response: resp}
	}
}

// returns a tea.Cmd that sends a refine request
func (c *LessonClient) RefineCmd(current lesson.Artifact, instruction, grade, topic string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lessonRequestTimeout)
		defer cancel()

		resp, err := c.Refine(ctx, current, instruction, grade, topic)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return LessonMsg{response: resp}
	}
}

func (c *LessonClient) post(ctx context.Context, path string, payload any) (*LessonResponse, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	var result LessonResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

// quota denials carry an upgrade link worth showing to the user
func parseErrorResponse(status int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("request failed with status %d: %s", status, strings.TrimSpace(string(body)))
	}

	if errResp.UpgradeURL != "" {
		return fmt.Errorf("%s (upgrade at %s)", errResp.Message, errResp.UpgradeURL)
	}

	return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
}

type generateRequest struct {
	Grade string `json:"grade"`
	Topic string `json:"topic"`
}

type refineRequest struct {
	CurrentData lesson.Artifact `json:"current_data"`
	Prompt      string          `json:"prompt"`
	Grade       string          `json:"grade,omitempty"`
	Topic       string          `json:"topic,omitempty"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	UpgradeURL string `json:"upgrade_url,omitempty"`
}
