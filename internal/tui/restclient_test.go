package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/lessonplanner/server/internal/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonClient_Generate(t *testing.T) {
	var gotAuth string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-lesson", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockResponse()) //nolint:errcheck,gosec
	}))
	defer server.Close()

	client := NewLessonClient(server.URL+"/", "teacher-1")

	resp, err := client.Generate(context.Background(), "5th Grade", "Fractions")
	require.NoError(t, err)

	assert.Equal(t, "Bearer teacher-1", gotAuth)
	assert.Equal(t, generateRequest{Grade: "5th Grade", Topic: "Fractions"}, gotBody)
	assert.Equal(t, "free", resp.Tier)
	assert.Equal(t, lesson.BuildMock("5th Grade", "Fractions"), resp.Artifact)
}

func TestLessonClient_Refine(t *testing.T) {
	current := lesson.BuildMock("3rd Grade", "Insects")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-lesson/refine", r.URL.Path)

		var body refineRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, current, body.CurrentData)
		assert.Equal(t, "shorter", body.Prompt)

		json.NewEncoder(w).Encode(LessonResponse{Artifact: body.CurrentData, Tier: "pro"}) //nolint:errcheck,gosec
	}))
	defer server.Close()

	resp, err := NewLessonClient(server.URL, "k").Refine(context.Background(), current, "shorter", "3rd Grade", "Insects")
	require.NoError(t, err)
	assert.Equal(t, current, resp.Artifact)
}

func TestLessonClient_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "quota exceeded shows upgrade link",
			status:  http.StatusForbidden,
			body:    `{"error":"quota_exceeded","message":"free limit reached","upgrade_url":"/pricing","tier":"free","usage_remaining":0}`,
			wantErr: "free limit reached (upgrade at /pricing)",
		},
		{
			name:    "standard error body",
			status:  http.StatusUnauthorized,
			body:    `{"error":"unauthorized","message":"authorization header required"}`,
			wantErr: "unauthorized: authorization header required",
		},
		{
			name:    "unstructured body",
			status:  http.StatusBadGateway,
			body:    "bad gateway",
			wantErr: "request failed with status 502: bad gateway",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body)) //nolint:errcheck,gosec
			}))
			defer server.Close()

			_, err := NewLessonClient(server.URL, "k").Generate(context.Background(), "1st Grade", "Colors")
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func TestForm_SubmitRequiresAllFields(t *testing.T) {
	form := NewForm("")

	assert.Nil(t, form.submit())
	assert.Equal(t, fieldGrade, form.focused)

	form.inputs[fieldGrade].SetValue("5th Grade")
	form.inputs[fieldTopic].SetValue("Fractions")

	assert.Nil(t, form.submit())
	assert.Equal(t, fieldToken, form.focused)

	form.inputs[fieldToken].SetValue("teacher-1")

	cmd := form.submit()
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitMsg{Grade: "5th Grade", Topic: "Fractions", Token: "teacher-1"}, cmd())
}
