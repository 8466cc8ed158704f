package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/instructo/tutor/internal/llm"
	"github.com/instructo/tutor/internal/provider"
	"github.com/instructo/tutor/internal/tutor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient answers with the first reply whose marker appears in the
// prompt.
type scriptedClient struct {
	replies map[string]string
}

func (c scriptedClient) Complete(_ context.Context, _, prompt string) (string, error) {
	for marker, reply := range c.replies {
		if strings.Contains(prompt, marker) {
			return reply, nil
		}
	}
	return "I cannot comply.", nil
}

var replies = map[string]string{
	"programming quiz":             "```json\n{\"questions\":[{\"text\":\"What is a goroutine?\"}]}\n```",
	"Perform a detailed code review": `Here is my review: {"overall_assessment":{"code_quality":"good"},"detailed_review":[],"learning_resources":[]}`,
	"Give guidance":                `{"overall_assessment":{},"learning_insights":[],"alternative_approaches":[]}`,
	"incomplete code snippet":      `{"language":"Go","code":"func main() {}","missing_parts":[],"learning_goals":[]}`,
}

type testServer struct {
	handler http.Handler
	sw      *llm.Switch
	factory *provider.Factory
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	sw := llm.NewSwitch(scriptedClient{replies: replies}, llm.Info{Provider: "google", Model: "gemini-2.0-flash"})
	svc := tutor.NewService(sw, log, tutor.WithAttempts(1))
	factory := provider.NewFactory(provider.Keys{Google: "test-key"})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	router := NewRouter(log, sw, svc, factory, nil, RateLimit{RPS: 100, Burst: 100})
	return testServer{handler: router.Handler(ctx), sw: sw, factory: factory}
}

func (s testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return rec, out
}

func TestGenerateQuizRoute(t *testing.T) {
	srv := newTestServer(t)

	rec, out := srv.do(t, http.MethodGet, "/quiz/generate?language=Go", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Go", out["language"])
	assert.Equal(t, float64(1), out["total_questions"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec, out = srv.do(t, http.MethodGet, "/quiz/generate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Language parameter is required", out["error"])
}

func TestRequestValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path string
		body string
		want string
	}{
		{"/code/review", `{"code": "x"}`, "Code and language are required"},
		{"/code/review", `not json`, "Code and language are required"},
		{"/code/review", `{"code": 1, "language": "Go"}`, "Code and language are required"},
		{"/code/chat", `{}`, "Message is required"},
		{"/quiz/evaluate", `{"language": "Go", "responses": "all of them"}`, "Language and responses are required"},
		{"/challenge/output-based", `{"objective": "loops"}`, "Objective and description are required"},
		{"/challenge/submit-solution", `{"code": "x", "language": "Go"}`, "Code, language, and challenge type are required"},
		{"/generate", `{"template": "{prompt}"}`, "Prompt is required"},
		{"/update_llm", `{"kwargs": {}}`, "LLM type is required"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, out := srv.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, out["error"])
		})
	}
}

func TestReviewRoute(t *testing.T) {
	srv := newTestServer(t)

	rec, out := srv.do(t, http.MethodPost, "/code/review", `{"code": "print(1)", "language": "Python"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out, "detailed_review")
}

func TestUnusableCompletionIsBadGateway(t *testing.T) {
	srv := newTestServer(t)

	rec, out := srv.do(t, http.MethodPost, "/code/chat", `{"message": "what is a slice?"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed to generate chat response: parse error: no valid JSON object found", out["error"])
}

func TestIncompleteCodeRoute(t *testing.T) {
	srv := newTestServer(t)

	rec, out := srv.do(t, http.MethodPost, "/challenge/incomplete-code",
		`{"objective": "functions", "description": "write main", "language": "Go"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out, "incomplete_code")
	assert.Contains(t, out, "initial_review")
}

func TestSubmitSolutionRoute(t *testing.T) {
	srv := newTestServer(t)

	rec, out := srv.do(t, http.MethodPost, "/challenge/submit-solution",
		`{"code": "x = 1", "language": "Python", "challenge_type": "output-based"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out, "code_review")
	assert.Contains(t, out, "guidance")
}

func TestGenerateRoute(t *testing.T) {
	srv := newTestServer(t)

	rec, out := srv.do(t, http.MethodPost, "/generate", `{"prompt": "hello"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "I cannot comply.", out["response"])
}

func TestUpdateLLMRoute(t *testing.T) {
	srv := newTestServer(t)
	srv.factory.Register("gemini", func(_ context.Context, _, model string) (llm.Client, llm.Info, error) {
		return scriptedClient{}, llm.Info{Provider: "google", Model: model}, nil
	})

	rec, out := srv.do(t, http.MethodPost, "/update_llm", `{"llm_type": "gemini", "kwargs": {"model_name": "gemini-2.5-pro"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "LLM updated to gemini", out["message"])
	assert.Equal(t, llm.Info{Provider: "google", Model: "gemini-2.5-pro"}, srv.sw.Info())

	rec, out = srv.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gemini-2.5-pro", out["model"])

	rec, out = srv.do(t, http.MethodPost, "/update_llm", `{"llm_type": "openai"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unsupported LLM type: openai", out["error"])
	assert.Equal(t, "gemini-2.5-pro", srv.sw.Info().Model)
}

func TestRateLimitedRoute(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	sw := llm.NewSwitch(scriptedClient{replies: replies}, llm.Info{Provider: "google"})
	router := NewRouter(log, sw, tutor.NewService(sw, log), provider.NewFactory(provider.Keys{}), nil, RateLimit{RPS: 0.0001, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := router.Handler(ctx)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/quiz/generate?language=Go", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/quiz/generate?language=Go", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
