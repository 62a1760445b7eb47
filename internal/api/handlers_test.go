package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepquiz/internal/llm"
	"github.com/abhisek/prepquiz/internal/quiz"
	"github.com/abhisek/prepquiz/internal/quizgen"
)

const testBatch = `[
	{"question": "What is 6 * 7?", "choices": ["42", "36", "48", "40"], "answer": "42", "concepts": ["multiplication"], "explanation": "6 * 7 = 42"},
	{"question": "What is 9 - 4?", "choices": ["5", "4", "6", "3"], "answer": "5", "concepts": ["subtraction"], "explanation": "9 - 4 = 5"}
]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(testBatch)},
	)
	client := quizgen.NewClient(mock, quizgen.DefaultConfig())
	engine := quiz.NewEngine(client, client.Validators(), quiz.NewRegistry(0), nil, quiz.DefaultConfig())

	srv := httptest.NewServer(NewRouter(engine))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartSession_BadConfig(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/sessions", map[string]any{
		"topic": "history", "grade": 5, "count": 2,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/sessions/nope/question")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuizRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	// Start.
	resp := postJSON(t, srv.URL+"/api/sessions", map[string]any{
		"topic": "math", "grade": 5, "count": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var started struct {
		SessionID string `json:"session_id"`
	}
	decode(t, resp, &started)
	require.NotEmpty(t, started.SessionID)

	base := srv.URL + "/api/sessions/" + started.SessionID

	answers := []string{"42", "5"}
	for i, answer := range answers {
		// Fetch the current question.
		qresp, err := http.Get(base + "/question")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, qresp.StatusCode)

		var question struct {
			Finished bool     `json:"finished"`
			Text     string   `json:"text"`
			Choices  []string `json:"choices"`
			Index    int      `json:"index"`
			Total    int      `json:"total"`
		}
		decode(t, qresp, &question)
		require.False(t, question.Finished, "question %d", i)
		assert.Equal(t, i+1, question.Index)
		assert.Equal(t, 2, question.Total)
		assert.Len(t, question.Choices, 4)
		assert.NotEmpty(t, question.Text)

		// Answer it.
		aresp := postJSON(t, base+"/answer", map[string]any{
			"choice": answer, "elapsed_ms": 1200,
		})
		require.Equal(t, http.StatusOK, aresp.StatusCode)
		aresp.Body.Close()
	}

	// Double submit after the quiz is done is a protocol violation.
	extra := postJSON(t, base+"/answer", map[string]any{"choice": "42", "elapsed_ms": 10})
	assert.Equal(t, http.StatusConflict, extra.StatusCode)
	extra.Body.Close()

	// The question endpoint now reports finished.
	qresp, err := http.Get(base + "/question")
	require.NoError(t, err)
	var fin struct {
		Finished bool `json:"finished"`
	}
	decode(t, qresp, &fin)
	assert.True(t, fin.Finished)

	// Report.
	rresp, err := http.Get(base + "/report")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rresp.StatusCode)

	var report quiz.Report
	decode(t, rresp, &report)
	assert.Equal(t, 2, report.Score)
	assert.Equal(t, 2, report.Total)
	assert.Empty(t, report.TopMissedConcepts)
	require.Len(t, report.Questions, 2)
	assert.True(t, report.Questions[0].Correct)
}

func TestReportBeforeFinish(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/sessions", map[string]any{
		"topic": "math", "grade": 5, "count": 2,
	})
	var started struct {
		SessionID string `json:"session_id"`
	}
	decode(t, resp, &started)

	rresp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/report", srv.URL, started.SessionID))
	require.NoError(t, err)
	defer rresp.Body.Close()
	assert.Equal(t, http.StatusConflict, rresp.StatusCode)
}
