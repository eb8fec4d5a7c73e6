package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spigell/job-tracker/internal/accounts"
	"github.com/spigell/job-tracker/internal/applications"
	"github.com/spigell/job-tracker/internal/assistant"
	"github.com/spigell/job-tracker/internal/board"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/resume"
)

type harness struct {
	t        *testing.T
	handler  http.Handler
	history  *assistant.History
	accounts *accounts.Service
	token    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	now := func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	accts := accounts.NewService(accounts.NewMemoryRepository(), nil)
	require.NoError(t, accts.EnsureSeed(context.Background()))

	history := assistant.NewHistory()
	srv := New(Config{AllowedOrigins: []string{"http://localhost:5173"}}, Deps{
		Accounts:     accts,
		Applications: applications.NewService(applications.NewMemoryRepository(), nil),
		Board:        board.New(&jobs.MockSource{Now: now}, matching.NewKeywordMatcher(), nil, board.WithClock(now)),
		Assistant:    assistant.New(nil, nil),
		History:      history,
		Resumes:      resume.NewStore(t.TempDir(), 0, nil),
	})

	h := &harness{t: t, handler: srv.Handler(), history: history, accounts: accts}

	var login struct {
		Token string           `json:"token"`
		User  accounts.Profile `json:"user"`
	}
	rec := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": accounts.SeedEmail, "password": accounts.SeedPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &login)
	require.Equal(t, "1", login.User.ID)
	h.token = login.Token

	return h
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) upload(filename, content string) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(h.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(h.t, err)
	require.NoError(h.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.token)

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}

type jobList struct {
	Jobs  []jobs.Listing `json:"jobs"`
	Total int            `json:"total"`
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = h.do(http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "API route not found", errorOf(t, rec))
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/jobs", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized", errorOf(t, rec))

	rec = h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": accounts.SeedEmail, "password": "bad"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", errorOf(t, rec))

	rec = h.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": accounts.SeedEmail, "password": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "User already exists", errorOf(t, rec))

	rec = h.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "new@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Email and password are required", errorOf(t, rec))

	rec = h.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "new@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	var reg struct {
		Token string           `json:"token"`
		User  accounts.Profile `json:"user"`
	}
	decode(t, rec, &reg)
	require.Equal(t, accounts.Profile{ID: "2", Email: "new@example.com"}, reg.User)

	rec = h.do(http.MethodGet, "/api/auth/verify", reg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodPost, "/api/auth/logout", reg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/auth/verify", reg.Token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJobsAndResume(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/jobs", h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list jobList
	decode(t, rec, &list)
	require.Equal(t, 10, list.Total)
	for _, l := range list.Jobs {
		require.Zero(t, l.MatchScore)
		require.Equal(t, matching.NoResumeExplanation, l.MatchExplanation)
	}

	rec = h.do(http.MethodGet, "/api/jobs/best-matches", h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Zero(t, list.Total)

	rec = h.do(http.MethodGet, "/api/resume", h.token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No resume found", errorOf(t, rec))

	rec = h.upload("cv.docx", "nope")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Only PDF and TXT files are supported", errorOf(t, rec))

	rec = h.upload("cv.txt", "Senior frontend engineer: React, JavaScript, TypeScript, Tailwind")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"filename":"cv.txt"`)

	rec = h.do(http.MethodGet, "/api/resume", h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"filename":"cv.txt"`)
	require.NotContains(t, rec.Body.String(), "React")

	rec = h.do(http.MethodGet, "/api/jobs/best-matches", h.token, nil)
	decode(t, rec, &list)
	require.Equal(t, matching.BestMatchesLimit, list.Total)
	require.Equal(t, "job1", list.Jobs[0].ID)

	rec = h.do(http.MethodGet, "/api/jobs?workMode=remote&matchScore=high", h.token, nil)
	decode(t, rec, &list)
	require.NotZero(t, list.Total)
	for _, l := range list.Jobs {
		require.Equal(t, "remote", l.WorkMode)
		require.Greater(t, l.MatchScore, 70)
	}

	rec = h.do(http.MethodDelete, "/api/resume", h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/resume", h.token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResumeReplaceRemovesOldFile(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, http.StatusOK, h.upload("a.txt", "first").Code)
	stored, err := h.accounts.Resume(context.Background(), "1")
	require.NoError(t, err)
	first := stored.Path
	_, err = os.Stat(first)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, h.upload("b.txt", "second").Code)

	_, err = os.Stat(first)
	require.True(t, os.IsNotExist(err), "replaced resume file must be removed")
}

func TestApplications(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/applications", h.token, map[string]string{"jobId": "job3"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Application applications.Application `json:"application"`
	}
	decode(t, rec, &created)
	app := created.Application
	require.Equal(t, "Full Stack Developer", app.JobTitle)
	require.Equal(t, "StartupX", app.Company)
	require.Equal(t, "direct", app.AppliedVia)
	require.Len(t, app.Timeline, 1)

	rec = h.do(http.MethodPost, "/api/applications", h.token, map[string]string{"jobId": "job3"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Already applied to this job", errorOf(t, rec))

	rec = h.do(http.MethodPatch, "/api/applications/"+app.ID, h.token, map[string]string{"status": "hired"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPatch, "/api/applications/missing", h.token, map[string]string{"status": "offer"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Application not found", errorOf(t, rec))

	rec = h.do(http.MethodPatch, "/api/applications/"+app.ID, h.token, map[string]string{"status": "interview"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &created)
	require.Equal(t, applications.StatusInterview, created.Application.Status)
	require.Len(t, created.Application.Timeline, 2)
	require.Equal(t, "Status updated to interview", created.Application.Timeline[1].Note)

	rec = h.do(http.MethodGet, "/api/applications/job/job3", h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/applications/job/job4", h.token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/api/applications", h.token, nil)
	var list struct {
		Applications []applications.Application `json:"applications"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Applications, 1)
}

func TestAssistantChat(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/assistant/chat", h.token, map[string]string{"message": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Message is required", errorOf(t, rec))

	rec = h.do(http.MethodPost, "/api/assistant/chat", h.token, map[string]string{"message": "Show remote jobs in Bangalore"})
	require.Equal(t, http.StatusOK, rec.Code)

	var reply assistant.Reply
	decode(t, rec, &reply)
	require.Equal(t, assistant.IntentFilterUpdate, reply.Intent)
	require.Equal(t, "remote", reply.Filters["workMode"])
	require.Equal(t, "Bangalore", reply.Filters["location"])

	for i := 0; i < 6; i++ {
		h.do(http.MethodPost, "/api/assistant/chat", h.token, map[string]string{"message": "clear filters"})
	}
	require.Len(t, h.history.Get("1"), assistant.MaxHistory)

	rec = h.do(http.MethodPost, "/api/assistant/clear", h.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, h.history.Get("1"))
}

func TestCORSPreflight(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
