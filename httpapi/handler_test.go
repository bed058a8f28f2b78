package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kylemil/thoughtful-support/agent"
	"github.com/kylemil/thoughtful-support/core/response"
	"github.com/kylemil/thoughtful-support/httpapi"
	"github.com/kylemil/thoughtful-support/session"
)

// fakeService records calls and replays canned results.
type fakeService struct {
	structured *response.Structured
	err        error
	histories  map[string][]session.Turn

	lastSessionID string
	lastMessage   string
}

func (s *fakeService) Handle(_ context.Context, sessionID, message string) (*response.Structured, error) {
	s.lastSessionID = sessionID
	s.lastMessage = message
	if s.err != nil {
		return nil, s.err
	}
	return s.structured, nil
}

func (s *fakeService) History(sessionID string) ([]session.Turn, bool) {
	turns, ok := s.histories[sessionID]
	return turns, ok
}

func newFakeService() *fakeService {
	return &fakeService{
		structured: &response.Structured{
			Answer:     "EVA automates eligibility verification.",
			Confidence: 0.95,
			Reasoning:  []string{"knowledge base hit"},
		},
		histories: map[string][]session.Turn{},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHealth(t *testing.T) {
	h := httpapi.NewHandler(newFakeService(), discardLogger())

	w := doRequest(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
}

func TestCreateSession(t *testing.T) {
	h := httpapi.NewHandler(newFakeService(), discardLogger())

	w := doRequest(t, h, http.MethodPost, "/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201", w.Code)
	}

	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("session_id is empty")
	}
}

func TestSendMessage(t *testing.T) {
	svc := newFakeService()
	h := httpapi.NewHandler(svc, discardLogger())

	w := doRequest(t, h, http.MethodPost, "/sessions/s1/messages", `{"text": "What does EVA do?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200; body: %s", w.Code, w.Body.String())
	}

	if svc.lastSessionID != "s1" {
		t.Errorf("got session id %q, want s1", svc.lastSessionID)
	}
	if svc.lastMessage != "What does EVA do?" {
		t.Errorf("got message %q", svc.lastMessage)
	}

	var resp struct {
		SessionID  string   `json:"session_id"`
		Answer     string   `json:"answer"`
		Confidence float64  `json:"confidence"`
		Reasoning  []string `json:"reasoning"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.SessionID != "s1" {
		t.Errorf("got session_id %q, want s1", resp.SessionID)
	}
	if !strings.Contains(resp.Answer, "eligibility") {
		t.Errorf("got answer %q", resp.Answer)
	}
	if resp.Confidence != 0.95 {
		t.Errorf("got confidence %v, want 0.95", resp.Confidence)
	}
	if len(resp.Reasoning) != 1 {
		t.Errorf("got %d reasoning steps, want 1", len(resp.Reasoning))
	}
}

func TestSendMessage_BadBody(t *testing.T) {
	h := httpapi.NewHandler(newFakeService(), discardLogger())

	cases := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"text": `},
		{"empty text", `{"text": ""}`},
		{"whitespace text", `{"text": "   "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/sessions/s1/messages", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want 400", w.Code)
			}
		})
	}
}

func TestSendMessage_ProviderUnavailable(t *testing.T) {
	svc := newFakeService()
	svc.err = fmt.Errorf("generate failed: %w", agent.ErrUnavailable)
	h := httpapi.NewHandler(svc, discardLogger())

	w := doRequest(t, h, http.MethodPost, "/sessions/s1/messages", `{"text": "hi"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("got status %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unavailable") {
		t.Errorf("body %q does not mention unavailability", w.Body.String())
	}
}

func TestSendMessage_SchemaViolation(t *testing.T) {
	svc := newFakeService()
	svc.err = fmt.Errorf("%w: answer is empty", response.ErrSchemaViolation)
	h := httpapi.NewHandler(svc, discardLogger())

	w := doRequest(t, h, http.MethodPost, "/sessions/s1/messages", `{"text": "hi"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("got status %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "malformed") {
		t.Errorf("body %q does not mention the malformed reply", w.Body.String())
	}
}

func TestSendMessage_InternalError(t *testing.T) {
	svc := newFakeService()
	svc.err = fmt.Errorf("boom")
	h := httpapi.NewHandler(svc, discardLogger())

	w := doRequest(t, h, http.MethodPost, "/sessions/s1/messages", `{"text": "hi"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}
}

func TestGetSession(t *testing.T) {
	svc := newFakeService()
	svc.histories["s1"] = []session.Turn{
		{Role: session.RoleUser, Content: "hello"},
		{Role: session.RoleAgent, Content: "hi there"},
	}
	h := httpapi.NewHandler(svc, discardLogger())

	w := doRequest(t, h, http.MethodGet, "/sessions/s1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	var resp struct {
		SessionID string `json:"session_id"`
		Turns     []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"turns"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(resp.Turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(resp.Turns))
	}
	if resp.Turns[0].Role != "user" || resp.Turns[1].Role != "agent" {
		t.Errorf("got roles %q and %q, want user and agent", resp.Turns[0].Role, resp.Turns[1].Role)
	}
}

func TestGetSession_Unknown(t *testing.T) {
	h := httpapi.NewHandler(newFakeService(), discardLogger())

	w := doRequest(t, h, http.MethodGet, "/sessions/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
}

func TestIndexServesChatPage(t *testing.T) {
	h := httpapi.NewHandler(newFakeService(), discardLogger())

	w := doRequest(t, h, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("got content type %q, want text/html", ct)
	}
}

func TestCORSHeaders(t *testing.T) {
	h := httpapi.NewHandler(newFakeService(), discardLogger())

	w := doRequest(t, h, http.MethodGet, "/healthz", "")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("got Access-Control-Allow-Origin %q, want *", got)
	}
}
