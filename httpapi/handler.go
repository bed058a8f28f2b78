// Package httpapi exposes the support agent over a small JSON API plus an
// embedded single-page chat UI. It owns no conversation logic; every request
// is delegated to the engine.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kylemil/thoughtful-support/agent"
	"github.com/kylemil/thoughtful-support/core/response"
	"github.com/kylemil/thoughtful-support/session"
)

// Service is the engine surface the API depends on.
type Service interface {
	Handle(ctx context.Context, sessionID, message string) (*response.Structured, error)
	History(sessionID string) ([]session.Turn, bool)
}

// Handler serves the chat API.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler builds the API routes around the given service.
func NewHandler(svc Service, logger *slog.Logger) http.Handler {
	h := &Handler{svc: svc, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("POST /sessions", h.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", h.handleGetSession)
	mux.HandleFunc("POST /sessions/{id}/messages", h.handleSendMessage)

	return chainMiddlewares(mux, withCORS, withLogging(logger))
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	SessionID  string   `json:"session_id"`
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Reasoning  []string `json:"reasoning"`
}

type turnResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type getSessionResponse struct {
	SessionID string         `json:"session_id"`
	Turns     []turnResponse `json:"turns"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateSession mints a fresh session id. The session itself is
// created lazily on first message.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: session.NewID()})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	turns, ok := h.svc.History(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	resp := getSessionResponse{SessionID: id, Turns: make([]turnResponse, 0, len(turns))}
	for _, t := range turns {
		resp.Turns = append(resp.Turns, turnResponse{Role: string(t.Role), Content: t.Content})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	structured, err := h.svc.Handle(r.Context(), id, req.Text)
	if err != nil {
		h.writeHandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		SessionID:  id,
		Answer:     structured.Answer,
		Confidence: structured.Confidence,
		Reasoning:  structured.Reasoning,
	})
}

// writeHandleError maps the engine's error taxonomy to status codes.
// Provider failures and malformed replies are both upstream faults (502);
// the body distinguishes them so clients can decide to retry.
func (h *Handler) writeHandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, agent.ErrUnavailable):
		h.logger.Error("provider unavailable", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "the language model provider is unavailable"})
	case errors.Is(err, response.ErrSchemaViolation):
		h.logger.Error("schema violation", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "the language model returned a malformed reply"})
	default:
		h.logger.Error("handle failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
