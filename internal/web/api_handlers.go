package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/evcraddock/wander/internal/wizard"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

type wizardResponse struct {
	SessionID string          `json:"sessionId,omitempty"`
	StepName  string          `json:"stepName"`
	State     wizard.State    `json:"state"`
	Summary   *wizard.Summary `json:"summary,omitempty"`
}

// handleAPIWizard returns the session's wizard state. Without a session it
// describes a fresh wizard and creates nothing.
func (s *Server) handleAPIWizard(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r.Context(), r)
	if err != nil {
		slog.ErrorContext(r.Context(), "wizard api", "error", err)
		apiError(w, "failed to load wizard session", http.StatusInternalServerError)
		return
	}

	resp := wizardResponse{
		StepName: sess.Wizard.Step().String(),
		State:    sess.Wizard.State(),
	}
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value == sess.ID {
		resp.SessionID = sess.ID
	}
	if sum, err := sess.Wizard.Summary(); err == nil {
		resp.Summary = &sum
	}
	apiJSON(w, resp, http.StatusOK)
}
