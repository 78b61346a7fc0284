// Package httpapi exposes a Kinetic page over HTTP. It drives a simulated
// surface server-side: scroll positions are posted in, reveal/scroll state
// and the dialog transcript are read back out. Useful as a demo surface
// and for black-box driving from other processes.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/kinetic"
	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/domain"
)

// Server drives one page view.
type Server struct {
	page    *kinetic.Page
	surface *sim.Page
	view    *sim.View
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler around an initialized page and its
// simulated surface.
func NewHandler(page *kinetic.Page, surface *sim.Page, view *sim.View, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{page: page, surface: surface, view: view, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/state", s.handleState)
	r.Post("/scroll", s.handleScroll)
	r.Route("/dialog", func(r chi.Router) {
		r.Post("/start", s.handleDialogStart)
		r.Post("/work", s.handleDialogWork)
		r.Post("/source", s.handleDialogSource)
		r.Post("/details", s.handleDialogDetails)
		r.Get("/transcript", s.handleTranscript)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// StateResponse is the page snapshot returned by GET /state.
type StateResponse struct {
	Capabilities domain.Capabilities `json:"capabilities"`
	Scroll       domain.ScrollState  `json:"scroll"`
	Pending      []domain.ElementRef `json:"pending"`
	Visible      int                 `json:"visible"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, _ := s.surface.LastPublished()
	writeJSON(w, http.StatusOK, StateResponse{
		Capabilities: s.page.Capabilities(),
		Scroll:       state,
		Pending:      s.page.PendingReveals(),
		Visible:      s.surface.VisibleCount(),
	})
}

type scrollRequest struct {
	Offset float64 `json:"offset"`
}

func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	var req scrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	// One posted position is one scroll event plus one display frame.
	s.surface.Scroll(req.Offset)
	s.surface.StepFrame()
	s.handleState(w, r)
}

func (s *Server) handleDialogStart(w http.ResponseWriter, r *http.Request) {
	d := s.page.Dialog()
	if d == nil {
		writeError(w, http.StatusNotFound, "dialog not configured")
		return
	}
	s.respondDialog(w, d.Start(r.Context()))
}

type choiceRequest struct {
	Choice string `json:"choice"`
}

func (s *Server) handleDialogWork(w http.ResponseWriter, r *http.Request) {
	d := s.page.Dialog()
	if d == nil {
		writeError(w, http.StatusNotFound, "dialog not configured")
		return
	}
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.respondDialog(w, d.SubmitWork(r.Context(), req.Choice))
}

func (s *Server) handleDialogSource(w http.ResponseWriter, r *http.Request) {
	d := s.page.Dialog()
	if d == nil {
		writeError(w, http.StatusNotFound, "dialog not configured")
		return
	}
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.respondDialog(w, d.ChooseSource(r.Context(), req.Choice))
}

type detailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Note  string `json:"note"`
}

func (s *Server) handleDialogDetails(w http.ResponseWriter, r *http.Request) {
	d := s.page.Dialog()
	if d == nil {
		writeError(w, http.StatusNotFound, "dialog not configured")
		return
	}
	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.respondDialog(w, d.SubmitDetails(r.Context(), req.Name, req.Email, req.Note))
}

// TranscriptResponse is the dialog snapshot returned by GET /dialog/transcript.
type TranscriptResponse struct {
	Step       domain.Step     `json:"step"`
	Busy       bool            `json:"busy"`
	Transcript []domain.Turn   `json:"transcript"`
	Summary    *domain.Message `json:"summary,omitempty"`
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	d := s.page.Dialog()
	if d == nil {
		writeError(w, http.StatusNotFound, "dialog not configured")
		return
	}
	session, ok := d.Session()
	if !ok {
		writeError(w, http.StatusConflict, "session not started")
		return
	}
	resp := TranscriptResponse{
		Step:       session.Step,
		Busy:       d.Busy(),
		Transcript: session.Transcript,
	}
	if msg, ok := s.view.Summary(); ok {
		resp.Summary = &msg
	}
	writeJSON(w, http.StatusOK, resp)
}

// dialogResult reports the outcome of a dialog submission.
type dialogResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Field string `json:"field,omitempty"`
}

func (s *Server) respondDialog(w http.ResponseWriter, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, dialogResult{OK: true})
		return
	}
	if ve, ok := domain.IsValidation(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, dialogResult{Error: ve.Error(), Field: string(ve.Field)})
		return
	}
	status := http.StatusConflict
	if errors.Is(err, domain.ErrSessionComplete) {
		status = http.StatusGone
	}
	s.logger.Debug("dialog submission refused", "err", err)
	writeJSON(w, status, dialogResult{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dialogResult{Error: msg})
}
