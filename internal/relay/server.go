// Package relay implements the contact-form mail relay: one JSON endpoint
// that forwards submissions via SMTP. Client errors answer 400, transport
// errors answer 500; neither is retried.
package relay

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server handles relay HTTP traffic.
type Server struct {
	mailer  Mailer
	log     *zap.Logger
	metrics *Metrics
}

// NewServer builds a relay server around a mailer.
func NewServer(mailer Mailer, log *zap.Logger) *Server {
	return &Server{mailer: mailer, log: log, metrics: NewMetrics()}
}

// SendRequest is the inbound JSON payload.
type SendRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the JSON success envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Router returns the chi router for the relay.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/send-email", s.SendEmailHandler)
	r.Get("/healthz", s.HealthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	return r
}

// SendEmailHandler validates the payload and dispatches the email.
func (s *Server) SendEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.Observe(OutcomeRejected)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		return
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		s.metrics.Observe(OutcomeRejected)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		return
	}

	sub := Submission{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := s.mailer.Send(r.Context(), sub); err != nil {
		s.log.Error("email dispatch failed", zap.Error(err), zap.String("from", req.Email))
		s.metrics.Observe(OutcomeFailed)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to send email"})
		return
	}

	s.log.Info("email dispatched", zap.String("name", req.Name))
	s.metrics.Observe(OutcomeSent)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
