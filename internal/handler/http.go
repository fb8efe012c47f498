package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/darts-ladder/internal/domain"
	"github.com/darts-ladder/internal/ladder"
	"github.com/darts-ladder/internal/websocket"
)

// Handler provides HTTP handlers for the ladder UI and API
type Handler struct {
	service *ladder.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(service *ladder.Service, hub *websocket.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		logger:  logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Web UI
	r.Get("/", h.Index)

	// Health check
	r.Get("/health", h.HealthCheck)
	r.Get("/ready", h.ReadyCheck)

	// WebSocket endpoint
	r.Get("/ws", h.HandleWebSocket)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/matches", h.SubmitMatch)
		r.Get("/matches", h.GetMatches)
		r.Get("/standings", h.GetStandings)
		r.Post("/reset", h.ResetLadder)
		r.Get("/ws/stats", h.GetWebSocketStats)
	})

	return r
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeSuccess writes a successful JSON response
func (h *Handler) writeSuccess(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError writes an error JSON response
func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// HandleWebSocket handles WebSocket upgrade requests
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWs(h.hub, h.logger, w, r)
}

// GetWebSocketStats returns WebSocket connection statistics
func (h *Handler) GetWebSocketStats(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]interface{}{
		"total_connections": h.hub.GetTotalConnections(),
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "healthy"})
}

// ReadyCheck returns service readiness status
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "ready"})
}

// SubmitMatch records a match result, refreshes the leaderboard and pushes
// the new standings to connected clients.
func (h *Handler) SubmitMatch(w http.ResponseWriter, r *http.Request) {
	var submission domain.MatchSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	result, err := h.service.RecordMatch(r.Context(), submission)
	if err != nil {
		if domain.IsValidationError(err) {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		h.logger.Error("failed to record match", "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
		return
	}

	h.broadcastStandings(r)

	h.writeSuccess(w, result)
}

// GetStandings returns the ranked leaderboard with rank movement. The call
// also advances the movement baseline to this computation.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		h.logger.Error("failed to compute standings", "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
		return
	}

	h.writeSuccess(w, standings)
}

// GetMatches returns the recent match log, newest first
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, h.service.RecentMatches())
}

// ResetRequest carries the shared passphrase for a full data reset
type ResetRequest struct {
	Passphrase string `json:"passphrase"`
}

// ResetLadder clears all ladder data after verifying the passphrase
func (h *Handler) ResetLadder(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	if err := h.service.Reset(r.Context(), req.Passphrase); err != nil {
		if errors.Is(err, domain.ErrBadPassphrase) {
			h.writeError(w, http.StatusUnauthorized, err)
			return
		}
		h.logger.Error("failed to reset ladder", "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
		return
	}

	h.hub.BroadcastReset()

	h.writeSuccess(w, map[string]string{"status": "reset"})
}

// broadcastStandings recomputes the leaderboard and pushes it to all
// connected WebSocket clients.
func (h *Handler) broadcastStandings(r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		h.logger.Warn("failed to refresh standings for broadcast", "error", err)
		return
	}
	h.hub.BroadcastStandings(standings, h.service.RecentMatches())
}
