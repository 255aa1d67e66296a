package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// RaceStatus is the summary of the most recent race, served on /health/race.
type RaceStatus struct {
	RaceID     string    `json:"race_id"`
	Outcome    string    `json:"outcome"`
	Winner     string    `json:"winner,omitempty"`
	Distance   float64   `json:"distance,omitempty"`
	Rounds     int       `json:"rounds"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// HealthServer provides HTTP endpoints for health checks.
//   - /health: Liveness probe (always returns 200 OK)
//   - /health/ready: Readiness probe (returns 200 if ready, 503 if not)
//   - /health/race: Last race summary (returns 404 until a race has run)
type HealthServer struct {
	addr     string
	logger   *slog.Logger
	isReady  *atomic.Bool
	lastRace atomic.Pointer[RaceStatus]
	server   *http.Server
}

// healthResponse is the JSON response format for health check endpoints.
type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthServer creates a health server that is not ready and not started.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	isReady := &atomic.Bool{}
	isReady.Store(false)

	return &HealthServer{
		addr:    addr,
		logger:  logger,
		isReady: isReady,
	}
}

// Handler returns the HTTP handler serving the health endpoints.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	mux.HandleFunc("GET /health/race", h.handleLastRace)
	return mux
}

// Start serves until ctx is cancelled or the listener fails.
// It returns http.ErrServerClosed after a graceful shutdown (5-second timeout).
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      h.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		if err := h.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if err == http.ErrServerClosed {
			return err
		}
		h.logger.Error("health server failed", slog.Any("error", err))
		return err
	}
}

// SetReady sets the readiness state reported by /health/ready.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

// RecordRace stores the summary served by /health/race.
func (h *HealthServer) RecordRace(status RaceStatus) {
	h.lastRace.Store(&status)
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if h.isReady.Load() {
		h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
		return
	}
	h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
}

func (h *HealthServer) handleLastRace(w http.ResponseWriter, r *http.Request) {
	status := h.lastRace.Load()
	if status == nil {
		h.writeJSON(w, http.StatusNotFound, healthResponse{Status: "no race yet"})
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

func (h *HealthServer) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
