// Package server exposes a yard session over HTTP for the 3D viewer
// frontend.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
	"github.com/izzat1998/terminal-pro-sub004/pkg/vehicle"
)

// DefaultMinConfidence is the plate-recognition confidence below which
// detections are dropped instead of spawning actors.
const DefaultMinConfidence = 0.5

// tickInterval drives the animation scheduler while the server runs.
const tickInterval = 50 * time.Millisecond

// Server is the HTTP front of one yard session.
type Server struct {
	session *Session
	log     *slog.Logger

	limiter       *rate.Limiter
	minConfidence float64
	lowConfidence atomic.Int64
}

// New creates a server for the given session. The detection intake is
// throttled to absorb a misbehaving camera feed without starving the
// frame tick.
func New(session *Session, log *slog.Logger) *Server {
	return &Server{
		session:       session,
		log:           log,
		limiter:       rate.NewLimiter(rate.Limit(10), 20),
		minConfidence: DefaultMinConfidence,
	}
}

// LowConfidenceDrops returns how many detections the intake has dropped
// for insufficient confidence.
func (s *Server) LowConfidenceDrops() int64 {
	return s.lowConfidence.Load()
}

// Handler builds the route table with CORS enabled for the viewer
// frontend.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/containers", s.handleContainers)
	mux.HandleFunc("GET /api/vehicles", s.handleVehicles)
	mux.HandleFunc("GET /api/grid", s.handleGrid)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/detections", s.handleDetection)
	return cors.Default().Handler(s.logRequests(mux))
}

// Run serves HTTP on addr until the context is cancelled. It also owns
// the frame-tick loop and, when the spec names a backend, the slot
// poller.
func (s *Server) Run(ctx context.Context, addr string) error {
	if s.session.Spec.Backend.URL != "" {
		go NewPoller(s.session, s.log).Run(ctx)
	}
	go s.tickLoop(ctx)

	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", "addr", addr, "yard", s.session.Spec.Name)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.session.Tick()
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  s.session.Ready(),
		"yard":   s.session.Spec.Name,
	})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	// The overlay is a per-request view option, not session state; one
	// viewer's debug toggle must not change what other clients see.
	g, err := s.session.Scene(r.URL.Query().Get("grid") == "1")
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleContainers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"containers": s.session.Containers(),
	})
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"actors": s.session.Actors(),
		"events": s.session.RecentEvents(),
	})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	ov, err := s.session.Overlay()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Stats())
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Report())
}

// DetectionRequest is the camera feed intake payload.
type DetectionRequest struct {
	Plate      string  `json:"plate"`
	Category   string  `json:"category"`
	Direction  string  `json:"direction"`
	Confidence float64 `json:"confidence"`
	Camera     string  `json:"camera"`
}

func (s *Server) handleDetection(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		http.Error(w, "detection intake throttled", http.StatusTooManyRequests)
		return
	}

	var req DetectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed detection payload", http.StatusBadRequest)
		return
	}
	if req.Plate == "" || req.Camera == "" {
		http.Error(w, "plate and camera are required", http.StatusBadRequest)
		return
	}
	if req.Confidence < s.minConfidence {
		s.lowConfidence.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"spawned": false, "reason": "low_confidence"})
		return
	}

	gate := s.gateForCamera(req.Camera)
	if gate == "" {
		http.Error(w, "unknown camera", http.StatusNotFound)
		return
	}

	actor, ok := s.session.Detect(vehicle.Detection{
		Plate:      req.Plate,
		Category:   vehicle.Category(req.Category),
		Direction:  vehicle.Direction(req.Direction),
		Confidence: req.Confidence,
	}, gate)
	if !ok {
		// Duplicate plate or engine not ready; both are expected
		// steady-state conditions, not client errors.
		writeJSON(w, http.StatusOK, map[string]any{"spawned": false, "reason": "not_spawned"})
		return
	}

	s.log.Info("vehicle detected",
		"plate", req.Plate, "camera", req.Camera, "gate", gate)
	writeJSON(w, http.StatusCreated, map[string]any{"spawned": true, "actor": actor})
}

func (s *Server) gateForCamera(camera string) string {
	for _, c := range s.session.Spec.Cameras {
		if c.Name == camera {
			return c.Gate
		}
	}
	return ""
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, transform.ErrNotReady) {
		status = http.StatusServiceUnavailable
	}
	s.log.Error("request failed", "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
