// Package http exposes the tracker core to an external view layer as a small
// localhost JSON surface. The handlers only call into the tracker service;
// rendering stays with the caller.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	applog "arbeitszeit/internal/log"
	"arbeitszeit/internal/middleware/ratelimit"
	"arbeitszeit/internal/services"
)

type Server struct {
	*http.Server
	tracker *services.TrackerService
	limiter *ratelimit.Limiter
	logger  *applog.Logger
}

func NewServer(addr string, tracker *services.TrackerService, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	s := &Server{
		tracker: tracker,
		limiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		logger:  logger.WithComponent(applog.ComponentHTTP),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/calendar", s.api(s.handleCalendar))
	mux.HandleFunc("/api/month", s.api(s.handleMonth))
	mux.HandleFunc("/api/day", s.api(s.handleDay))
	mux.HandleFunc("/api/summary", s.api(s.handleSummary))
	mux.HandleFunc("/api/cursor", s.api(s.handleCursor))

	s.Server = &http.Server{Addr: addr, Handler: mux}
	return s
}

// api wraps a handler with the shared middleware chain.
func (s *Server) api(next http.HandlerFunc) http.HandlerFunc {
	return s.limiter.Middleware(s.withSecurityHeaders(next))
}

// Routes returns the route table, for tests that drive the server through
// httptest instead of a listening socket.
func (s *Server) Routes() http.Handler {
	return s.Server.Handler
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.Server.Shutdown(ctx)
}

// withSecurityHeaders adds security headers and request logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.Info("request completed",
			"request_id", requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
