package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/steelegbr/solidradioalexa/internal/config"
	"github.com/steelegbr/solidradioalexa/internal/types"
)

// Dispatcher answers one decoded skill request.
type Dispatcher interface {
	Dispatch(ctx context.Context, env types.RequestEnvelope) types.ResponseEnvelope
}

type Server struct {
	router     *chi.Mux
	server     *http.Server
	dispatcher Dispatcher
	skillID    string
}

func NewServer(cfg config.Config, dispatcher Dispatcher) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Signature", "SignatureCertChainUrl"},
		MaxAge:         300,
	}))

	s := &Server{
		router:     r,
		dispatcher: dispatcher,
		skillID:    cfg.SkillID,
	}
	s.routes()

	s.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/alexa", s.handleSkill)
}

func (s *Server) Router() http.Handler { return s.router }

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Info("skill server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-stop:
		log.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	var env types.RequestEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	logger := log.FromContext(r.Context()).With(
		"request_id", env.Request.RequestID,
		"request_type", env.Request.Type,
	)

	if s.skillID != "" && env.ApplicationID() != s.skillID {
		logger.Warn("rejected request for another skill", "application_id", env.ApplicationID())
		s.writeError(w, http.StatusForbidden, "unexpected application id")
		return
	}

	ctx := log.WithContext(r.Context(), logger)
	resp := s.dispatcher.Dispatch(ctx, env)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

// requestLogger logs one line per request and hands handlers a logger tagged
// with the chi request id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := log.Default().With("req", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(log.WithContext(r.Context(), logger)))

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
