package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voyagen/tvcatalog/internal/config"
	"github.com/voyagen/tvcatalog/internal/models"
	"github.com/voyagen/tvcatalog/internal/service"
	"github.com/voyagen/tvcatalog/internal/store"
)

const healthTimeout = 2 * time.Second

// Server holds dependencies for the HTTP API.
type Server struct {
	store   store.Store
	catalog *service.Catalog
	cfg     *config.Config
	router  chi.Router
}

// New creates a Server reading channels from s and registers routes.
func New(s store.Store, cfg *config.Config, logger zerolog.Logger) *Server {
	srv := &Server{
		store:   s,
		catalog: service.NewCatalog(s),
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	srv.routes(logger)
	return srv
}

func (s *Server) routes(logger zerolog.Logger) {
	mux := s.router
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(withCORS)
	mux.Use(withLogging(logger))
	mux.Use(withRecover)

	mux.Get("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/docs", handleSwaggerUI)
	mux.Get("/docs/openapi.yaml", handleOpenAPISpec)

	// Everything else belongs to the channel catalog, which does its own
	// method check and path matching.
	mux.Handle("/*", http.HandlerFunc(s.serveCatalog))
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, r, errMethodNotAllowed(), nil)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured port.
// It blocks until the server is shut down or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := ":" + s.cfg.ServerPort
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// --- catalog ---

// serveCatalog is the single entry point of the channel catalog. The route
// is resolved once, up front, and then dispatched. Panics are recovered here
// so the status observed for metrics is the 500 actually sent.
func (s *Server) serveCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := newStatusWriter(w)
	route := Route{Kind: RouteInvalid}
	defer func() {
		rec := recover()
		if rec != nil && rec != http.ErrAbortHandler {
			handlePanic(sw, r, rec)
		}
		observeRequest(route.Kind, sw.status, time.Since(start))
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
	}()

	if r.Method != http.MethodGet {
		writeErr(sw, r, errMethodNotAllowed(), nil)
		return
	}

	var err error
	route, err = matchRoute(s.cfg.BasePath, r.URL.Path)
	if err != nil {
		writeErr(sw, r, errInvalidIdentifier(), err)
		return
	}

	switch route.Kind {
	case RouteList:
		s.handleList(sw, r)
	case RouteDetail:
		s.handleDetail(sw, r, route.ID)
	case RouteStats:
		s.handleStats(sw, r)
	default:
		writeErr(sw, r, errMethodNotAllowed(), nil)
	}
}

type listResponse struct {
	Data       []models.Channel `json:"data"`
	Count      int              `json:"count"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := listQueryFromValues(r.URL.Query())
	res, err := s.catalog.List(r.Context(), q)
	if err != nil {
		writeErr(w, r, errQueryFailed("Failed to fetch channels", err), err)
		return
	}

	writeJSON(w, r, http.StatusOK, listResponse{
		Data:       res.Channels,
		Count:      len(res.Channels),
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request, id string) {
	ch, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeErr(w, r, errNotFound(), err)
			return
		}
		writeErr(w, r, errQueryFailed("Failed to fetch channel", err), err)
		return
	}
	writeJSON(w, r, http.StatusOK, dataResponse{Data: ch})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		writeErr(w, r, errQueryFailed("Failed to fetch channel statistics", err), err)
		return
	}
	writeJSON(w, r, http.StatusOK, dataResponse{Data: stats})
}

// --- health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
