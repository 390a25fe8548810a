// Package server wires the HTTP surface: the MCP protocol endpoint,
// artifact downloads, health and metadata endpoints, and Prometheus
// exposition.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"url2qr-mcp/config"
	"url2qr-mcp/mcp"
	"url2qr-mcp/metrics"
	"url2qr-mcp/qrcode"
	"url2qr-mcp/session"
	"url2qr-mcp/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MCPPath is the protocol endpoint path.
const MCPPath = "/mcp"

// Server owns the HTTP listener and its collaborators.
type Server struct {
	cfg       *config.Config
	registry  *session.Registry
	generator *qrcode.Generator
	history   *store.Store
	version   string
	startedAt time.Time
}

// New assembles a server around an already-opened history store. history
// may be nil; conversions then go unrecorded.
func New(cfg *config.Config, registry *session.Registry, generator *qrcode.Generator, history *store.Store, version string) *Server {
	return &Server{
		cfg:       cfg,
		registry:  registry,
		generator: generator,
		history:   history,
		version:   version,
		startedAt: time.Now(),
	}
}

// Routes builds the chi router for all endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	info := mcp.ServerInfo{Name: config.AppName, Version: s.version}
	var recorder mcp.Recorder
	if s.history != nil {
		recorder = s.history
	}
	router := mcp.NewRouter(s.registry, info, s.generator, recorder)
	r.Handle(MCPPath, mcp.NewHandler(router))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", metrics.Handler().ServeHTTP)
	r.Get(qrcode.DownloadRoute+"/{filename}", s.handleDownload)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. The
// expiry sweeper runs alongside the listener and stops with it.
func (s *Server) Run(ctx context.Context) error {
	sweeper := session.NewSweeper(s.registry,
		time.Duration(s.cfg.SessionTimeout), time.Duration(s.cfg.SweepInterval))
	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Println("[server] stopped")
	return <-errCh
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    config.AppName,
		"version": s.version,
		"tool":    mcp.ToolName,
		"endpoints": map[string]string{
			"mcp":       MCPPath,
			"health":    "/health",
			"metrics":   "/metrics",
			"downloads": qrcode.DownloadRoute + "/{filename}",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":   "ok",
		"version":  s.version,
		"sessions": s.registry.Count(),
		"uptime":   time.Since(s.startedAt).Round(time.Second).String(),
	}
	if s.history != nil {
		if n, err := s.history.Count(r.Context()); err == nil {
			payload["conversions"] = n
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

// handleDownload streams a produced artifact byte-for-byte. Names that
// could escape the output directory are rejected before touching disk.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !qrcode.ValidArtifactName(filename) {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(s.generator.Path(filename))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, filename, stat.ModTime(), f)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[server] failed to write response: %v", err)
	}
}
