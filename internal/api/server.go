// Package api is the HTTP surface of vitrine-installd: the three install
// contracts consumed by the setup wizard, plus health.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine-cms/vitrine-setup/internal/provision"
)

// Server is the HTTP API server for vitrine-installd.
type Server struct {
	config Config
	http   *http.Server
	prov   provision.Provisioner
	log    *zap.Logger

	// Single-run guard: once an installation has completed, further install
	// requests are rejected until the state file is removed by an operator.
	mu        sync.Mutex
	installed bool
}

// NewServer creates a new Server with the given config and provisioner.
func NewServer(cfg Config, prov provision.Provisioner, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		config:    cfg,
		prov:      prov,
		log:       log,
		installed: stateFileExists(cfg.StateFile),
	}

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.InstallTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/v1/install/test-connection", s.handleTestConnection)
	mux.HandleFunc("POST /api/v1/install", s.handleInstall)
	return s.withRequestID(s.withAccessLog(mux))
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("http server", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Installed reports whether an installation has completed.
func (s *Server) Installed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installed
}

// markInstalled flips the single-run guard and persists it.
func (s *Server) markInstalled() {
	s.mu.Lock()
	s.installed = true
	s.mu.Unlock()

	if s.config.StateFile == "" {
		return
	}
	content := fmt.Sprintf("installed %s\n", time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(s.config.StateFile, []byte(content), 0644); err != nil {
		s.log.Error("write state file", zap.String("path", s.config.StateFile), zap.Error(err))
	}
}

func stateFileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
