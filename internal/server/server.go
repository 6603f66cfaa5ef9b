// Package server exposes the collected snapshots over authenticated HTTP and
// a websocket stream, and serves the embedded dashboard.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"

	"sysmon_pro/config"
	"sysmon_pro/internal/auth"
	"sysmon_pro/internal/collector"
	_const "sysmon_pro/internal/const"
	"sysmon_pro/internal/logger"
)

//go:embed static
var staticFiles embed.FS

// Server is the dashboard-facing HTTP server.
type Server struct {
	logger     *logger.Logger
	collector  *collector.Collector
	auth       *auth.Manager
	hub        *Hub
	httpServer *http.Server
}

// New wires the HTTP routes and the snapshot stream hub.
func New(log *logger.Logger, col *collector.Collector, authMgr *auth.Manager, cfg *config.Config) *Server {
	s := &Server{
		logger:    log,
		collector: col,
		auth:      authMgr,
		hub:       NewHub(log, col, cfg.StreamInterval()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.Handle("/api/stats", authMgr.Middleware(http.HandlerFunc(s.handleStats)))
	mux.HandleFunc("/api/ws", s.handleStream)
	mux.Handle("/", s.staticHandler())

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: mux,
	}

	return s
}

// Start runs the stream hub and serves HTTP until Shutdown.
func (s *Server) Start() error {
	s.hub.Start()
	s.logger.Info("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the stream hub and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	return s.httpServer.Shutdown(ctx)
}

// ApplyConfig applies hot-reloadable settings.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.hub.SetInterval(cfg.StreamInterval())
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.auth.Authenticate(req.Username, req.Password) {
		s.logger.Warn("Failed login attempt for user %q from %s", req.Username, r.RemoteAddr)
		auth.WriteError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, expiresIn, err := s.auth.IssueToken(req.Username)
	if err != nil {
		s.logger.Error("Failed to issue token: %v", err)
		auth.WriteError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		Token:     token,
		TokenType: _const.TokenType,
		ExpiresIn: expiresIn,
	})
}

// handleStats runs one full collection on the request goroutine. The CPU
// settle wait blocks only this request; concurrent requests proceed.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.collector.Collect(r.Context())
	if err != nil {
		s.logger.Error("Collection failed: %v", err)
		auth.WriteError(w, http.StatusInternalServerError, "failed to collect system stats")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// handleStream upgrades to a websocket after verifying the token passed as a
// query parameter (browsers cannot set headers on websocket handshakes).
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		auth.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}
	if _, err := s.auth.VerifyToken(token); err != nil {
		auth.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	s.hub.Serve(w, r)
}

func (s *Server) staticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// embed 内容在编译期固定，此处不可能失败
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
