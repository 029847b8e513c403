package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/pkg/logger"
	"github.com/devricklin/teleport/internal/service"
)

// WatchController is the part of the watch service the API drives
type WatchController interface {
	Status(ctx context.Context) service.Status
	Toggle(ctx context.Context) (bool, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
}

// PreferenceStore reads and writes user preferences
type PreferenceStore interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Set(ctx context.Context, name string, value bool) (domain.Preferences, error)
	Reset(ctx context.Context) (domain.Preferences, error)
}

// Server provides the local HTTP control API
type Server struct {
	watch WatchController
	prefs PreferenceStore

	mu      sync.Mutex
	server  *http.Server
	addr    net.Addr
	stopped bool
	port    int
}

// NewServer creates a new API server bound to 127.0.0.1
func NewServer(watch WatchController, prefs PreferenceStore, port int) *Server {
	return &Server{
		watch: watch,
		prefs: prefs,
		port:  port,
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Engine control
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/toggle", s.handleToggle)
	mux.HandleFunc("/api/pause", s.handlePause)
	mux.HandleFunc("/api/resume", s.handleResume)

	// Preferences
	mux.HandleFunc("/api/prefs", s.handlePrefs)
	mux.HandleFunc("/api/prefs/reset", s.handlePrefsReset)
	mux.HandleFunc("/api/prefs/", s.handlePrefItem)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return mux
}

// Start listens and serves until Stop is called
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ln.Close()
	}
	s.server = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	logger.Named("API").Info().Str("addr", ln.Addr().String()).Msg("listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.stopped = true
	s.mu.Unlock()

	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// Addr returns the bound address once Start is listening
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// ============ Engine Handlers ============

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, s.watch.Status(r.Context()))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, err := s.watch.Toggle(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, s.watch.Status(r.Context()))
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.watch.Pause(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, s.watch.Status(r.Context()))
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.watch.Resume(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, s.watch.Status(r.Context()))
}

// ============ Preference Handlers ============

func (s *Server) handlePrefs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	prefs, err := s.prefs.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, prefs)
}

func (s *Server) handlePrefsReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	prefs, err := s.prefs.Reset(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, prefs)
}

func (s *Server) handlePrefItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/prefs/")
	flag, err := domain.ParsePreferenceFlag(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req struct {
		Value *bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		http.Error(w, "value is required", http.StatusBadRequest)
		return
	}

	// Pausing through the settings also stops or starts the engine
	if flag == domain.PrefPaused {
		if *req.Value {
			err = s.watch.Pause(r.Context())
		} else {
			err = s.watch.Resume(r.Context())
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		prefs, err := s.prefs.Load(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, prefs)
		return
	}

	prefs, err := s.prefs.Set(r.Context(), string(flag), *req.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, prefs)
}

// ============ Helpers ============

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(err))
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	var connErr *domain.ConnectionError
	switch {
	case errors.Is(err, domain.ErrUnknownPreference):
		return http.StatusNotFound
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
