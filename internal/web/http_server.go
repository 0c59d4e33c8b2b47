package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rook-computer/framerelay/internal/logging"
)

type HTTPServer struct {
	Config ServerConfig

	// Handler serves every request. NewHTTPServer sets it to the relay router.
	Handler http.Handler

	Logger logging.Logger

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

// NewHTTPServer wires the relay router around deps.
func NewHTTPServer(cfg ServerConfig, deps APIV1Deps) *HTTPServer {
	deps = deps.withDefaults()
	var handler http.Handler = NewRouter(cfg.StaticDir, deps)
	if cfg.DevMode {
		handler = WithDevCORS(handler)
	}
	return &HTTPServer{Config: cfg, Handler: handler, Logger: deps.Logger}
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}
	if s.Logger == nil {
		s.Logger = logging.NoopLogger{}
	}

	addr := s.Config.ListenAddr
	if addr == "" {
		addr = DefaultListenAddr
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Hijacked feed connections outlive Shutdown; they watch this context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv := s.srv
	logger := s.Logger
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		logger.Errorf("web", "serve %s: %v", ln.Addr(), err)
	}()

	logger.Infof("web", "listening on %s", ln.Addr())
	return nil
}

// Addr is the bound listen address, or the configured one before Start.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.Config.ListenAddr
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if srv == nil {
		if ln != nil {
			_ = ln.Close()
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
