package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/hooks"
	"github.com/soyeahso/kaiwa/internal/logging"
	"github.com/soyeahso/kaiwa/internal/store"
	"github.com/soyeahso/kaiwa/internal/tutor"
	"github.com/soyeahso/kaiwa/internal/version"
)

// Server is the kaiwa web backend: the REST surface over the conversation
// store and the voice runner.
type Server struct {
	cfg      config.ServerConfig
	log      *logging.Logger
	sessions *store.ConversationStore
	version  string
	provider string

	// Voice runner (optional; voice submissions answer 503 without it)
	runner *tutor.Runner

	// Lifecycle observers (optional)
	hooks *hooks.Manager

	echo       *echo.Echo
	startedAt  time.Time
	httpServer *http.Server
}

// ServerOption configures the gateway server.
type ServerOption func(*Server)

// WithRunner sets the runner that handles voice submissions.
func WithRunner(r *tutor.Runner) ServerOption {
	return func(s *Server) {
		s.runner = r
	}
}

// WithHooks sets the manager that receives lifecycle events.
func WithHooks(m *hooks.Manager) ServerOption {
	return func(s *Server) {
		s.hooks = m
	}
}

// WithProvider records the conversational provider name for logging.
func WithProvider(name string) ServerOption {
	return func(s *Server) {
		s.provider = name
	}
}

// New creates a new gateway server.
func New(cfg config.ServerConfig, sessions *store.ConversationStore, log *logging.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log.Sub("gateway"),
		sessions: sessions,
		version:  version.Version,
	}

	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	s.useMiddleware(e)
	s.registerRoutes(e)
	s.echo = e

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "loopback":
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	case "lan":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return net.JoinHostPort(host, fmt.Sprint(cfg.Port))
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Start begins listening for HTTP requests.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(l net.Listener) context.Context { return ctx },
	}

	s.startedAt = time.Now()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Bind).
		Str("provider", s.provider).
		Str("version", s.version).
		Bool("anyOrigin", s.cfg.AllowsAnyOrigin()).
		Msg("server ready")
	s.hooks.Emit(ctx, hooks.Payload{
		Event: hooks.EventServerStart,
		Data:  map[string]any{"addr": ln.Addr().String(), "version": s.version},
	})

	// Shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		s.log.Info().Dur("uptime", time.Since(s.startedAt)).Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("server shutdown")
		}
	}()

	err = s.httpServer.Serve(ln)
	s.hooks.Emit(context.WithoutCancel(ctx), hooks.Payload{
		Event: hooks.EventServerStop,
		Data:  map[string]any{"uptime": time.Since(s.startedAt).String()},
	})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}
