package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"cadet/internal/config"
	"cadet/internal/logging"
	"cadet/internal/provider"
	"cadet/internal/usage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server owns the HTTP listener for the gateway endpoint.
type Server struct {
	cfg     *config.Config
	handler *Handler
	usage   *usage.Tracker
	logger  *zap.Logger

	srv *http.Server
}

// NewServer wires the gateway from configuration. gen may be nil, in which
// case the provider is opened from cfg when an API key is present.
func NewServer(ctx context.Context, cfg *config.Config, gen provider.Generator, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tracker := usage.NewTracker()

	if gen == nil && cfg.HasAPIKey() {
		g, err := provider.NewGemini(ctx, provider.Config{
			APIKey:  cfg.Provider.APIKey,
			Timeout: cfg.GetProviderTimeout(),
		})
		if err != nil {
			return nil, err
		}
		gen = &provider.Logged{Next: g, Logger: logging.Get(logger, logging.CategoryProvider)}
	}

	var actions *Actions
	if gen != nil {
		actions = NewActions(gen, Models{Text: cfg.Provider.TextModel, Image: cfg.Provider.ImageModel}, tracker)
	} else {
		logger.Warn("no provider API key configured; requests will fail",
			zap.Strings("env", config.APIKeyEnvVars))
	}

	h := NewHandler(actions, HandlerOptions{
		AllowOrigin:     cfg.Gateway.AllowOrigin,
		MaxBodyBytes:    cfg.Gateway.MaxBodyBytes,
		ProviderTimeout: cfg.GetProviderTimeout(),
	}, logger)

	mux := http.NewServeMux()
	mux.Handle(cfg.Gateway.Path, h)

	return &Server{
		cfg:     cfg,
		handler: h,
		usage:   tracker,
		logger:  logger,
		srv: &http.Server{
			Addr:              cfg.Gateway.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Usage returns the token tracker fed by provider calls.
func (s *Server) Usage() *usage.Tracker { return s.usage }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("gateway listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("path", s.cfg.Gateway.Path))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.logUsage()
	return err
}

func (s *Server) logUsage() {
	stats := s.usage.Stats()
	s.logger.Info("gateway stopped",
		zap.Int64("calls", stats.Overall.Calls),
		zap.Int64("input_tokens", stats.Overall.Input),
		zap.Int64("output_tokens", stats.Overall.Output),
		zap.Int64("failures", stats.Failures),
		zap.Any("by_action", stats.ByAction),
		zap.Any("by_model", stats.ByModel))
}
