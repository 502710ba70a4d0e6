// Package api exposes the recommendation engine over HTTP. Every handler is
// a stateless call into a shared, read-only library.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/rcliao/pm-philosophy/internal/config"
	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/recommend"
	"github.com/rcliao/pm-philosophy/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Params holds the collaborators for New.
type Params struct {
	Engine  *recommend.Engine
	Library *store.Library
	Config  config.ServerConfig
	Logger  *zap.Logger
}

// Server serves the HTTP API.
type Server struct {
	engine  *recommend.Engine
	library *store.Library
	cfg     config.ServerConfig
	logger  *zap.Logger

	// nil when server.cache_size is 0
	cache *lru.Cache[string, model.Recommendations]
}

// New builds a Server from p.
func New(p Params) (*Server, error) {
	if p.Engine == nil || p.Library == nil {
		return nil, fmt.Errorf("api server needs an engine and a library")
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	s := &Server{
		engine:  p.Engine,
		library: p.Library,
		cfg:     p.Config,
		logger:  p.Logger,
	}
	if p.Config.CacheSize > 0 {
		cache, err := lru.New[string, model.Recommendations](p.Config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
