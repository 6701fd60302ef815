// Package demoserver implements the small demo application the access
// suite targets: a hello-world page served as HTML and JSON, a form
// POST echo, a string-reverse service and an always-404 page.
package demoserver

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/zscgrhg/httpkit/config"
	"github.com/zscgrhg/httpkit/logging"
)

type Server struct {
	cfg    config.Config
	srv    *http.Server
	logger zerolog.Logger
}

func New(cfg config.Config) *Server {
	logger := logging.For("demoserver")
	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           withRequestLog(logger, Handler(cfg.App)),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.cfg.Addr()).Str("app", s.cfg.App).Msg("listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down")
	return s.srv.Shutdown(ctx)
}

func withRequestLog(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}
