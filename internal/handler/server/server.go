package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/handler"
)

type Server struct {
	server *http.Server
	logger *zap.Logger
}

// NewServer wraps handler with recovery and request logging.
func NewServer(handler http.Handler, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:              addr,
			Handler:           WithRequestLogging(WithRecovery(handler, logger), logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewAPIServer serves the REST API routes.
func NewAPIServer(h *handler.Handler, addr string, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	SetupRoutes(mux, h)
	return NewServer(mux, addr, logger)
}

func (s *Server) Handler() http.Handler { return s.server.Handler }

func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
