package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Server runs the chat API with graceful shutdown.
type Server struct {
	addr    string
	handler http.Handler
	logger  *slog.Logger
}

// NewServer creates a Server for the given service.
func NewServer(addr string, svc Service, logger *slog.Logger) *Server {
	return &Server{
		addr:    addr,
		handler: NewHandler(svc, logger),
		logger:  logger,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // provider calls can be slow
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("support API listening", "addr", s.addr)

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
