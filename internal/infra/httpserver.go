package infra

import (
	"context"
	"net/http"
	"time"
)

const maxHeaderBytes = 1 << 20

// HTTPServer wraps http.Server with the lifecycle helpers cmd/api needs:
// blocking start and context-bounded graceful shutdown.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer builds the server with timeouts taken from configuration.
// The header read deadline is capped so slow-header clients cannot hold a
// connection for the full body read timeout.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	readHeaderTimeout := cfg.HTTPReadTimeout
	if readHeaderTimeout <= 0 || readHeaderTimeout > 5*time.Second {
		readHeaderTimeout = 5 * time.Second
	}

	return &HTTPServer{server: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}}
}

// Start listens and serves until Shutdown or failure.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
