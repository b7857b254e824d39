package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Server carries an http.Server tuned for this API: a tight header timeout
// against slow-loris clients, but no overall read timeout since multipart
// video uploads stream for as long as the payload is large.
type Server struct {
	srv *http.Server
}

// New builds a server bound to the given port.
func New(port int, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
