package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Version is reported in the MCP initialize handshake.
const Version = "0.1.0"

// Server exposes the screener tools and resources over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
	now    func() time.Time
}

// NewServer fails when a required port is missing.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(&mcp.Implementation{Name: "screener", Version: Version}, nil),
		now:    time.Now,
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves a single client on stdin/stdout until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves the streamable HTTP transport. Every session shares the
// same server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.server }, nil)
}

// RunHTTP serves Handler on addr until ctx ends, then shuts down with a
// five second grace period.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("MCP server listening on %s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
