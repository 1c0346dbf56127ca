package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// ServiceName identifies the HTTP server in traces.
const ServiceName = "screener"

// Config configures the HTTP surface.
type Config struct {
	// CORSOrigins lists the allowed browser origins. Empty allows none.
	CORSOrigins []string

	// Tracing enables OpenTelemetry request spans.
	Tracing bool

	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// Server serves the screener API.
type Server struct {
	ports  *Ports
	router *gin.Engine
	now    func() time.Time
}

// NewServer creates the router for the given ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		router: gin.New(),
		now:    time.Now,
	}

	s.router.Use(gin.Recovery(), requestLogger())
	if cfg.Tracing {
		s.router.Use(otelgin.Middleware(ServiceName))
	}
	if len(cfg.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
		corsConfig.MaxAge = 12 * time.Hour
		s.router.Use(cors.New(corsConfig))
	}

	s.routes()
	if cfg.MCP != nil {
		s.router.Any("/mcp", gin.WrapH(cfg.MCP))
	}

	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) routes() {
	s.router.GET("/health", s.handleHealth)

	rag := s.router.Group("/rag")
	rag.POST("/ingest", s.handleIngest)
	rag.POST("/query", s.handleQuery)
	rag.POST("/stats", s.handleStats)
	rag.POST("/store-jd", s.handleStoreJD)
	rag.POST("/suggest", s.handleSuggest)
	rag.POST("/clear-history", s.handleClearHistory)

	interview := s.router.Group("/interview")
	interview.POST("/check-intent", s.handleCheckIntent)
	interview.POST("/available-slots", s.handleAvailableSlots)
	interview.POST("/schedule", s.handleSchedule)
	interview.POST("/manual-email", s.handleManualEmail)
}

// requestLogger logs each request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
