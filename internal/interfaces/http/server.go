// Package http exposes the bill services and the store API over HTTP.
// Handlers only translate requests to service calls and service views to JSON.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/application/service"
	"github.com/garyjia/bill-review/internal/domain/bill"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:           "0.0.0.0",
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxUploadBytes: 10 << 20,
	}
}

// ReviewExporter renders the review queue as a downloadable workbook
type ReviewExporter interface {
	Write(w io.Writer, groups bill.Groups) error
}

// ProofStore is a store that also serves its proof files
type ProofStore interface {
	port.BillStore
	OpenProof(ctx context.Context, key, name string) ([]byte, string, error)
}

// Dependencies are the services the server routes to.
// Store is set only when this process hosts the store API.
type Dependencies struct {
	Submission service.SubmissionService
	Listing    service.ListingService
	Review     service.ReviewService
	History    service.HistoryService
	Exporter   ReviewExporter
	Store      ProofStore
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	deps       Dependencies
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, deps Dependencies, logger Logger) *Server {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = DefaultServerConfig().MaxUploadBytes
	}

	router := gin.New()
	router.MaxMultipartMemory = config.MaxUploadBytes

	server := &Server{
		config: config,
		router: router,
		deps:   deps,
		logger: logger,
	}

	server.router.Use(gin.Recovery())
	server.router.Use(server.loggingMiddleware())
	server.setupRoutes()

	return server
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", healthCheck)

	api := s.router.Group("/api", sessionMiddleware())

	app := &appHandlers{deps: s.deps, maxUploadBytes: s.config.MaxUploadBytes, logger: s.logger}
	employee := api.Group("/employee", requireSession())
	{
		employee.POST("/proofs", app.UploadProof)
		employee.POST("/bills", app.SubmitBill)
		employee.GET("/bills", app.ListBills)
	}

	admin := api.Group("/admin", requireAdmin())
	{
		admin.GET("/dashboard", app.Dashboard)
		admin.GET("/bills/export", app.ExportQueue)
		admin.POST("/bills/decide", app.DecideMany)
		admin.POST("/bills/:id/accept", app.Accept)
		admin.POST("/bills/:id/refuse", app.Refuse)
		admin.GET("/bills/:id/history", app.History)
	}

	if s.deps.Store != nil {
		st := &storeHandlers{store: s.deps.Store, maxUploadBytes: s.config.MaxUploadBytes, logger: s.logger}
		v1 := s.router.Group("/v1")
		{
			v1.GET("/bills", st.List)
			v1.POST("/bills", st.Create)
			v1.PATCH("/bills", st.Update)
			v1.PATCH("/bills/:id", st.Update)
			v1.GET("/files/:key/:name", st.ServeFile)
		}
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr, "store_api", s.deps.Store != nil)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
