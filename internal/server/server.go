package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apisetup "newsletter-server/internal/api"
	"newsletter-server/internal/bootstrap"
	"newsletter-server/internal/config"
	"newsletter-server/internal/observability"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	deps       *bootstrap.Dependencies
	config     *config.Config
	gatherer   prometheus.Gatherer
	logger     *observability.Logger
}

// New creates a new Server instance. gatherer backs GET /metrics.
func New(cfg *config.Config, deps *bootstrap.Dependencies, gatherer prometheus.Gatherer, logger *observability.Logger) *Server {
	return &Server{
		config:   cfg,
		deps:     deps,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Setup configures the HTTP router with middleware and routes
func (s *Server) Setup() {
	s.router = gin.New()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS", "DELETE"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept", "Cache-Control", "X-Request-ID"}
	corsConfig.AllowOrigins = []string{s.config.Server.WebAppURI}

	// Allow localhost in non-production
	if os.Getenv("GO_ENV") != "production" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, "http://localhost:3000", "http://localhost:5173")
	}

	// Apply middleware
	s.router.Use(cors.New(corsConfig))
	s.router.Use(observability.Middleware(s.logger))

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	// Register routes
	rootRouter := s.router.Group("/")
	api := apisetup.New(
		rootRouter,
		s.deps.AuthHandler,
		s.deps.NewsletterHandler,
		s.deps.TemplatesHandler,
		s.deps.SubscriptionHandler,
		s.deps.SubscribersHandler,
		s.deps.TrackingHandler,
		s.deps.ArchiveHandler,
		s.deps.AdminsHandler,
		s.deps.RateLimiter,
	)
	api.RegisterRoutes()
}

// Start begins listening for HTTP requests and starts background workers
func (s *Server) Start(ctx context.Context) error {
	if err := s.deps.SendPool.Start(ctx); err != nil {
		return fmt.Errorf("failed to start send pool: %w", err)
	}

	// Launch scheduled newsletters as they come due
	go s.deps.Scheduler.Start(ctx)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.Port),
		Handler: s.router,
	}

	// Run the server in a goroutine so that it doesn't block
	go func() {
		s.logger.Info(ctx, fmt.Sprintf("Server starting on port %d", s.config.Server.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "server failed to start", err)
			os.Exit(1)
		}
	}()

	return nil
}

// WaitForShutdown blocks until a shutdown signal is received, then gracefully shuts down
func (s *Server) WaitForShutdown(ctx context.Context) error {
	// Set up a channel to listen for OS signals for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received
	<-quit
	s.logger.Info(ctx, "Shutting down server...")

	// No new campaigns start once the scheduler is stopped
	s.deps.Scheduler.Stop()

	// The server has 5 seconds to finish the requests it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Campaigns cut short stay in sending and can be resumed
	if err := s.deps.SendPool.Drain(ctx); err != nil {
		s.logger.WarnWithError(ctx, "send pool did not drain cleanly", err)
	}

	// Cleanup dependencies
	s.deps.Cleanup()

	s.logger.Info(ctx, "Server exited gracefully")
	return nil
}
