// Package server is the learnhub backend-for-frontend.
//
// Each request is one page view: session state is re-derived from the
// browser's cookies, every backend call goes through the request-bound
// apiclient.Client, and protected routes sit behind the session gate.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	config     *config.Config
	logger     zerolog.Logger
	validator  *validator.Validate
	api        *apiclient.Client
	cookieOpts tokenstore.CookieOptions
	version    string
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	api, err := apiclient.New(cfg.API.BaseURL, apiclient.Options{
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Logger:     &zlog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	cookieOpts := tokenstore.DefaultCookieOptions()
	cookieOpts.Domain = cfg.Cookie.Domain
	cookieOpts.Secure = cfg.Cookie.Secure
	cookieOpts.MaxAge = cfg.Cookie.MaxAge

	server := &Server{
		config:     cfg,
		logger:     zlog,
		validator:  validator.New(),
		api:        api,
		cookieOpts: cookieOpts,
		version:    version,
	}

	// Setup router
	server.setupRouter()

	return server, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// Add middleware
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.recoveryMiddleware())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.HTTP.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", apiclient.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", apiclient.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Session derivation and the presence gate run for every route
	s.router.Use(s.sessionMiddleware())
	s.router.Use(s.gateMiddleware(routeAccess))

	s.router.GET("/health", s.healthCheck)

	// Public pages
	s.router.GET("/", s.home)
	s.router.GET("/courses", s.listCourses)
	s.router.GET("/courses/:id", s.getCourse)
	s.router.GET("/workshops", s.listWorkshops)
	s.router.GET("/hackathons", s.listHackathons)
	s.router.POST("/contact", s.contact)

	// End-user auth
	s.router.GET("/login", s.loginPage)
	s.router.POST("/login", s.login)
	s.router.GET("/signup", s.signupPage)
	s.router.POST("/signup", s.signup)
	s.router.POST("/logout", s.logout)

	// End-user protected
	s.router.GET("/dashboard", s.dashboard)
	s.router.POST("/courses/:id/enroll", s.enrollCourse)
	s.router.POST("/workshops/:id/register", s.registerWorkshop)
	s.router.POST("/hackathons/:id/register", s.registerHackathon)
	s.router.POST("/checkout/order", s.createOrder)
	s.router.POST("/checkout/verify", s.verifyPayment)

	// Admin auth
	s.router.GET("/admin/login", s.adminLoginPage)
	s.router.POST("/admin/login", s.adminLogin)
	s.router.POST("/admin/logout", s.adminLogout)

	// Admin dashboard
	admin := s.router.Group("/admin")
	{
		admin.GET("", s.adminDashboard)
		admin.GET("/:kind", s.adminList)
		admin.POST("/:kind", s.adminCreate)
		admin.PUT("/:kind/:id", s.adminUpdate)
		admin.DELETE("/:kind/:id", s.adminDelete)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "learnhub-web",
		"version":   s.version,
	})
}

// Start starts the HTTP server and blocks until SIGINT/SIGTERM
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.config.HTTP.Addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.config.API.Timeout + 15*time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Str("api", s.api.BaseURL()).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("listen and serve: %w", err)
	case <-sigChan:
		s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
