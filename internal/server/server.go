// Package server is the HTTP surface of the Lenshub dashboard gateway.
// It owns the session cookie, enforces route and capability guards, and
// proxies data requests to the marketplace backend API.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/lenshub-dev/lenshub/internal/backend"
	"github.com/lenshub-dev/lenshub/internal/capability"
	"github.com/lenshub-dev/lenshub/internal/config"
	"github.com/lenshub-dev/lenshub/internal/session"
)

// Server represents the HTTP server
type Server struct {
	router       *gin.Engine
	config       *config.Config
	logger       zerolog.Logger
	redis        *redis.Client
	backend      *backend.Client
	store        session.TokenStore
	resolver     *session.Resolver
	capabilities *capability.Service
	version      string
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	// Redis backs the per-vendor capability cache
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	// Backend API client - all business logic lives behind it
	backendClient := backend.New(cfg.Backend.URL)

	// Session cookie is the single source of truth for the bearer token
	store := session.NewCookieStore(cfg.Session.CookieName, cfg.Session.CookieSecure)
	resolver := session.NewResolver(store)

	capabilities := capability.NewService(backendClient, capability.NewRedisCache(redisClient), zlog)

	registerValidators()

	// Create server
	server := &Server{
		config:       cfg,
		logger:       zlog,
		redis:        redisClient,
		backend:      backendClient,
		store:        store,
		resolver:     resolver,
		capabilities: capabilities,
		version:      version,
	}

	// Setup router
	server.setupRouter()

	return server, nil
}

// registerValidators adds custom validators to gin's binding engine
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "SUPER_ADMIN", "ADMIN", "VENDOR", "USER":
				return true
			}
			return false
		})
	}
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	// Set Gin mode based on environment
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS middleware for the dashboard frontend
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Route guard runs before everything: bounces authenticated callers
	// off auth routes and anonymous callers off protected routes
	s.router.Use(RouteGuardMiddleware(s.store, s.logger))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Session boundary (no auth required for login)
	s.router.POST("/auth/login", s.login)
	s.router.POST("/auth/logout", s.logout)
	s.router.GET("/auth/me", s.getCurrentUser)

	// Authenticated API routes (resolved session required)
	api := s.router.Group("/api")
	api.Use(SessionMiddleware(s.resolver, s.logger))
	{
		// Frames, sunglasses and readers share the product endpoints
		products := api.Group("/products")
		products.Use(s.requireCategories("Product", "Sunglass", "Reader"))
		{
			products.GET("", s.listProducts)
			products.GET("/:id", s.getProduct)
			products.POST("/:id/stock", s.adjustStock)
		}

		lensSolutions := api.Group("/lens-solutions")
		lensSolutions.Use(s.requireCategories("LensSolution"))
		{
			lensSolutions.GET("", s.listLensSolutions)
		}

		accessories := api.Group("/accessories")
		accessories.Use(s.requireCategories("Accessory"))
		{
			accessories.GET("", s.listAccessories)
		}

		// Order tracking
		api.GET("/orders", s.listOrders)
		api.GET("/orders/:id", s.getOrder)
		api.PATCH("/orders/:id/status", s.updateOrderStatus)

		// Coupons (mutations are admin only)
		api.GET("/coupons", s.listCoupons)
		couponAdmin := api.Group("/coupons")
		couponAdmin.Use(AdminOnlyMiddleware(s.logger))
		{
			couponAdmin.POST("", s.createCoupon)
			couponAdmin.DELETE("/:id", s.deleteCoupon)
		}

		// Vendor profile & settings
		api.GET("/vendor/profile", s.getVendorProfile)
		api.PATCH("/vendor/settings", s.updateVendorSettings)
		api.GET("/vendor/categories", s.getVendorCategories)
		api.POST("/vendor/categories/refresh", s.refreshVendorCategories)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := ulid.Make().String()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "lenshub-gateway",
		"version":   s.version,
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create HTTP server with production timeouts
	srv := &http.Server{
		Addr:              s.config.Server.ListenAddr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.logger.Info().Str("addr", s.config.Server.ListenAddr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	// Close Redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Error closing Redis client")
		}
	}

	s.logger.Info().Msg("Server shutdown complete")

	return nil
}
