/*
Package mockserver is an in-memory stand-in for the commerce backend.

It serves every endpoint the back office client talks to, with the same
envelope, pagination meta and status machine, so the client and its state
containers can be exercised end to end without the real system of record.
Data lives in memory and is lost on restart.
*/
package mockserver

import (
	"net/http"

	"backoffice/config"
	"backoffice/mockserver/middleware"

	"github.com/gin-gonic/gin"
)

// DefaultOTP is accepted by /auth/verify when server.dev_otp is empty.
const DefaultOTP = "1234"

// Server wires the gin engine to the in-memory data.
type Server struct {
	engine *gin.Engine
	config *config.Config
	data   *Data
	health *HealthController
	otp    string
}

// Option customises a Server.
type Option func(*Server)

// WithData replaces the seeded data set.
func WithData(d *Data) Option {
	return func(s *Server) { s.data = d }
}

// New builds the engine with the middleware chain and every route.
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		config: cfg,
		otp:    cfg.Server.DevOTP,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.data == nil {
		s.data = SeedData()
	}
	if s.otp == "" {
		s.otp = DefaultOTP
	}
	s.health = NewHealthController(cfg, s.data)

	s.engine.Use(middleware.RequestIDMiddleware())                      // 1. request id first
	s.engine.Use(middleware.RecoveryMiddleware())                       // 2. recovery
	s.engine.Use(middleware.LoggingMiddleware())                        // 3. logging
	s.engine.Use(middleware.CORSMiddleware(&cfg.Server.CORS))           // 4. CORS
	s.engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 5. rate limiting

	s.routes()
	return s
}

func (s *Server) routes() {
	s.health.RegisterRoutes(s.engine.Group(""))

	authGroup := s.engine.Group("/auth")
	{
		authGroup.POST("/otp", s.sendOTP)
		authGroup.POST("/verify", s.verifyOTP)
	}

	protected := s.engine.Group("", middleware.AuthMiddleware(s.data))

	apiGroup := protected.Group("/api")
	{
		apiGroup.GET("/categories", s.listCategories)
		apiGroup.GET("/categories/:id", s.getCategory)
		apiGroup.POST("/categories", s.createCategory)
		apiGroup.PATCH("/categories/:id", s.updateCategory)
		apiGroup.DELETE("/categories/:id", s.deleteCategory)

		apiGroup.GET("/sub-categories", s.listSubCategories)
		apiGroup.GET("/sub-categories/:id", s.getSubCategory)
		apiGroup.POST("/sub-categories", s.createSubCategory)
		apiGroup.PATCH("/sub-categories/:id", s.updateSubCategory)
		apiGroup.DELETE("/sub-categories/:id", s.deleteSubCategory)

		apiGroup.GET("/products", s.listProducts)
		apiGroup.GET("/products/:id", s.getProduct)
		apiGroup.POST("/products", s.createProduct)
		apiGroup.PUT("/products/:id", s.replaceProduct)
		apiGroup.DELETE("/products/:id", s.deleteProduct)

		apiGroup.POST("/variants", s.createVariant)
		apiGroup.PUT("/variants/:id", s.replaceVariant)
		apiGroup.DELETE("/variants/:id", s.deleteVariant)

		apiGroup.GET("/orders/all", s.listOrders)
		apiGroup.GET("/orders/:id", s.getOrder)
		apiGroup.PATCH("/orders/:id/status", s.updateOrderStatus)

		apiGroup.GET("/coupons", s.listCoupons)
		apiGroup.GET("/coupons/:id", s.getCoupon)
		apiGroup.POST("/coupons", s.createCoupon)
		apiGroup.PATCH("/coupons/:id", s.updateCoupon)
		apiGroup.DELETE("/coupons/:id", s.deleteCoupon)

		apiGroup.GET("/configurations", s.getConfiguration)
		apiGroup.PATCH("/configurations/:id", s.updateConfiguration)

		apiGroup.GET("/users/all", s.listUsers)
	}

	protected.POST("/assets/upload", s.upload)
	// Uploaded files are public, like a CDN.
	s.engine.GET("/assets/files/:key", s.serveAsset)

	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    s.config.App.Name,
			"version": s.config.App.Version,
			"env":     s.config.App.Env,
			"health":  "/health",
		})
	})
}

// Handler returns the http.Handler to mount.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Engine exposes the gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Data returns the backing store.
func (s *Server) Data() *Data {
	return s.data
}
