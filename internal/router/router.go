// internal/router/router.go
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shoplens/shoplens-backend/internal/cache"
	"github.com/shoplens/shoplens-backend/internal/config"
	"github.com/shoplens/shoplens-backend/internal/handlers"
	"github.com/shoplens/shoplens-backend/internal/middleware"
	"github.com/shoplens/shoplens-backend/internal/report"
	"github.com/shoplens/shoplens-backend/internal/scraper"
	"github.com/shoplens/shoplens-backend/internal/services"
	"github.com/shoplens/shoplens-backend/internal/utils"
)

func Initialize(cfg *config.Config, log *logrus.Logger) (*gin.Engine, error) {
	// Initialize services
	scrapeService := scraper.NewService(scraper.Options{
		Timeout:     time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second,
		MaxPages:    cfg.Scraper.MaxPages,
		MaxProducts: cfg.Scraper.MaxProducts,
		PageSize:    cfg.Scraper.PageSize,
		UserAgent:   cfg.Scraper.UserAgent,
	}, log)

	generator, err := report.NewGenerator(cfg.Gemini.APIKey, log)
	if err != nil {
		return nil, err
	}

	resultCache := cache.New(time.Duration(cfg.Cache.TTLHours)*time.Hour, cfg.Cache.Capacity)

	authService := services.NewAuthService(cfg)
	analysisService := services.NewAnalysisService(scrapeService, generator, resultCache, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	analyzeHandler := handlers.NewAnalyzeHandler(analysisService)
	healthHandler := handlers.NewHealthHandler(resultCache)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.AuthRateLimit(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst), authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Analysis routes
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/analyze", analyzeHandler.Analyze)
			protected.POST("/translate", analyzeHandler.Translate)
		}
	}

	return r, nil
}
