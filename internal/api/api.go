package api

import (
	"log"
	"strings"
	"time"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mtopaz/usc-workshop-aria/pkg/utils"

	admin_module "github.com/mtopaz/usc-workshop-aria/internal/api/modules/admin"
	health_module "github.com/mtopaz/usc-workshop-aria/internal/api/modules/health"
	interview_module "github.com/mtopaz/usc-workshop-aria/internal/api/modules/interview"
	pages_module "github.com/mtopaz/usc-workshop-aria/internal/api/modules/pages"
)

func Start(cfg *utils.Config) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("PORT", "7860")

	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus scrape endpoint
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	if err := interview_module.Init(cfg); err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize interview module: ", err)
	}
	interview_module.RegisterRoutes(baseGroup)

	if err := admin_module.Init(cfg); err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize admin module: ", err)
	}
	admin_module.RegisterRoutes(baseGroup)

	if err := health_module.Init(cfg); err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize health module: ", err)
	}
	health_module.RegisterRoutes(baseGroup)

	// Browser-facing pages mount at the engine root
	if err := pages_module.Init(cfg); err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize pages module: ", err)
	}
	pages_module.RegisterRoutes(engine.Group("/"))

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}
