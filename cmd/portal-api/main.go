package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ChienNQuang/nextuni-portal-api/api/swagger"
	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/handler"
	"github.com/ChienNQuang/nextuni-portal-api/internal/middleware"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/repository"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	"github.com/ChienNQuang/nextuni-portal-api/internal/workflow"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/cache"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/config"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/logger"
	corsmiddleware "github.com/ChienNQuang/nextuni-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ChienNQuang/nextuni-portal-api/pkg/middleware/requestid"
)

// @title NextUni Portal API
// @version 1.0.0
// @description Role-based admissions portal over the NextUni content gateway
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	gatewayClient := gateway.NewClient(cfg.Gateway, logr)
	gatewayClient.SetObserver(func(method, path string, duration time.Duration, failureKind string) {
		metrics.ObserveGatewayCall(method, path, duration, failureKind)
	})

	sessions := repository.NewSessionRepository(redisClient, cfg.Session.KeyPrefix, cfg.Session.TTL)

	machine := workflow.NewMachine()
	executor := service.NewTransitionExecutor(gatewayClient, metrics, logr)

	authService := service.NewAuthService(gatewayClient, sessions, cfg.JWT, validate, logr)
	articleService := service.NewArticleService(gatewayClient, machine, executor, validate, logr, cfg.Lists.DefaultPageSize)
	eventService := service.NewEventService(gatewayClient, machine, executor, validate, logr, cfg.Lists.DefaultPageSize)
	catalogService := service.NewCatalogService(gatewayClient, logr, cfg.Lists.DefaultPageSize)
	subjectGroupService := service.NewSubjectGroupService(gatewayClient, logr)
	surfaceRegistry := service.NewSurfaceRegistry(gatewayClient, gatewayClient, cfg.Lists.DefaultPageSize, logr)
	exportService := service.NewExportService(gatewayClient, gatewayClient, logr)
	chatbotService := service.NewChatbotService(logr)

	authHandler := handler.NewAuthHandler(authService, surfaceRegistry)
	articleHandler := handler.NewArticleHandler(articleService, authService)
	eventHandler := handler.NewEventHandler(eventService, authService)
	surfaceHandler := handler.NewSurfaceHandler(surfaceRegistry, authService)
	catalogHandler := handler.NewCatalogHandler(catalogService, authService)
	subjectGroupHandler := handler.NewSubjectGroupHandler(subjectGroupService, authService)
	exportHandler := handler.NewExportHandler(exportService, authService)
	chatbotHandler := handler.NewChatbotHandler(chatbotService)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	if cfg.Chatbot.Enabled {
		api.POST("/chatbot/ask", chatbotHandler.Ask)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authService))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)
		authed.GET("/metrics/snapshot", metricsHandler.Snapshot)

		authed.GET("/articles/status/:status", articleHandler.List)
		authed.GET("/articles/:id", articleHandler.Get)
		authed.GET("/events/status/:status", eventHandler.List)
		authed.GET("/events/:id", eventHandler.Get)

		surfaces := authed.Group("/surfaces")
		{
			surfaces.GET("/:kind", surfaceHandler.Snapshot)
			surfaces.POST("/:kind/reload", surfaceHandler.Reload)
			surfaces.PUT("/:kind/filter", surfaceHandler.SetFilter)
			surfaces.PUT("/:kind/page", surfaceHandler.SetPage)
		}

		staff := authed.Group("")
		staff.Use(middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
		{
			staff.POST("/articles", articleHandler.Create)
			staff.PUT("/articles/:id", articleHandler.Update)
			staff.POST("/articles/:id/transition", articleHandler.Transition)
			staff.POST("/events", eventHandler.Create)
			staff.POST("/events/:id/transition", eventHandler.Transition)
			if cfg.Exports.Enabled {
				staff.GET("/exports/articles/:status", exportHandler.Articles)
				staff.GET("/exports/events/:status", exportHandler.Events)
			}
		}

		students := authed.Group("")
		students.Use(middleware.RequireRoles(models.RoleStudent))
		{
			students.POST("/events/:id/registration", eventHandler.Register)
			students.DELETE("/events/:id/registration", eventHandler.Unregister)
		}

		admin := authed.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/universities", catalogHandler.ListUniversities)
			admin.PUT("/universities/:id/toggle", catalogHandler.ToggleUniversity)
			admin.GET("/universities/:id/majors", catalogHandler.ListMajors)
			admin.PUT("/majors/:id/toggle", catalogHandler.ToggleMajor)
			admin.GET("/subjects", subjectGroupHandler.Subjects)
			admin.GET("/subject-groups", subjectGroupHandler.List)
			admin.POST("/subject-groups", subjectGroupHandler.Save)
			admin.POST("/subject-groups/draft/toggle", subjectGroupHandler.ToggleSubject)
			admin.PUT("/subject-groups/:id/toggle", subjectGroupHandler.ToggleStatus)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "gateway", cfg.Gateway.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
