package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/course-scheduler-api/api/swagger"
	"github.com/noah-isme/course-scheduler-api/internal/handler"
	"github.com/noah-isme/course-scheduler-api/internal/middleware"
	"github.com/noah-isme/course-scheduler-api/internal/service"
	"github.com/noah-isme/course-scheduler-api/pkg/config"
	"github.com/noah-isme/course-scheduler-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-scheduler-api/pkg/middleware/requestid"
)

// @title Course Scheduler API
// @version 1.0.0
// @description Constraint-based weekly course timetabling
// @BasePath /
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	schedulerSvc := service.NewSchedulerService(
		validator.New(),
		logr,
		metricsSvc,
		service.SchedulerConfig{
			TimeLimitSeconds: cfg.Scheduler.TimeLimitSeconds,
			NumWorkers:       cfg.Scheduler.NumWorkers,
			ScenarioWorkers:  cfg.Scheduler.ScenarioWorkers,
		},
	)
	schedulerHandler := handler.NewSchedulerHandler(schedulerSvc, cfg.Scheduler.MaxUploadBytes)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "stats": metricsSvc.Snapshot()})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		schedules := api.Group("/schedules")
		schedules.POST("/generate", schedulerHandler.Generate)
		schedules.POST("/generate/csv", schedulerHandler.GenerateCSV)
		schedules.POST("/validate", schedulerHandler.Validate)
		schedules.POST("/compare", schedulerHandler.Compare)
		schedules.POST("/compare/csv", schedulerHandler.CompareCSV)
		schedules.POST("/export", schedulerHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
