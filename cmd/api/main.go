package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/maelin-io/timetable-api/api/swagger"
	"github.com/maelin-io/timetable-api/internal/handler"
	"github.com/maelin-io/timetable-api/internal/middleware"
	"github.com/maelin-io/timetable-api/internal/repository"
	"github.com/maelin-io/timetable-api/internal/service"
	"github.com/maelin-io/timetable-api/pkg/cache"
	"github.com/maelin-io/timetable-api/pkg/config"
	"github.com/maelin-io/timetable-api/pkg/database"
	"github.com/maelin-io/timetable-api/pkg/logger"
	corsmiddleware "github.com/maelin-io/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/maelin-io/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 1.0.0
// @description School timetable generation, validation and repair
// @BasePath /api/v1
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

	var (
		db    *sqlx.DB
		store service.ScheduleStore
	)
	if cfg.Storage.Enabled {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
		store = repository.NewScheduleRepository(db)
	}

	var (
		redisClient *redis.Client
		schedCache  service.ScheduleCache
	)
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		schedCache = cache.NewScheduleCache(redisClient, cfg.Cache.TTL)
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	scheduleSvc := service.NewScheduleService(store, schedCache, metricsSvc, validate, logr, cfg.Solver)

	var jobSvc *service.JobService
	if cfg.Jobs.Enabled {
		jobSvc = service.NewJobService(scheduleSvc, logr, cfg.Jobs)
		jobCtx, cancelJobs := context.WithCancel(context.Background())
		defer cancelJobs()
		jobSvc.Start(jobCtx)
		defer jobSvc.Stop()
	}

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, jobSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "postgres"})
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "redis"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	var guard gin.HandlerFunc
	if cfg.Auth.Enabled {
		authSvc := service.NewAuthService(cfg.Auth, validate, logr)
		authHandler := handler.NewAuthHandler(authSvc)
		api.POST("/auth/login", authHandler.Login)
		guard = middleware.JWT(authSvc)
	}

	schedules := api.Group("/schedules")
	if guard != nil {
		schedules.Use(guard)
	}
	schedules.POST("/generate", scheduleHandler.Generate)
	schedules.POST("/generate/async", scheduleHandler.GenerateAsync)
	schedules.GET("/jobs/:id", scheduleHandler.JobStatus)
	schedules.POST("/validate", scheduleHandler.Validate)
	schedules.POST("/resolve", scheduleHandler.Resolve)
	schedules.POST("/export", scheduleHandler.Export)
	schedules.GET("", scheduleHandler.List)
	schedules.GET("/:id", scheduleHandler.Get)
	schedules.DELETE("/:id", scheduleHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env,
		"storage", cfg.Storage.Enabled, "cache", cfg.Cache.Enabled,
		"async_jobs", cfg.Jobs.Enabled, "auth", cfg.Auth.Enabled)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
