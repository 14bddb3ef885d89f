package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edu-report/report-card-api/api/swagger"
	"github.com/edu-report/report-card-api/internal/handler"
	"github.com/edu-report/report-card-api/internal/middleware"
	"github.com/edu-report/report-card-api/internal/repository"
	"github.com/edu-report/report-card-api/internal/service"
	"github.com/edu-report/report-card-api/pkg/cache"
	"github.com/edu-report/report-card-api/pkg/config"
	"github.com/edu-report/report-card-api/pkg/database"
	"github.com/edu-report/report-card-api/pkg/logger"
	corsmiddleware "github.com/edu-report/report-card-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edu-report/report-card-api/pkg/middleware/requestid"
)

// @title Report Card API
// @version 0.1.0
// @description Grade aggregation and term resolution engine for school report cards
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The overview cache is an optimization; the API runs without it.
		logr.Sugar().Warnw("redis unavailable, overview caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	academicRepo := repository.NewAcademicRepository(db)
	scaleRepo := repository.NewGradingScaleRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	testResultRepo := repository.NewTestResultRepository(db)
	reportRepo := repository.NewReportRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	termSvc := service.NewTermService(academicRepo, validate, logr)
	catalogSvc := service.NewCatalogService(catalogRepo, logr)
	gradeSvc := service.NewGradeService(scaleRepo, logr)
	matrixSvc := service.NewMatrixService(catalogRepo, logr)
	aggregationSvc := service.NewAggregationService(testResultRepo, termSvc, catalogRepo, gradeSvc, logr)
	testResultSvc := service.NewTestResultService(testResultRepo, catalogRepo, termSvc, validate, logr)
	reportSvc := service.NewReportService(reportRepo, commentRepo, catalogRepo, matrixSvc, gradeSvc, aggregationSvc, validate, logr)
	analyticsSvc := service.NewAnalyticsService(testResultRepo, cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, cfg.Analytics.Enabled, logr)
	exportSvc := service.NewExportService(reportSvc, analyticsSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, cfg.JWT.Secret, handler.Handlers{
		Terms:       handler.NewTermHandler(termSvc),
		Catalog:     handler.NewCatalogHandler(catalogSvc),
		Grades:      handler.NewGradeHandler(gradeSvc),
		Matrix:      handler.NewMatrixHandler(matrixSvc),
		TestResults: handler.NewTestResultHandler(testResultSvc),
		Reports:     handler.NewReportHandler(reportSvc, aggregationSvc),
		Analytics:   handler.NewAnalyticsHandler(analyticsSvc, metricsSvc),
		Exports:     handler.NewExportHandler(exportSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
