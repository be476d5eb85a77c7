package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusatlas/scheduling-api/api/swagger"
	"github.com/campusatlas/scheduling-api/internal/handler"
	"github.com/campusatlas/scheduling-api/internal/middleware"
	"github.com/campusatlas/scheduling-api/internal/models"
	"github.com/campusatlas/scheduling-api/internal/repository"
	"github.com/campusatlas/scheduling-api/internal/service"
	"github.com/campusatlas/scheduling-api/pkg/cache"
	"github.com/campusatlas/scheduling-api/pkg/config"
	"github.com/campusatlas/scheduling-api/pkg/database"
	"github.com/campusatlas/scheduling-api/pkg/logger"
	corsmiddleware "github.com/campusatlas/scheduling-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusatlas/scheduling-api/pkg/middleware/requestid"
)

// @title Campus Atlas Scheduling API
// @version 1.0.0
// @description Admin scheduling service for the campus map
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, map cache disabled", "error", err)
		redisClient = nil
	}

	sectionRepo := repository.NewSectionRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "campus-scheduling-api",
	})
	buildingSvc := service.NewBuildingService(buildingRepo, cacheRepo, cfg.Map.CacheTTL, metricsSvc, nil, logr)
	roomSvc := service.NewRoomService(roomRepo, buildingRepo, cacheRepo, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, nil, logr)
	facultySvc := service.NewFacultyService(facultyRepo, nil, logr)
	sectionSvc := service.NewSectionService(sectionRepo, courseRepo, roomRepo, facultyRepo, userRepo, metricsSvc, nil, logr)
	exportSvc := service.NewExportService(sectionRepo, roomRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	buildingHandler := handler.NewBuildingHandler(buildingSvc, metricsSvc)
	roomHandler := handler.NewRoomHandler(roomSvc, sectionSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc, sectionSvc)
	sectionHandler := handler.NewSectionHandler(sectionSvc, metricsSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		cacheStatus := "disabled"
		if redisClient != nil {
			cacheStatus = "up"
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				cacheStatus = "down"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "cache": cacheStatus})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.POST("/auth/change-password", authHandler.ChangePassword)
	authed.GET("/auth/me", authHandler.Me)

	authed.GET("/buildings", buildingHandler.List)
	authed.GET("/buildings/:id", buildingHandler.Get)
	authed.GET("/buildings/:id/rooms", roomHandler.ByBuilding)
	authed.GET("/rooms", roomHandler.List)
	authed.GET("/rooms/:id", roomHandler.Get)
	authed.GET("/rooms/:id/sections", roomHandler.Sections)
	authed.GET("/courses", courseHandler.List)
	authed.GET("/courses/:id", courseHandler.Get)
	authed.GET("/faculty", facultyHandler.List)
	authed.GET("/faculty/:id", facultyHandler.Get)
	authed.GET("/faculty/:id/sections", facultyHandler.Sections)
	authed.GET("/sections", sectionHandler.List)
	authed.GET("/sections/:id", sectionHandler.Get)
	authed.POST("/sections/check", sectionHandler.Check)

	if cfg.Export.Enabled {
		authed.GET("/rooms/:id/schedule/export", exportHandler.RoomSchedule)
	}

	admin := authed.Group("")
	admin.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))

	admin.POST("/buildings", buildingHandler.Create)
	admin.PUT("/buildings/:id", buildingHandler.Update)
	admin.DELETE("/buildings/:id", buildingHandler.Delete)
	admin.POST("/rooms", roomHandler.Create)
	admin.PUT("/rooms/:id", roomHandler.Update)
	admin.DELETE("/rooms/:id", roomHandler.Delete)
	admin.POST("/courses", courseHandler.Create)
	admin.PUT("/courses/:id", courseHandler.Update)
	admin.DELETE("/courses/:id", courseHandler.Delete)
	admin.POST("/faculty", facultyHandler.Create)
	admin.PUT("/faculty/:id", facultyHandler.Update)
	admin.DELETE("/faculty/:id", facultyHandler.Delete)
	admin.POST("/sections", sectionHandler.Create)
	admin.PUT("/sections/:id", sectionHandler.Update)
	admin.DELETE("/sections/:id", sectionHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
