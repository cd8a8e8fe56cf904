package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"erp/internal/attendance"
	"erp/internal/auth"
	"erp/internal/config"
	"erp/internal/handler"
	"erp/internal/httpmiddleware"
	"erp/internal/logger"
	"erp/internal/orgstructure"
	"erp/internal/placement"
	"erp/internal/profile"
	"erp/internal/request"
	"erp/internal/store"
)

// newRouter wires the services and middleware. redisClient may be nil.
func newRouter(cfg config.App, appLog logger.Logger, db *store.DB, redisClient *store.Redis) (*gin.Engine, error) {
	reqCatalog, err := request.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	orgCatalog, err := orgstructure.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	profiles := profile.NewService(profile.NewRepository(db.Client), appLog)
	svc := handler.Services{
		Profiles:   profiles,
		Attendance: attendance.NewService(attendance.NewRepository(db.Client), profiles, appLog),
		Placements: placement.NewService(placement.NewRepository(db.Client), appLog),
		Requests:   request.NewService(request.NewRepository(db.Client), reqCatalog, appLog),
		Org:        orgstructure.NewService(orgstructure.NewRepository(db.Client), orgCatalog, appLog),
	}
	signer := auth.NewSigner(cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL, cfg.RefreshTTL)

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Custom logger
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.Metrics())

	var limiter httpmiddleware.Limiter = httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	if redisClient != nil {
		limiter = httpmiddleware.NewRedisWindow(redisClient.Client, cfg.RateLimitPerMin)
	}
	r.Use(httpmiddleware.RateLimit(limiter, appLog))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		dbHealthy := db.Healthy(c.Request.Context())
		redisHealthy := redisClient == nil || redisClient.Healthy(c.Request.Context())
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "db": dbHealthy, "redis": redisHealthy, "build": cfg.Build})
	})

	handler.New(svc, signer, appLog, cfg.Debug()).Register(r)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
