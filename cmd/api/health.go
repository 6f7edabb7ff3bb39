package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/middleware"
	"stayhub-backend/pkg/container"
)

// ========================================
// HEALTH CHECK HANDLERS
// ========================================

func registerHealthRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/health", healthCheckHandler(c))
	router.GET("/health/db", databaseHealthHandler(c))
	router.GET("/health/auth", authHealthHandler(c))
	router.GET("/health/full", fullHealthHandler(c))
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"timestamp":   time.Now().Format(time.RFC3339),
			"environment": appCtx.Config.App.Environment,
		})
	}
}

func databaseHealthHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "disconnected"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": fmt.Sprintf("error: %v", err),
			})
			return
		}

		stats := appCtx.DB.Pool.Stat()
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"total_connections": stats.TotalConns(),
			"idle_connections":  stats.IdleConns(),
			"acquired":          stats.AcquiredConns(),
		})
	}
}

// authHealthHandler exercises the token round trip without touching the
// user table
func authHealthHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		probe := uuid.New()
		token, err := appCtx.JWTManager.GenerateAccessToken(probe.String(), "probe@localhost", "guest")
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": fmt.Sprintf("generate failed: %v", err),
			})
			return
		}

		claims, err := appCtx.JWTManager.ValidateAccessToken(token)
		if err != nil || claims.UserID != probe.String() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": fmt.Sprintf("validate failed: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func fullHealthHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		// Check search
		searchStatus := "disabled"
		if appCtx.Search.Enabled() {
			searchStatus = "ok"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"search":   searchStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

// ========================================
// METRICS HANDLERS
// ========================================

func registerMetricsRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/metrics", metricsHandler(c))
	router.GET("/metrics/prometheus", prometheusHandler(c))
	router.POST("/metrics/reset",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.AdminMiddleware(),
		metricsResetHandler(c),
	)
}

func metricsHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, appCtx.Metrics.Snapshot())
	}
}

func prometheusHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, appCtx.Metrics.PrometheusText())
	}
}

func metricsResetHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		appCtx.Metrics.Reset()
		c.JSON(http.StatusOK, gin.H{"status": "reset"})
	}
}
