package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/config"

	"github.com/jdu211171/schedule-website-sub007/internal/api/handler"
	"github.com/jdu211171/schedule-website-sub007/internal/api/middleware"
)

// New assembles the Gin engine with all routes and middleware.
func New(cfg *config.Config, h *handler.Handler, log *zap.Logger) *gin.Engine {
	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		series := v1.Group("/class-series")
		{
			series.POST("", h.ClassSeries.Create)
			series.GET("", h.ClassSeries.List)
			series.GET("/:id", h.ClassSeries.Get)
			series.PUT("/:id", h.ClassSeries.Update)
			series.PUT("/:id/status", h.ClassSeries.UpdateStatus)
			series.PUT("/:id/policy", h.ClassSeries.UpdatePolicy)
			series.POST("/:id/generate", h.ClassSeries.Generate)
		}

		sessions := v1.Group("/class-sessions")
		{
			sessions.GET("", h.ClassSession.List)
			sessions.POST("/confirm", h.ClassSession.Confirm)
			sessions.GET("/:id", h.ClassSession.Get)
			sessions.PUT("/:id", h.ClassSession.Update)
			sessions.POST("/:id/cancel", h.ClassSession.Cancel)
			sessions.POST("/:id/reactivate", h.ClassSession.Reactivate)
		}

		schedConfig := v1.Group("/scheduling-config")
		{
			schedConfig.GET("/effective", h.SchedulingConfig.GetEffective)
			schedConfig.PUT("/branch/:id", h.SchedulingConfig.UpdateBranchPolicy)
		}

		availability := v1.Group("/availability")
		{
			availability.GET("", h.Availability.List)
			availability.PUT("", h.Availability.Replace)
			availability.POST("/import-ics", h.Availability.ImportICS)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.POST("/:id/read", h.Notification.MarkRead)
		}

		cron := v1.Group("/cron", middleware.CronAuth(cfg.Cron.Secret))
		{
			cron.POST("/generate", h.Generation.Trigger)
		}
	}

	return r
}
