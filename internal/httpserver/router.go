package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"taskboard/internal/handler"
	"taskboard/pkg/metrics"
)

func NewRouter(
	authHandler *handler.AuthHandler,
	scheduleHandler *handler.ScheduleHandler,
	queueHandler *handler.QueueHandler,
	jwtSecret string,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			latency,
		)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	api := r.Group("/")
	api.Use(AuthMiddleware(jwtSecret))
	{
		api.GET("/projects/:id/estimate", scheduleHandler.Estimate)
		api.POST("/projects/:id/tasks", scheduleHandler.CreateTask)
		api.GET("/projects/:id/lanes", scheduleHandler.Lanes)
		api.GET("/projects/:id/queue/issues", queueHandler.Issues)
		api.POST("/projects/:id/queue/repair", queueHandler.Repair)
	}

	return r
}
