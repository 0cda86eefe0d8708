package router

import (
	"ecom-insight/controllers/admin"
	"ecom-insight/controllers/health"
	"ecom-insight/middleware"
	"ecom-insight/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Init(r *gin.Engine) {
	r.Use(middleware.Cors())
	r.Use(monitoring.PrometheusMiddleware())

	r.GET("/healthz", health.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	analyticsGroup := r.Group("/analytics")
	{
		analyticsGroup.GET("/reports", admin.ListReports)
		analyticsGroup.GET("/reports/:name", admin.GetReport)
		analyticsGroup.GET("/runs", admin.ListRuns)
		analyticsGroup.POST("/runs", admin.RunReports)
		analyticsGroup.POST("/snapshot/refresh", admin.RefreshSnapshot)
	}
}
