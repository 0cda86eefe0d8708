package health

import (
	"context"
	"net/http"
	"time"

	"ecom-insight/db"
	"ecom-insight/redis"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查，报告数据库与Redis状态
func HealthCheck(c *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().Format("2006-01-02 15:04:05"),
	}
	healthy := true

	// 数据库
	if db.Dao != nil {
		sqlDB, err := db.Dao.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			status["database"] = "down"
			healthy = false
		} else {
			status["database"] = "up"
		}
	} else {
		status["database"] = "not configured"
	}

	// Redis
	if client := redis.GetClient(); client != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			healthy = false
		} else {
			status["redis"] = "up"
		}
	} else {
		status["redis"] = "not configured"
	}

	if !healthy {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}
