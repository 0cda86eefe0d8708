package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ecom-insight/controllers/admin"
	"ecom-insight/db"
	"ecom-insight/middleware"
	"ecom-insight/mongodb"
	"ecom-insight/pkg/cache"
	"ecom-insight/pkg/config"
	"ecom-insight/redis"
	"ecom-insight/router"
	"ecom-insight/services/ingest_service"
	"ecom-insight/services/report_service"
	"ecom-insight/utils"

	"github.com/gin-gonic/gin"
)

// 构建时注入的变量
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// 初始化配置
	if err := config.InitConfig(); err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}
	cfg := config.GetConfig()

	gin.SetMode(cfg.Server.Mode)

	// 数据来源：mysql 或 fixture（种子可注入，便于演示与联调）
	var source ingest_service.Source
	switch getEnv("DATA_SOURCE", "mysql") {
	case "fixture":
		seed := int64(42)
		if s := os.Getenv("FIXTURE_SEED"); s != "" {
			if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
				seed = parsed
			}
		}
		log.Printf("使用合成数据来源, seed=%d", seed)
		source = ingest_service.NewFixtureSource(ingest_service.DefaultFixtureOptions(seed))
	default:
		db.Init()
		source = ingest_service.NewGormSource(db.Dao)
	}

	// Redis 报表缓存（可选）
	var reportCache *cache.ReportCache
	if err := redis.InitRedis(cfg.Redis); err != nil {
		log.Printf("Redis不可用，报表缓存退化为本地缓存: %v", err)
		reportCache = cache.NewReportCache(nil, cfg.Redis.CacheTTL)
	} else {
		reportCache = cache.NewReportCache(redis.GetClient(), cfg.Redis.CacheTTL)
	}

	// MongoDB 报表运行归档（可选）
	mongodb.InitMongoDB()
	archive := report_service.NewRunArchive(mongodb.GetRunCollection())

	// AMQP 报表完成事件（可选）
	var publisher *report_service.EventPublisher
	if cfg.MQ.URL != "" {
		p, err := report_service.NewEventPublisher(cfg.MQ.URL, cfg.MQ.Queue)
		if err != nil {
			log.Printf("AMQP不可用，报表完成事件关闭: %v", err)
		} else {
			publisher = p
			defer publisher.Close()
		}
	}

	// 对象存储上传（可选）
	var ossUtil *utils.OSSUtil
	if cfg.OSS.Endpoint != "" {
		o, err := utils.NewOSSUtil(utils.OSSConfig{
			Endpoint:        cfg.OSS.Endpoint,
			Region:          cfg.OSS.Region,
			AccessKeyID:     cfg.OSS.AccessKeyID,
			AccessKeySecret: cfg.OSS.AccessKeySecret,
			BucketName:      cfg.OSS.BucketName,
			Timeout:         cfg.OSS.Timeout,
		})
		if err != nil {
			log.Printf("对象存储不可用，导出上传关闭: %v", err)
		} else {
			ossUtil = o
			defer ossUtil.Close()
		}
	}

	runner := report_service.NewRunner(cfg.Analytics.Workers, reportCache, archive, publisher)

	// 摄入快照并完成聚合，完整性错误直接中止启动
	if err := admin.InitAnalytics(source, runner, ossUtil); err != nil {
		log.Fatalf("分析引擎初始化失败: %v", err)
	}

	// 组装HTTP服务
	r := gin.New()
	r.Use(middleware.RequestLogger(cfg.Log.Dir))
	r.Use(middleware.Recovery())
	router.Init(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("ecom-insight %s (%s, %s) listening on :%s", Version, GitCommit, BuildTime, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP服务启动失败: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("服务关闭超时: %v", err)
	}

	mongodb.Close()
	if err := redis.Close(); err != nil {
		log.Printf("Redis关闭失败: %v", err)
	}
	log.Println("服务已退出")
}
