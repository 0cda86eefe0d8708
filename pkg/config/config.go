package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// AppConfig 全局配置实例
var AppConfig *Config

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	MongoDB   MongoDBConfig   `yaml:"mongodb"`
	MQ        MQConfig        `yaml:"mq"`
	OSS       OSSConfig       `yaml:"oss"`
	Export    ExportConfig    `yaml:"export"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         string        `yaml:"port" env:"SERVER_PORT" default:"8801"`
	Mode         string        `yaml:"mode" env:"GIN_MODE" default:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" default:"mysql"`
	DSN             string        `yaml:"dsn" env:"MYSQL_DSN"`
	MaxIdleConns    int           `yaml:"max_idle_conns" default:"10"`
	MaxOpenConns    int           `yaml:"max_open_conns" default:"100"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"1h"`
	LogLevel        string        `yaml:"log_level" default:"info"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr         string        `yaml:"addr" env:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB           int           `yaml:"db" env:"REDIS_DB" default:"0"`
	PoolSize     int           `yaml:"pool_size" default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" default:"10m"`
}

// MongoDBConfig MongoDB配置，用于报表运行归档
type MongoDBConfig struct {
	URI        string `yaml:"uri" env:"MONGODB_URI"`
	Database   string `yaml:"database" default:"ecom_insight"`
	Collection string `yaml:"collection" default:"report_runs"`
}

// MQConfig 消息队列配置，用于报表完成事件
type MQConfig struct {
	URL   string `yaml:"url" env:"AMQP_URL"`
	Queue string `yaml:"queue" default:"report_events"`
}

// OSSConfig 对象存储配置，用于导出文件上传
type OSSConfig struct {
	Endpoint        string `yaml:"endpoint" env:"TOS_ENDPOINT"`
	Region          string `yaml:"region" env:"TOS_REGION"`
	AccessKeyID     string `yaml:"access_key_id" env:"TOS_ACCESS_KEY"`
	AccessKeySecret string `yaml:"access_key_secret" env:"TOS_SECRET_KEY"`
	BucketName      string `yaml:"bucket_name" env:"TOS_BUCKET"`
	Timeout         int    `yaml:"timeout" default:"30"`
}

// ExportConfig 报表导出配置
type ExportConfig struct {
	Dir    string `yaml:"dir" default:"reports"`
	Format string `yaml:"format" default:"json"` // json 或 csv
}

// AnalyticsConfig 分析参数配置
type AnalyticsConfig struct {
	TopCustomerCount int     `yaml:"top_customer_count" default:"10"`   // 收入集中度取前N名
	AtRiskDays       int     `yaml:"at_risk_days" default:"60"`         // 高价值流失风险天数
	RetentionUplift  float64 `yaml:"retention_uplift" default:"0.05"`   // 留存ROI预估提升率
	SpendSegmentLow  float64 `yaml:"spend_segment_low" default:"1000"`  // 首月消费低档上限
	SpendSegmentHigh float64 `yaml:"spend_segment_high" default:"3000"` // 首月消费高档下限
	BucketSize       float64 `yaml:"bucket_size" default:"500"`         // 订单金额分布桶宽
	Workers          int     `yaml:"workers" default:"8"`               // 报表并行计算协程数
}

// LogConfig 日志配置
type LogConfig struct {
	Dir string `yaml:"dir" default:"logs"`
}

// InitConfig 初始化配置
func InitConfig() error {
	// 加载环境变量
	if err := loadEnv(); err != nil {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	// 创建默认配置
	config := &Config{}
	setDefaults(config)

	// 尝试从配置文件加载
	if err := loadFromFile(config); err != nil {
		log.Printf("Warning: failed to load config file: %v", err)
	}

	// 从环境变量覆盖配置
	loadFromEnv(config)

	// 验证配置
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	AppConfig = config
	return nil
}

// GetConfig 获取全局配置，未初始化时返回默认配置
func GetConfig() *Config {
	if AppConfig == nil {
		config := &Config{}
		setDefaults(config)
		AppConfig = config
	}
	return AppConfig
}

// loadEnv 加载环境变量文件
func loadEnv() error {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFiles := []string{
		".env",
		fmt.Sprintf(".env.%s", env),
		".env.local",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				return err
			}
		}
	}

	return nil
}

// setDefaults 设置默认值
func setDefaults(config *Config) {
	config.Server.Port = "8801"
	config.Server.Mode = "debug"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second

	config.Database.Driver = "mysql"
	config.Database.MaxIdleConns = 10
	config.Database.MaxOpenConns = 100
	config.Database.ConnMaxLifetime = time.Hour
	config.Database.LogLevel = "info"

	config.Redis.Addr = "localhost:6379"
	config.Redis.DB = 0
	config.Redis.PoolSize = 10
	config.Redis.DialTimeout = 5 * time.Second
	config.Redis.ReadTimeout = 3 * time.Second
	config.Redis.WriteTimeout = 3 * time.Second
	config.Redis.CacheTTL = 10 * time.Minute

	config.MongoDB.Database = "ecom_insight"
	config.MongoDB.Collection = "report_runs"

	config.MQ.Queue = "report_events"

	config.OSS.Timeout = 30

	config.Export.Dir = "reports"
	config.Export.Format = "json"

	config.Analytics.TopCustomerCount = 10
	config.Analytics.AtRiskDays = 60
	config.Analytics.RetentionUplift = 0.05
	config.Analytics.SpendSegmentLow = 1000
	config.Analytics.SpendSegmentHigh = 3000
	config.Analytics.BucketSize = 500
	config.Analytics.Workers = 8

	config.Log.Dir = "logs"
}

// loadFromFile 从配置文件加载
func loadFromFile(config *Config) error {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

// loadFromEnv 从环境变量加载
func loadFromEnv(config *Config) {
	// Server配置
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	// Database配置 - 兼容旧的环境变量名
	if dsn := os.Getenv("Mysql"); dsn != "" {
		config.Database.DSN = dsn
	}
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		config.Database.DSN = dsn
	}

	// Redis配置
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			config.Redis.DB = n
		}
	}

	// MongoDB配置
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		config.MongoDB.URI = uri
	}

	// MQ配置
	if url := os.Getenv("AMQP_URL"); url != "" {
		config.MQ.URL = url
	}

	// OSS配置
	if endpoint := os.Getenv("TOS_ENDPOINT"); endpoint != "" {
		config.OSS.Endpoint = endpoint
	}
	if region := os.Getenv("TOS_REGION"); region != "" {
		config.OSS.Region = region
	}
	if key := os.Getenv("TOS_ACCESS_KEY"); key != "" {
		config.OSS.AccessKeyID = key
	}
	if secret := os.Getenv("TOS_SECRET_KEY"); secret != "" {
		config.OSS.AccessKeySecret = secret
	}
	if bucket := os.Getenv("TOS_BUCKET"); bucket != "" {
		config.OSS.BucketName = bucket
	}

	// Export配置
	if dir := os.Getenv("EXPORT_DIR"); dir != "" {
		config.Export.Dir = dir
	}
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	if config.Analytics.TopCustomerCount <= 0 {
		return fmt.Errorf("analytics.top_customer_count 必须为正数")
	}
	if config.Analytics.AtRiskDays <= 0 {
		return fmt.Errorf("analytics.at_risk_days 必须为正数")
	}
	if config.Analytics.RetentionUplift < 0 || config.Analytics.RetentionUplift > 1 {
		return fmt.Errorf("analytics.retention_uplift 必须在 0 和 1 之间")
	}
	if config.Analytics.SpendSegmentLow >= config.Analytics.SpendSegmentHigh {
		return fmt.Errorf("analytics.spend_segment_low 必须小于 spend_segment_high")
	}
	if config.Analytics.Workers <= 0 {
		config.Analytics.Workers = 8
	}
	if config.Export.Format != "json" && config.Export.Format != "csv" {
		return fmt.Errorf("export.format 仅支持 json 或 csv")
	}
	return nil
}
