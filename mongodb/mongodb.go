package mongodb

import (
	"context"
	"log"
	"time"

	"ecom-insight/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

// InitMongoDB 初始化 MongoDB 连接，未配置 URI 时跳过
func InitMongoDB() {
	cfg := config.GetConfig()
	if cfg.MongoDB.URI == "" {
		log.Println("MongoDB未配置，跳过报表归档初始化")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := c.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	client = c
	log.Printf("MongoDB连接已初始化: %s", cfg.MongoDB.Database)
}

// GetRunCollection 获取报表运行归档集合，未初始化时返回 nil
func GetRunCollection() *mongo.Collection {
	if client == nil {
		return nil
	}
	cfg := config.GetConfig()
	return client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
}

// Close 断开 MongoDB 连接
func Close() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB断开连接失败: %v", err)
	}
}
