package report_service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunArchive 报表运行记录归档，落在MongoDB
type RunArchive struct {
	collection *mongo.Collection
}

// NewRunArchive 创建归档器，collection 为 nil 时返回 nil（归档关闭）
func NewRunArchive(collection *mongo.Collection) *RunArchive {
	if collection == nil {
		return nil
	}
	return &RunArchive{collection: collection}
}

// Save 写入一次运行记录
func (a *RunArchive) Save(ctx context.Context, record *RunRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := a.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("写入运行记录失败: %w", err)
	}
	return nil
}

// Recent 查询最近N次运行记录，按开始时间降序
func (a *RunArchive) Recent(ctx context.Context, limit int64) ([]RunRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetLimit(limit)
	cursor, err := a.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("查询运行记录失败: %w", err)
	}
	defer cursor.Close(ctx)

	var records []RunRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("解析运行记录失败: %w", err)
	}
	return records, nil
}
