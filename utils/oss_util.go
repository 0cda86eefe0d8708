package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/volcengine/ve-tos-golang-sdk/v2/tos"
)

// 允许上传的报表导出文件类型
var AllowedExportTypes = map[string]bool{
	".json": true,
	".csv":  true,
	".svg":  true,
}

// OSSConfig 存储OSS配置信息
type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	Timeout         int // 超时时间(秒)
	Region          string
}

// OSSUtil OSS工具类
type OSSUtil struct {
	config OSSConfig
	client *tos.ClientV2
}

// NewOSSUtil 创建OSS工具实例
func NewOSSUtil(config OSSConfig) (*OSSUtil, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" || config.BucketName == "" {
		return nil, errors.New("TOS配置参数不完整")
	}

	// 默认超时时间为30秒
	if config.Timeout <= 0 {
		config.Timeout = 30
	}

	credential := tos.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret)

	tosClient, err := tos.NewClientV2(config.Endpoint,
		tos.WithCredentials(credential),
		tos.WithRegion(config.Region))
	if err != nil {
		return nil, fmt.Errorf("初始化TOS客户端失败: %w", err)
	}

	return &OSSUtil{
		config: config,
		client: tosClient,
	}, nil
}

// Close 关闭客户端并释放资源
func (u *OSSUtil) Close() {
	if u.client != nil {
		u.client.Close()
	}
}

// UploadReportFile 上传本地报表导出文件到指定目录，返回对象名
func (u *OSSUtil) UploadReportFile(localPath, directory string) (string, error) {
	ext := strings.ToLower(filepath.Ext(localPath))
	if !AllowedExportTypes[ext] {
		return "", errors.New("不支持的导出文件类型")
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("打开文件失败: %w", err)
	}
	defer src.Close()

	// 确保目录格式正确
	directory = strings.Trim(directory, "/")
	if directory != "" {
		directory += "/"
	}
	objectName := directory + filepath.Base(localPath)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(u.config.Timeout)*time.Second)
	defer cancel()

	_, err = u.client.PutObjectV2(ctx, &tos.PutObjectV2Input{
		PutObjectBasicInput: tos.PutObjectBasicInput{
			Bucket: u.config.BucketName,
			Key:    objectName,
		},
		Content: src,
	})
	if err != nil {
		return "", fmt.Errorf("上传文件失败: %w", err)
	}

	return objectName, nil
}
