package minio

import (
	"Inkstone/internal/api/config"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// Storage 面向媒体库的对象存储适配器，实现 service.ObjectStorage
type Storage struct{}

func NewStorage() *Storage {
	return &Storage{}
}

// Put 上传对象
func (s *Storage) Put(ctx context.Context, objectKey string, data []byte, contentType string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.PutObject(ctx, MediaBucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Get 读取整个对象
func (s *Storage) Get(ctx context.Context, objectKey string) ([]byte, error) {
	if Client == nil {
		return nil, fmt.Errorf("minio client is not initialized")
	}

	obj, err := Client.GetObject(ctx, MediaBucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// Delete 删除对象
func (s *Storage) Delete(ctx context.Context, objectKey string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MediaBucket, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL 获取对象的公共访问URL
func (s *Storage) PublicURL(objectKey string) string {
	cfg := config.Cfg.MinIO

	endpoint := cfg.ExternalEndpoint
	protocol := "https"
	if endpoint == "" {
		endpoint = cfg.InternalEndpoint
		if !cfg.InternalUseSSL {
			protocol = "http"
		}
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, MediaBucket, objectKey)
}
