package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
)

// UploadedFile describes a stored object, returned to the client so the
// descriptor can be attached to a complaint.
type UploadedFile struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// Uploader stores attachment files in S3-compatible object storage.
type Uploader interface {
	Upload(ctx context.Context, fileName, mimeType string, data []byte) (*UploadedFile, error)
}

type s3Uploader struct {
	client *s3.S3
	cfg    config.StorageConfig
	logger *zap.Logger
}

// NewS3Uploader builds an uploader from storage config. Returns nil when no
// bucket is configured so callers can treat uploads as unavailable.
func NewS3Uploader(cfg config.StorageConfig, logger *zap.Logger) (Uploader, error) {
	if cfg.Bucket == "" {
		logger.Warn("STORAGE_BUCKET not provided; attachment uploads disabled")
		return nil, nil
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("init s3 session: %w", err)
	}
	return &s3Uploader{client: s3.New(sess), cfg: cfg, logger: logger}, nil
}

func (u *s3Uploader) Upload(ctx context.Context, fileName, mimeType string, data []byte) (*UploadedFile, error) {
	key := objectKey(fileName)

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mimeType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload to s3: %w", err)
	}

	u.logger.Info("attachment uploaded", zap.String("key", key), zap.Int("bytes", len(data)))

	return &UploadedFile{
		FileName: fileName,
		FileURL:  u.publicURL(key),
		FileType: strings.TrimPrefix(path.Ext(fileName), "."),
		FileSize: int64(len(data)),
		MimeType: mimeType,
	}, nil
}

// objectKey namespaces uploads and avoids collisions between same-named files.
func objectKey(fileName string) string {
	return fmt.Sprintf("complaints/%s-%s", uuid.NewString(), path.Base(fileName))
}

func (u *s3Uploader) publicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(u.cfg.PublicBaseURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
