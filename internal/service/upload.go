package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/huddleup-labs/huddleup-api/internal/config"
)

// UploadService stores user-supplied and generated images in an S3 bucket.
type UploadService struct {
	conf   *config.StorageConfig
	client *s3.Client
}

func NewUploadService(ctx context.Context, conf *config.StorageConfig) (*UploadService, error) {
	awsConf, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("awsconfig.LoadDefaultConfig -> %w", err)
	}

	return &UploadService{
		conf:   conf,
		client: s3.NewFromConfig(awsConf),
	}, nil
}

// Upload writes the object and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.conf.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s.client.PutObject -> %w", err)
	}

	return s.PublicURL(key), nil
}

func (s *UploadService) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.conf.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s.client.DeleteObject -> %w", err)
	}

	return nil
}

func (s *UploadService) PublicURL(key string) string {
	return strings.TrimSuffix(s.conf.PublicBaseURL, "/") + "/" + key
}
