package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectUploader is the capability the upload path needs from object
// storage: stream a file in, get a durable URL back.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// S3Storage implements ObjectUploader on AWS S3.
type S3Storage struct {
	config        aws.Config
	bucket        string
	keyPrefix     string
	publicBaseURL string
}

func NewS3Storage() (*S3Storage, error) {
	if config.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET must not be empty")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.TODO(),
		awsconfig.WithRegion(config.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.AWSAccessKeyID, config.AWSSecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return &S3Storage{
		config:        awsCfg,
		bucket:        config.S3Bucket,
		keyPrefix:     config.S3KeyPrefix,
		publicBaseURL: config.S3PublicBaseURL,
	}, nil
}

// Upload puts the object and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	client := s3.NewFromConfig(s.config)

	fullKey := s.keyPrefix + key
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file, %v", err)
	}

	if s.publicBaseURL != "" {
		return strings.TrimRight(s.publicBaseURL, "/") + "/" + fullKey, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.config.Region, fullKey), nil
}

// ResourceType tags an uploaded file by its content type.
func ResourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}
