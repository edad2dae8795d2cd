package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func uniqueName(name string) string {
	return time.Now().UTC().Format("20060102150405") + "_" + name
}

// LocalImageStore writes uploads to a directory served under PublicPath.
type LocalImageStore struct {
	Dir        string
	PublicPath string
}

func NewLocalImageStore(dir, publicPath string) *LocalImageStore {
	return &LocalImageStore{Dir: dir, PublicPath: strings.TrimRight(publicPath, "/")}
}

func (s *LocalImageStore) Save(_ context.Context, name, _ string, body io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	filename := uniqueName(name)
	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return "", err
	}
	return s.PublicPath + "/" + filename, nil
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// S3Uploader is the subset of manager.Uploader used by S3ImageStore.
type S3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3ImageStore struct {
	Uploader  S3Uploader
	Bucket    string
	PublicURL string
}

func NewS3ImageStore(ctx context.Context, cfg S3Config) (*S3ImageStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3ImageStore{
		Uploader:  manager.NewUploader(client),
		Bucket:    cfg.Bucket,
		PublicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

func (s *S3ImageStore) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := "images/" + uniqueName(name)
	result, err := s.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	if s.PublicURL != "" {
		return s.PublicURL + "/" + key, nil
	}
	return result.Location, nil
}
