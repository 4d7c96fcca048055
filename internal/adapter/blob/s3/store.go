// Package s3 implements blob.Store on an S3-compatible bucket (AWS S3, MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob"
)

// Config holds construction parameters.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, e.g. MinIO
	Prefix          string // optional key prefix inside the bucket
	PathStyle       bool
	AccessKeyID     string // optional, falls back to the default credential chain
	SecretAccessKey string
}

// Store keeps blobs as objects in a single bucket.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an S3 blob store from cfg.
func New(ctx context.Context, cfg Config, optFns ...func(*s3.Options)) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})

	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *Store) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// Put uploads data unless an object already exists under key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (blob.Info, error) {
	if info, err := s.Head(ctx, key); err == nil {
		return info, nil
	} else if !errors.Is(err, blob.ErrNotFound) {
		return blob.Info{}, err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return blob.Info{}, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return blob.Info{Key: key, Size: int64(len(data)), ContentType: contentType}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return nil, mapError(err, "get", key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Head(ctx context.Context, key string) (blob.Info, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return blob.Info{}, mapError(err, "head", key)
	}
	return blob.Info{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return mapError(err, "delete", key)
	}
	return nil
}

// mapError converts missing-object responses into blob.ErrNotFound.
func mapError(err error, op, key string) error {
	var (
		noSuchKey *types.NoSuchKey
		notFound  *types.NotFound
		respErr   *awshttp.ResponseError
	)
	switch {
	case errors.As(err, &noSuchKey), errors.As(err, &notFound):
		return fmt.Errorf("s3 %s %s: %w", op, key, blob.ErrNotFound)
	case errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound:
		return fmt.Errorf("s3 %s %s: %w", op, key, blob.ErrNotFound)
	}
	return fmt.Errorf("s3 %s %s: %w", op, key, err)
}
