package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Vovarama1992/content-calendar/internal/config"
	"github.com/Vovarama1992/content-calendar/internal/ports"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type s3Getter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3FixtureSource reads the seed document from s3://bucket/key.
type S3FixtureSource struct {
	client s3Getter
	bucket string
	key    string
}

func NewS3FixtureSource(client s3Getter, bucket, key string) *S3FixtureSource {
	return &S3FixtureSource{client: client, bucket: bucket, key: key}
}

func (s *S3FixtureSource) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, ports.ErrFixtureNotFound
		}
		return nil, fmt.Errorf("get fixture %s: %w", s.Location(), err)
	}
	return out.Body, nil
}

func (s *S3FixtureSource) Location() string {
	return "s3://" + s.bucket + "/" + s.key
}

func parseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse fixture location: %w", err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("fixture location %q: want s3://bucket/key", location)
	}
	return u.Host, key, nil
}

// NewS3Client builds a client for AWS or any S3-compatible endpoint.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// NewFixtureSource picks the S3 or file source from the location scheme.
func NewFixtureSource(ctx context.Context, location string, s3cfg config.S3Config) (ports.FixtureSource, error) {
	if !strings.HasPrefix(location, "s3://") {
		return NewFileFixtureSource(location), nil
	}

	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}
	client, err := NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, err
	}
	return NewS3FixtureSource(client, bucket, key), nil
}
