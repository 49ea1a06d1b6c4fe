package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of the S3 client used by [S3Storage].
type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage keeps objects in an S3-compatible service, one bucket per
// asset class.
type S3Storage struct {
	client        s3API
	region        string
	publicBaseURL string
	logger        *logger.Logger
}

// NewS3Storage builds an S3 client from cfg. Static credentials are used
// when both keys are set, the default AWS chain otherwise. SDK retries are
// disabled: the upload service owns the retry policy.
func NewS3Storage(ctx context.Context, cfg config.Objects, log *logger.Logger) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3Storage").Msg("failed to load AWS config")
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = defaultS3BaseURL(cfg)
	}

	log.Info().Str("func", "NewS3Storage").Str("public_base_url", base).Msg("s3 object storage configured")

	return &S3Storage{
		client:        client,
		region:        cfg.Region,
		publicBaseURL: base,
		logger:        log,
	}, nil
}

// defaultS3BaseURL returns the path-style URL base of the endpoint.
func defaultS3BaseURL(cfg config.Objects) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
}

func (s *S3Storage) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	// HeadBucket has no body, a missing bucket surfaces as NotFound.
	var notFound *types.NotFound
	if !errors.As(err, &notFound) && ClassifyObjectError(err) != KindNotFound {
		return newObjectError("head bucket", bucket, "", err)
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.client.CreateBucket(ctx, in); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return newObjectError("create bucket", bucket, "", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*S3Storage.EnsureBucket").Str("bucket", bucket).Msg("bucket created")
	return nil
}

func (s *S3Storage) Put(ctx context.Context, bucket, key, contentType string, size int64, body io.Reader) error {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return newObjectError("put", bucket, key, err)
	}
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return newObjectError("delete", bucket, key, err)
	}
	return nil
}

func (s *S3Storage) PublicURL(bucket, key string) string {
	return objectURL(s.publicBaseURL, bucket, key)
}

func (s *S3Storage) KeyFromURL(url string) (string, string, bool) {
	return splitObjectURL(s.publicBaseURL, url)
}
