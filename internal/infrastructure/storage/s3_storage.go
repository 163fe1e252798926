// Package storage keeps generated documents (exports, contract PDFs) in an
// S3-compatible bucket and hands out presigned download links.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	infraconfig "github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultRegion     = "us-east-1"
	defaultLinkExpiry = 15 * time.Minute
)

var errNoKey = errors.New("storage key is required")

// Object is a generated document to store
type Object struct {
	Key         string // relative to the configured key prefix
	Data        []byte
	ContentType string
	Filename    string // offered to the browser on download
}

// S3Store talks to AWS S3 or any compatible server (MinIO, R2) through the
// v2 SDK. Keys handed back by Put already include the prefix.
type S3Store struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	prefix     string
	linkExpiry time.Duration
	logger     *zap.Logger
}

type S3Option func(*S3Store)

func WithLogger(logger *zap.Logger) S3Option {
	return func(s *S3Store) { s.logger = logger }
}

// WithLinkExpiry overrides how long presigned links stay valid
func WithLinkExpiry(d time.Duration) S3Option {
	return func(s *S3Store) { s.linkExpiry = d }
}

func NewS3Store(cfg *infraconfig.StorageConfig, opts ...S3Option) (*S3Store, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	endpoint, err := endpointURL(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3Store{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		prefix:     strings.Trim(cfg.KeyPrefix, "/"),
		linkExpiry: cfg.PresignExpiration,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.linkExpiry <= 0 {
		s.linkExpiry = defaultLinkExpiry
	}
	return s, nil
}

func checkConfig(cfg *infraconfig.StorageConfig) error {
	switch {
	case cfg == nil:
		return errors.New("storage configuration is required")
	case cfg.Bucket == "":
		return errors.New("storage bucket is required")
	case cfg.AccessKey == "":
		return errors.New("storage access key is required")
	case cfg.SecretKey == "":
		return errors.New("storage secret key is required")
	}
	return nil
}

// endpointURL adds the scheme a bare host:port lacks. Empty means AWS itself.
func endpointURL(endpoint string, useSSL bool) (string, error) {
	if endpoint == "" {
		return "", nil
	}
	if !strings.Contains(endpoint, "://") {
		scheme := "http://"
		if useSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	return endpoint, nil
}

func (s *S3Store) Bucket() string { return s.bucket }

// EnsureBucket creates the bucket on first start. Another instance winning
// the creation race is not an error.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &owned) {
		return fmt.Errorf("creating bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("export bucket created", zap.String("bucket", s.bucket))
	return nil
}

func (s *S3Store) fullKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// Put uploads obj and returns its full key
func (s *S3Store) Put(ctx context.Context, obj Object) (string, error) {
	if obj.Key == "" {
		return "", errNoKey
	}
	key := s.fullKey(obj.Key)

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Filename != "" {
		in.ContentDisposition = aws.String(attachment(obj.Filename))
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	s.logger.Debug("stored object", zap.String("key", key), zap.Int("size", len(obj.Data)))
	return key, nil
}

// DownloadURL presigns a GET for a key returned by Put. A non-empty filename
// overrides the download name.
func (s *S3Store) DownloadURL(ctx context.Context, key, filename string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errNoKey
	}
	in := &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}
	if filename != "" {
		in.ResponseContentDisposition = aws.String(attachment(filename))
	}

	req, err := s.presigner.PresignGetObject(ctx, in, s3.WithPresignExpires(s.linkExpiry))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presigning %s: %w", key, err)
	}
	return req.URL, time.Now().Add(s.linkExpiry), nil
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
