package file

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/spf13/afero"
)

// S3Client defines the S3 operations used by S3Mirror.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config contains configuration for the S3 mirror.
type S3Config struct {
	Bucket      string `env:"UPLOAD_S3_BUCKET"`
	Region      string `env:"UPLOAD_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID string `env:"UPLOAD_S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"UPLOAD_S3_SECRET_KEY"`
	// Endpoint is set for S3-compatible services.
	Endpoint string `env:"UPLOAD_S3_ENDPOINT"`
	// BaseURL is the public URL base for serving files.
	BaseURL string `env:"UPLOAD_S3_BASE_URL"`
	// KeyPrefix is prepended to every object key.
	KeyPrefix string `env:"UPLOAD_S3_KEY_PREFIX"`
	// ForcePathStyle is needed by MinIO and similar services.
	ForcePathStyle bool `env:"UPLOAD_S3_FORCE_PATH_STYLE"`
	// Timeout bounds every upload; zero leaves only the caller's deadline.
	Timeout time.Duration `env:"UPLOAD_S3_TIMEOUT" envDefault:"30s"`
}

// Object describes a file copied to S3.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
}

// S3Option configures S3Mirror.
type S3Option func(*s3Options)

type s3Options struct {
	s3Client      S3Client
	uploadTimeout time.Duration
}

// WithS3Client sets a pre-configured S3 client.
// Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithS3UploadTimeout bounds every PutObject call.
// If not set, only the caller's context deadline applies.
func WithS3UploadTimeout(timeout time.Duration) S3Option {
	return func(o *s3Options) {
		o.uploadTimeout = timeout
	}
}

// S3Mirror copies placed files to an S3 bucket, keeping their relative path
// as the object key. It is safe for concurrent use.
type S3Mirror struct {
	client        S3Client
	bucket        string
	baseURL       string
	keyPrefix     string
	uploadTimeout time.Duration
}

// NewS3Mirror creates a mirror for cfg.Bucket.
// Credentials fall back to the default AWS chain when not set in cfg.
func NewS3Mirror(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Mirror, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &S3Mirror{
		client:        client,
		bucket:        cfg.Bucket,
		baseURL:       baseURL,
		keyPrefix:     strings.Trim(cfg.KeyPrefix, "/"),
		uploadTimeout: options.uploadTimeout,
	}, nil
}

// Key maps a local path to its object key: slashes normalized, leading
// "./" and "/" dropped, key prefix prepended.
func (m *S3Mirror) Key(localPath string) string {
	key := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(localPath)), "/")
	if m.keyPrefix != "" {
		key = m.keyPrefix + "/" + key
	}
	return key
}

// Replicate uploads the file at localPath under Key(localPath).
func (m *S3Mirror) Replicate(ctx context.Context, fs afero.Fs, localPath string) error {
	_, err := m.Put(ctx, fs, localPath, m.Key(localPath))
	return err
}

// Put uploads the file at localPath under key.
// Content type is sniffed from the file, not taken from the client.
func (m *S3Mirror) Put(ctx context.Context, fs afero.Fs, localPath, key string) (*Object, error) {
	if m.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.uploadTimeout)
		defer cancel()
	}

	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}

	contentType, err := DetectMIME(fs, localPath)
	if err != nil {
		contentType = MIMEOctetStream
	}

	src, err := open(fs, localPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, classifyS3Error(err, "upload file")
	}

	return &Object{
		Key:         key,
		Size:        info.Size(),
		ContentType: contentType,
		URL:         m.URL(key),
	}, nil
}

// URL returns the public URL for an object key.
func (m *S3Mirror) URL(key string) string {
	return m.baseURL + strings.TrimPrefix(key, "/")
}

// classifyS3Error converts S3 errors to package errors.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, err)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "RequestTimeout":
			return fmt.Errorf("%w: %s operation", ErrRequestTimeout, operation)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
		case "NoSuchKey":
			return fmt.Errorf("%w: %s", ErrFileNotFound, err)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}
