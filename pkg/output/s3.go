package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// DefaultUploadTimeout bounds a single frame upload
const DefaultUploadTimeout = 30 * time.Second

// S3Config holds the connection settings of an S3 compatible store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty uses the AWS endpoint for Region
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders/run-1"
}

// S3Sink uploads frames as PNG objects
type S3Sink struct {
	Client  s3iface.S3API
	Bucket  string
	Prefix  string
	Timeout time.Duration
	Logger  core.Logger
}

// NewS3Session creates an AWS session for cfg with path-style addressing so
// S3 compatible stores work without DNS bucket names
func NewS3Session(cfg S3Config) (*session.Session, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return sess, nil
}

// NewS3Sink connects to the store described by cfg
func NewS3Sink(cfg S3Config, logger core.Logger) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	sess, err := NewS3Session(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Sink{
		Client:  s3.New(sess),
		Bucket:  cfg.Bucket,
		Prefix:  cfg.Prefix,
		Timeout: DefaultUploadTimeout,
		Logger:  logger,
	}, nil
}

// Key returns the object key used for name
func (s *S3Sink) Key(name string) string {
	if s.Prefix == "" {
		return name
	}
	return path.Join(s.Prefix, name)
}

// WriteFrame encodes img and uploads it under Key(name)
func (s *S3Sink) WriteFrame(ctx context.Context, name string, img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	key := s.Key(name)
	size := int64(len(data))
	_, err = s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if s.Logger != nil {
		s.Logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, size)
	}
	return nil
}
