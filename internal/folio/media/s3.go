package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/folio/internal/folio/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Config describes the bucket images are stored in. Endpoint and
// UsePathStyle are only needed for S3-compatible services such as MinIO.
type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	PublicURL    string // base URL objects are served from; derived when empty
	UsePathStyle bool
}

// s3API is the part of *s3.Client the backend uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Backend struct {
	client  s3API
	bucket  string
	baseURL string
}

var _ Backend = (*S3Backend)(nil)

func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3Backend(client, cfg), nil
}

func newS3Backend(client s3API, cfg S3Config) *S3Backend {
	return &S3Backend{client: client, bucket: cfg.Bucket, baseURL: publicBaseURL(cfg)}
}

func publicBaseURL(cfg S3Config) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (b *S3Backend) Store(ctx context.Context, folder string, up Upload) (domain.ImageRef, error) {
	key := ObjectKey(folder, up)
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(up.Data),
		ContentLength: aws.Int64(int64(len(up.Data))),
		ContentType:   aws.String(up.ContentType),
	})
	if err != nil {
		return domain.ImageRef{}, err
	}
	return domain.RemoteImage(b.objectURL(key), key), nil
}

func (b *S3Backend) Delete(ctx context.Context, ref domain.ImageRef) error {
	if ref.Kind != domain.ImageRemote || ref.ProviderID == "" {
		return fmt.Errorf("s3 backend cannot delete %s image", ref.Kind)
	}

	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(ref.ProviderID),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "NoSuchKey", "NotFound":
				return fmt.Errorf("%w: %s", ErrNotExist, ref.ProviderID)
			}
		}
		return err
	}
	return nil
}

func (b *S3Backend) URL(ref domain.ImageRef) string {
	if ref.URL != "" {
		return ref.URL
	}
	return b.objectURL(ref.ProviderID)
}

func (b *S3Backend) objectURL(key string) string {
	return b.baseURL + "/" + (&url.URL{Path: key}).EscapedPath()
}
