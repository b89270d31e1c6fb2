package dao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pagegrid/pagegrid/internal/model1"
)

// ObjectGetter reads s3 objects.
type ObjectGetter interface {
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ParseS3URL splits s3://bucket/key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 url %q: %w", raw, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 url %q: expected s3://bucket/key", raw)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("invalid s3 url %q: missing object key", raw)
	}

	return u.Host, key, nil
}

// NewS3Client builds an s3 client from the shared aws configuration.
func NewS3Client(ctx context.Context, profile, region string) (*s3.Client, error) {
	opts := make([]func(*awsconfig.LoadOptions) error, 0, 2)
	if profile != "" {
		if err := CheckProfile(profile); err != nil {
			return nil, err
		}
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg), nil
}

// NewS3Source returns a source over a json, yaml or csv object stored in s3.
func NewS3Source(spec SourceSpec, client ObjectGetter) (*Records, error) {
	bucket, key, err := ParseS3URL(spec.URL)
	if err != nil {
		return nil, err
	}
	f, err := FormatFor(key)
	if err != nil {
		return nil, err
	}

	return NewRecords(spec.URL, spec, func(ctx context.Context) (model1.Rows, error) {
		out, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, WrapS3Error(err, "get object "+spec.URL)
		}
		defer out.Body.Close()

		raw, err := io.ReadAll(out.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read object data: %w", err)
		}
		rows, err := Decode(f, raw, spec)
		if err != nil {
			return nil, err
		}
		slog.Debug("Object loaded", slog.String("bucket", bucket), slog.String("key", key), slog.Int("rows", len(rows)))

		return rows, nil
	}), nil
}

// WrapS3Error wraps aws api errors with additional context.
func WrapS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException":
			return fmt.Errorf("access denied for %s: %w", operation, err)
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("%s: object not found: %w", operation, err)
		case "ExpiredToken", "ExpiredTokenException":
			return fmt.Errorf("%s: aws credentials have expired: %w", operation, err)
		default:
			return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
