package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	storefront_errors "storefront-events/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string
}

// ObjectInfo is what HeadObject reports about a stored image.
type ObjectInfo struct {
	Key         string
	ContentType string
	Size        int64
	ETag        string
}

type headObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type Client struct {
	cfg S3Config
	s3  headObjectAPI
}

func NewClient(ctx context.Context, cfg S3Config) (*Client, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 region and bucket are required", storefront_errors.ErrNotConfigured)
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if parsed, err := url.Parse(endpoint); err == nil {
				endpoint = parsed.String()
			}
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{cfg: cfg, s3: s3Client}, nil
}

// KeyFromURL resolves the object key an image URL points at. URLs under the
// configured public base map to the remainder; anything else uses the URL path.
func (c *Client) KeyFromURL(imageURL string) (string, error) {
	if imageURL == "" {
		return "", errors.New("image url is required")
	}
	if base := c.cfg.PublicBase; base != "" && strings.HasPrefix(imageURL, base+"/") {
		return strings.TrimPrefix(imageURL, base+"/"), nil
	}
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	// path-style URLs carry the bucket as the first segment
	key = strings.TrimPrefix(key, c.cfg.Bucket+"/")
	if key == "" {
		return "", fmt.Errorf("image url %q has no object key", imageURL)
	}
	return key, nil
}

func (c *Client) HeadImage(ctx context.Context, imageURL string) (ObjectInfo, error) {
	if c == nil {
		return ObjectInfo{}, errors.New("s3 client not initialized")
	}
	key, err := c.KeyFromURL(imageURL)
	if err != nil {
		return ObjectInfo{}, err
	}
	out, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("head object %s: %w", key, err)
	}
	return ObjectInfo{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
		ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
	}, nil
}
