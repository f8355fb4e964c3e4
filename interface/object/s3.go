package object

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/auxgeo/sentinel-tiler/service"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const defaultS3Region = "us-west-2"

// S3Getter implements Getter for AWS S3 buckets
type S3Getter struct {
	client       *s3.Client
	requestPayer bool
}

// S3Option configures the S3Getter
type S3Option func(*s3Options)

type s3Options struct {
	region          string
	accessKeyID     string
	secretAccessKey string
	requestPayer    bool
}

// WithRegion sets the bucket region
func WithRegion(region string) S3Option {
	return func(o *s3Options) { o.region = region }
}

// WithStaticCredentials sets explicit credentials instead of the ambient ones
func WithStaticCredentials(accessKeyID, secretAccessKey string) S3Option {
	return func(o *s3Options) {
		o.accessKeyID = accessKeyID
		o.secretAccessKey = secretAccessKey
	}
}

// WithRequestPayer acknowledges the transfer costs of requester-pays buckets
func WithRequestPayer(requestPayer bool) S3Option {
	return func(o *s3Options) { o.requestPayer = requestPayer }
}

// NewS3Getter creates a new Getter from an AWS S3 bucket
func NewS3Getter(ctx context.Context, options ...S3Option) (*S3Getter, error) {
	opts := s3Options{region: defaultS3Region}
	for _, o := range options {
		o(&opts)
	}

	loadOptions := []func(*config.LoadOptions) error{config.WithRegion(opts.region)}
	if opts.accessKeyID != "" {
		loadOptions = append(loadOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.accessKeyID, opts.secretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("NewS3Getter.LoadDefaultConfig: %w", err)
	}

	return &S3Getter{client: s3.NewFromConfig(cfg), requestPayer: opts.requestPayer}, nil
}

// Name implements Getter
func (g *S3Getter) Name() string {
	return "S3"
}

// Get implements Getter
func (g *S3Getter) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if g.requestPayer {
		input.RequestPayer = types.RequestPayerRequester
	}

	output, err := g.client.GetObject(ctx, input)
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrObjectNotFound{bucket, key}
		}
		return nil, service.MakeTemporary(fmt.Errorf("S3Getter.GetObject %s/%s: %w", bucket, key, err))
	}
	defer output.Body.Close()

	content, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, service.MakeTemporary(fmt.Errorf("S3Getter.ReadAll %s/%s: %w", bucket, key, err))
	}
	return content, nil
}
