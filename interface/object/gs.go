package object

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/auxgeo/sentinel-tiler/service"
)

// GSGetter implements Getter for Google Storage buckets (e.g. the Sentinel-2 mirror gcp-public-data-sentinel-2)
type GSGetter struct {
	client *storage.Client
}

// NewGSGetter creates a new Getter from a Google Storage bucket
func NewGSGetter(ctx context.Context) (*GSGetter, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewGSGetter.NewClient: %w", err)
	}
	return &GSGetter{client: client}, nil
}

// Name implements Getter
func (g *GSGetter) Name() string {
	return "GoogleStorage"
}

// Get implements Getter
func (g *GSGetter) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	reader, err := g.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrObjectNotFound{bucket, key}
		}
		return nil, service.MakeTemporary(fmt.Errorf("GSGetter.NewReader %s/%s: %w", bucket, key, err))
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, service.MakeTemporary(fmt.Errorf("GSGetter.ReadAll %s/%s: %w", bucket, key, err))
	}
	return content, nil
}
