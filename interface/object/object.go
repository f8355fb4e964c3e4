package object

import (
	"context"
	"fmt"
)

// Getter is the interface of a read-only object storage service
type Getter interface {
	// Get downloads the object and returns its content
	// Raise ErrObjectNotFound
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Name of the storage service
	Name() string
}

// ErrObjectNotFound is an error returned by Getter.Get
type ErrObjectNotFound struct {
	Bucket string
	Key    string
}

func (e ErrObjectNotFound) Error() string {
	return fmt.Sprintf("object not found: %s/%s", e.Bucket, e.Key)
}
