package object

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileGetter implements Getter for a local directory laid out as <root>/<bucket>/<key>.
// Mainly useful for development and tests.
type FileGetter struct {
	Root string
}

// Name implements Getter
func (g *FileGetter) Name() string {
	return "File"
}

// Get implements Getter
func (g *FileGetter) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(g.Root, bucket, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound{bucket, key}
		}
		return nil, fmt.Errorf("FileGetter.ReadFile: %w", err)
	}
	return content, nil
}
