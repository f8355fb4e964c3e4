package object

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileGetter(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sn-satellite", "s2_2020_02")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tileInfo.json"), []byte(`{"path":"s2_2020_02"}`), 0644); err != nil {
		t.Fatal(err)
	}

	g := FileGetter{Root: root}
	content, err := g.Get(context.Background(), "sn-satellite", "s2_2020_02/tileInfo.json")
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != `{"path":"s2_2020_02"}` {
		t.Errorf("unexpected content %s", content)
	}

	_, err = g.Get(context.Background(), "sn-satellite", "s2_2020_02/missing.json")
	var notFound ErrObjectNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
	if notFound.Key != "s2_2020_02/missing.json" {
		t.Errorf("unexpected key %s", notFound.Key)
	}
}
