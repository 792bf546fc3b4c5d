package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
)

type GCS struct {
	client *gcs.Client
	bucket string
}

// NewGCS uses application default credentials.
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("objectstore: gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Put(ctx context.Context, obj Object) error {
	w := g.client.Bucket(g.bucket).Object(obj.Key).NewWriter(ctx)
	w.ContentType = obj.ContentType
	w.Metadata = obj.Metadata

	if _, err := io.Copy(w, obj.Body); err != nil {
		w.Close()
		return fmt.Errorf("objectstore: write %s/%s: %w", g.bucket, obj.Key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("objectstore: close %s/%s: %w", g.bucket, obj.Key, err)
	}
	return nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("objectstore: delete %s/%s: %w", g.bucket, key, err)
	}
	return nil
}

func (g *GCS) URL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, strings.TrimLeft(key, "/"))
}

func (g *GCS) Close() error {
	return g.client.Close()
}
