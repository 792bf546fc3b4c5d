// Package objectstore holds the blob stores uploaded files are written to.
package objectstore

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("object not found")

// Object is one blob to write. Key is the full path inside the store.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Metadata    map[string]string
	Body        io.Reader
}

type Blob interface {
	Put(ctx context.Context, obj Object) error
	Delete(ctx context.Context, key string) error
	// URL is the public address of key. It does not check that key exists.
	URL(key string) string
}
