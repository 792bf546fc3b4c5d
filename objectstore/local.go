package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local keeps blobs on disk under root. The HTTP layer serves root so that
// URL(key) resolves.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) *Local {
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *Local) Put(ctx context.Context, obj Object) error {
	path, err := l.path(obj.Key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("objectstore: create directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("objectstore: create %s: %w", obj.Key, err)
	}
	if _, err := io.Copy(dst, obj.Body); err != nil {
		dst.Close()
		os.Remove(path)
		return fmt.Errorf("objectstore: write %s: %w", obj.Key, err)
	}
	return dst.Close()
}

func (l *Local) Delete(ctx context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("objectstore: delete %s: %w", key, err)
	}
	return nil
}

func (l *Local) URL(key string) string {
	return l.baseURL + "/" + strings.TrimLeft(key, "/")
}

// path maps key under root and refuses keys that would escape it.
func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("objectstore: empty key")
	}
	return filepath.Join(l.root, clean), nil
}
