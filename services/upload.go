package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"tradehub/objectstore"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	MaxUploadSize  = 10 << 20
	MaxUploadFiles = 5
	uploadPrefix   = "uploads/"
	sniffLen       = 3072
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// FileInput is one file taken from a multipart form.
type FileInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Content      io.Reader
}

type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
}

type UploadService struct {
	blobs objectstore.Blob
}

func NewUploadService(blobs objectstore.Blob) *UploadService {
	return &UploadService{blobs: blobs}
}

func (s *UploadService) Upload(ctx context.Context, f FileInput) (*UploadedFile, error) {
	if f.Content == nil {
		return nil, Validation("no file provided")
	}
	if f.Size > MaxUploadSize {
		return nil, Validation("file size exceeds the %dMB limit", MaxUploadSize>>20)
	}

	contentType := baseType(f.ContentType)
	body := f.Content
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(f.Content, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return nil, Upstream("failed to read file", err)
		}
		head = head[:n]
		contentType = baseType(mimetype.Detect(head).String())
		body = io.MultiReader(bytes.NewReader(head), f.Content)
	}
	if !allowedMimeTypes[contentType] {
		return nil, Validation("file type %s is not allowed", contentType)
	}

	filename := uuid.NewString() + extension(f.OriginalName, contentType)
	key := uploadPrefix + filename
	err := s.blobs.Put(ctx, objectstore.Object{
		Key:         key,
		ContentType: contentType,
		Size:        f.Size,
		Metadata:    map[string]string{"originalname": f.OriginalName},
		Body:        body,
	})
	if err != nil {
		return nil, Upstream("failed to upload file", err)
	}

	return &UploadedFile{
		Filename:     filename,
		OriginalName: f.OriginalName,
		URL:          s.blobs.URL(key),
		Size:         f.Size,
		MimeType:     contentType,
	}, nil
}

// UploadMany stores the files concurrently. The first failure fails the
// call; files already stored by then are not removed.
func (s *UploadService) UploadMany(ctx context.Context, files []FileInput) ([]UploadedFile, error) {
	if len(files) == 0 {
		return nil, Validation("no files provided")
	}
	if len(files) > MaxUploadFiles {
		return nil, Validation("at most %d files can be uploaded at once", MaxUploadFiles)
	}

	out := make([]UploadedFile, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			uploaded, err := s.Upload(ctx, f)
			if err != nil {
				return err
			}
			out[i] = *uploaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UploadService) Delete(ctx context.Context, filename string) error {
	filename = strings.TrimSpace(filename)
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return Validation("invalid filename")
	}
	err := s.blobs.Delete(ctx, uploadPrefix+filename)
	switch {
	case errors.Is(err, objectstore.ErrNotFound):
		return NotFound("file not found")
	case err != nil:
		return Upstream("failed to delete file", err)
	}
	return nil
}

func baseType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}

// extension keeps the client's extension, falling back to the one implied
// by the detected type.
func extension(name, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return ext
	}
	if mt := mimetype.Lookup(contentType); mt != nil {
		return mt.Extension()
	}
	return ""
}
