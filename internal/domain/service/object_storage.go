package service

import (
	"context"
	"errors"
	"io"
)

type ObjectInfo struct {
	Path        string
	ContentType string
	Size        int64
}

// ObjectStorage is path-addressed blob storage. Paths are relative to a
// bucket prefix such as client-uploads or service-documents.
type ObjectStorage interface {
	Upload(ctx context.Context, prefix, path string, r io.Reader, contentType string, overwrite bool) (*ObjectInfo, error)
	Open(ctx context.Context, prefix, path string) (io.ReadCloser, *ObjectInfo, error)
	Delete(ctx context.Context, prefix, path string) error
}

var (
	// ErrObjectExists is returned by Upload when overwrite is false and the path is taken.
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
)
