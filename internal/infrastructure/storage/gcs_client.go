package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"gmrportal/internal/domain/service"
	"gmrportal/pkg/logger"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, corsOrigins []string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	storageClient := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := storageClient.setBucketCORS(ctx, corsOrigins); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return storageClient, nil
}

func (c *CloudStorageClient) setBucketCORS(ctx context.Context, origins []string) error {
	bucket := c.client.Bucket(c.bucketName)

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}
	if len(bucketAttrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          3600,
			Methods:         []string{"GET", "PUT", "DELETE", "OPTIONS"},
			Origins:         origins,
			ResponseHeaders: []string{"Content-Type", "Content-Disposition"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %v", err)
	}
	return nil
}

// ObjectName joins a prefix and a relative path, rejecting traversal.
func ObjectName(prefix, rel string) (string, error) {
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", fmt.Errorf("invalid object path %q", rel)
		}
	}
	clean := path.Clean("/" + rel)
	if clean == "/" {
		return "", fmt.Errorf("invalid object path %q", rel)
	}
	return strings.Trim(prefix, "/") + clean, nil
}

func (c *CloudStorageClient) Upload(ctx context.Context, prefix, rel string, r io.Reader, contentType string, overwrite bool) (*service.ObjectInfo, error) {
	name, err := ObjectName(prefix, rel)
	if err != nil {
		return nil, err
	}

	obj := c.client.Bucket(c.bucketName).Object(name)
	if !overwrite {
		obj = obj.If(storage.Conditions{DoesNotExist: true})
	}

	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "private, max-age=0"

	written, err := io.Copy(wc, r)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := wc.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return nil, service.ErrObjectExists
		}
		return nil, fmt.Errorf("failed to close writer: %v", err)
	}

	return &service.ObjectInfo{Path: rel, ContentType: contentType, Size: written}, nil
}

func (c *CloudStorageClient) Open(ctx context.Context, prefix, rel string) (io.ReadCloser, *service.ObjectInfo, error) {
	name, err := ObjectName(prefix, rel)
	if err != nil {
		return nil, nil, err
	}

	reader, err := c.client.Bucket(c.bucketName).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil, service.ErrObjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to open object: %v", err)
	}

	return reader, &service.ObjectInfo{
		Path:        rel,
		ContentType: reader.Attrs.ContentType,
		Size:        reader.Attrs.Size,
	}, nil
}

func (c *CloudStorageClient) Delete(ctx context.Context, prefix, rel string) error {
	name, err := ObjectName(prefix, rel)
	if err != nil {
		return err
	}

	if err := c.client.Bucket(c.bucketName).Object(name).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
