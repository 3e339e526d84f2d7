package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore keeps listing images in object storage
type ImageStore interface {
	// Upload stores the object under key and returns its public URL
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	// RemovePrefix deletes every object whose key starts with prefix
	RemovePrefix(ctx context.Context, prefix string) error
	EnsureBucket(ctx context.Context) error
}

// objectStore is the subset of *minio.Client the image store uses
type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo,
		opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

type minioImageStore struct {
	client  objectStore
	bucket  string
	baseURL string
}

// NewMinioImageStore connects to a MinIO (or S3 compatible) endpoint. baseURL
// is the public prefix that object keys are appended to.
func NewMinioImageStore(endpoint, accessKey, secretKey string, useSSL bool, bucket, baseURL string) (ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return newImageStore(client, bucket, baseURL), nil
}

func newImageStore(client objectStore, bucket, baseURL string) *minioImageStore {
	return &minioImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (m *minioImageStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return m.baseURL + "/" + key, nil
}

func (m *minioImageStore) RemovePrefix(ctx context.Context, prefix string) error {
	objects := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	// Listing errors arrive in-band; stop feeding removals on the first one
	var listErr error
	toRemove := make(chan minio.ObjectInfo)
	go func() {
		defer close(toRemove)
		for object := range objects {
			if object.Err != nil {
				listErr = object.Err
				return
			}
			select {
			case toRemove <- object:
			case <-ctx.Done():
				return
			}
		}
	}()

	var removeErr error
	for rErr := range m.client.RemoveObjects(ctx, m.bucket, toRemove, minio.RemoveObjectsOptions{}) {
		if removeErr == nil {
			removeErr = fmt.Errorf("remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	if removeErr != nil {
		return removeErr
	}
	if listErr != nil {
		return fmt.Errorf("list %s: %w", prefix, listErr)
	}
	return nil
}

func (m *minioImageStore) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
