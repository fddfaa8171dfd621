// Package storage wraps the object store holding product and collection media.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/equza-living-co/go-services/internal/config"
)

// MediaStore is a thin wrapper around the minio client. All storefront and
// admin media live in a single bucket under the key layout produced by the
// path helpers below.
type MediaStore struct {
	client *minio.Client
	bucket string
}

// NewMediaStore connects to the object store and ensures the bucket exists.
func NewMediaStore(cfg config.MinIOConfig) (*MediaStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MediaStore{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Upload stores an object under the given key and returns its storage ref.
func (s *MediaStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", key, err)
	}
	return key, nil
}

// Download returns a reader for the stored object. The stat call surfaces a
// missing key as an error instead of an empty stream.
func (s *MediaStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// PresignedURL returns a presigned GET URL valid for the given duration.
func (s *MediaStore) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, expires, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}

// Remove deletes a stored object.
func (s *MediaStore) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// ProductImageKey places product media under a per-product prefix.
func ProductImageKey(productID, filename string) string {
	return path.Join("images", "products", productID, sanitizeFilename(filename))
}

// CollectionImageKey places collection media under a per-collection prefix.
func CollectionImageKey(collectionID, filename string) string {
	return path.Join("images", "collections", collectionID, sanitizeFilename(filename))
}

// AdminUploadKey places free-form admin uploads under a named folder.
func AdminUploadKey(folder, filename string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" || folder == "." {
		folder = "misc"
	}
	return path.Join("uploads", "admin", folder, sanitizeFilename(filename))
}

// sanitizeFilename strips any path components so a crafted filename cannot
// escape its prefix.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
