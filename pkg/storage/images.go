package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

const propertyImagesPrefix = "property_images"

var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type ImageStore interface {
	// Upload stores one image under the owner's prefix and returns its public URL.
	Upload(ctx context.Context, ownerID string, file *multipart.FileHeader) (string, error)
	// RemoveAll deletes every image stored for ownerID.
	RemoveAll(ctx context.Context, ownerID string) error
}

type minioImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioImageStore serves objects from publicURL when set, otherwise from
// the client endpoint.
func NewMinioImageStore(client *minio.Client, bucket, publicURL string) ImageStore {
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}
	return &minioImageStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *minioImageStore) Upload(ctx context.Context, ownerID string, file *multipart.FileHeader) (string, error) {
	contentType := ImageContentType(file)
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", file.Filename, err)
	}
	defer f.Close()

	key := ObjectKey(ownerID, file.Filename)
	if _, err := s.client.PutObject(ctx, s.bucket, key, f, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", s.bucket, key, err)
	}

	return s.publicURL + "/" + path.Join(s.bucket, key), nil
}

func (s *minioImageStore) RemoveAll(ctx context.Context, ownerID string) error {
	objects := make(chan minio.ObjectInfo)
	listErr := make(chan error, 1)

	go func() {
		defer close(objects)
		for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
			Prefix:    path.Join(propertyImagesPrefix, ownerID) + "/",
			Recursive: true,
		}) {
			if obj.Err != nil {
				listErr <- obj.Err
				return
			}
			objects <- obj
		}
	}()

	var errs []error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("remove %s: %w", rErr.ObjectName, rErr.Err))
	}
	select {
	case err := <-listErr:
		errs = append(errs, fmt.Errorf("list images: %w", err))
	default:
	}
	return errors.Join(errs...)
}

// EnsureBucket creates the bucket if it does not exist yet.
func EnsureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// ObjectKey builds property_images/<owner>/<uuid>_<name>.
func ObjectKey(ownerID, filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	return path.Join(propertyImagesPrefix, ownerID, uuid.NewString()+"_"+name)
}

// ImageContentType prefers the part header and falls back to the extension.
func ImageContentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			return mediaType
		}
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		return mediaType
	}
	return "application/octet-stream"
}
