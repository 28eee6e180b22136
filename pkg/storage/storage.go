// Package storage handles image attachments in Google Cloud Storage:
// validated uploads under random object keys, public URL resolution,
// and idempotent removal by URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// MaxFileSize is the upper bound for a single attachment.
const MaxFileSize = 5 << 20 // 5 MiB

var (
	ErrInvalidExtension = errors.New("file extension not allowed")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AllowedExtension reports whether the filename carries an accepted
// image extension. The check is case-insensitive.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is
// empty, application default credentials are used.
func NewGCSClient(ctx context.Context, credsPath string) (*gcs.Client, error) {
	if credsPath == "" {
		return gcs.NewClient(ctx)
	}
	return gcs.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// Uploader stores image attachments in a single bucket. Object keys are
// random, so distinct uploads never collide and stale CDN caches never
// serve a replaced image.
type Uploader struct {
	Client *gcs.Client
	Bucket string
	Logger *logrus.Logger
}

func NewUploader(client *gcs.Client, bucket string, logger *logrus.Logger) *Uploader {
	return &Uploader{Client: client, Bucket: bucket, Logger: logger}
}

// ObjectKey builds the bucket path for a new attachment: the folder plus
// a fresh UUID carrying the original extension (lowercased).
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
}

// PublicURL builds the public URL for an object path.
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// objectPathFromURL reverses PublicURL for this uploader's bucket. The
// second return is false when the URL does not belong to the bucket.
func (u *Uploader) objectPathFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", u.Bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(url, prefix)
	if path == "" {
		return "", false
	}
	return path, true
}

// Upload validates the attachment, writes it under a fresh key inside
// folder, and returns its public URL. size is the declared length of r;
// the copy is additionally capped so a lying client cannot exceed it.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, filename, contentType, folder string, size int64) (string, error) {
	if !AllowedExtension(filename) {
		return "", ErrInvalidExtension
	}
	if size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	key := ObjectKey(folder, filename)
	wc := u.Client.Bucket(u.Bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files, single request

	n, err := io.Copy(wc, io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		_ = wc.Close()
		return "", err
	}
	if n > MaxFileSize {
		_ = wc.Close()
		return "", ErrFileTooLarge
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(u.Bucket, key), nil
}

// Replace uploads the new attachment first and only then retires the
// old one, so a failed upload never leaves the owner without an image.
// Removal failures are logged and swallowed; the orphan costs storage,
// not correctness.
func (u *Uploader) Replace(ctx context.Context, r io.Reader, filename, contentType, folder string, size int64, oldURL string) (string, error) {
	url, err := u.Upload(ctx, r, filename, contentType, folder, size)
	if err != nil {
		return "", err
	}
	if oldURL != "" {
		if _, err := u.Remove(ctx, oldURL); err != nil && u.Logger != nil {
			u.Logger.WithError(err).WithField("url", oldURL).Warn("failed to remove replaced attachment")
		}
	}
	return url, nil
}

// Remove deletes the object behind a public URL. It reports whether an
// object was actually deleted; URLs outside the bucket and objects that
// no longer exist return false without error.
func (u *Uploader) Remove(ctx context.Context, url string) (bool, error) {
	path, ok := u.objectPathFromURL(url)
	if !ok {
		return false, nil
	}
	err := u.Client.Bucket(u.Bucket).Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
