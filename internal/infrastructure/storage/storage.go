// Package storage uploads member avatars and contact attachments to an
// object store and hands back a public URL.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"google.golang.org/api/googleapi"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
	Bucket() string
}

// FileStore adapts a backend to the upload-then-link contract used by the services.
type FileStore struct {
	backend ObjectStorage
}

func NewFileStore(backend ObjectStorage) *FileStore {
	return &FileStore{backend: backend}
}

func (s *FileStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

func (s *FileStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", errors.New("object key is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.backend.Put(ctx, key, data, contentType); err != nil {
		return "", newUploadError(s.backend.Bucket(), key, err)
	}
	return s.backend.PublicURL(key), nil
}

// UploadError carries the provider's HTTP status and body when known.
type UploadError struct {
	Bucket string
	Key    string
	Status int
	Body   string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error        { return e.Err }
func (e *UploadError) StatusCode() int      { return e.Status }
func (e *UploadError) ResponseBody() string { return e.Body }

func newUploadError(bucket, key string, err error) *UploadError {
	ue := &UploadError{Bucket: bucket, Key: key, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		ue.Status, ue.Body = gerr.Code, gerr.Body
		return ue
	}
	if resp := minio.ToErrorResponse(err); resp.StatusCode != 0 {
		ue.Status = resp.StatusCode
		ue.Body = resp.Code + ": " + resp.Message
	}
	return ue
}

func reader(data []byte) *bytes.Reader { return bytes.NewReader(data) }
