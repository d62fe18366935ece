package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/alc-backend/internal/application"
)

const (
	maxAvatarBytes     = 5 << 20
	maxAttachmentBytes = 10 << 20
)

var errFileTooLarge = errors.New("file too large")

// formFile reads an optional multipart file. A missing field yields nil.
func formFile(c *gin.Context, field string, limit int64) (*application.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Size > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", errFileTooLarge, field, limit)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", errFileTooLarge, field, limit)
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return &application.FileUpload{Filename: fh.Filename, ContentType: ct, Data: data}, nil
}

func uploadStatus(err error) int {
	if errors.Is(err, errFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
