package storage

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Uploader stores user-provided files and returns the URL they are served from.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

var (
	ErrNotConfigured    = errors.New("object storage is not configured")
	ErrUnsupportedImage = errors.New("only jpg, jpeg, png and webp images are allowed")
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ImageContentType returns the content type for an allowed image filename.
func ImageContentType(filename string) (ext, contentType string, err error) {
	ext = strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return "", "", ErrUnsupportedImage
	}
	return ext, contentType, nil
}

// ErrFileTooLarge is returned by FromMultipart when a part exceeds the limit.
var ErrFileTooLarge = errors.New("file is too large")

// File is an uploaded file detached from the HTTP layer.
type File struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Close releases the underlying part if it holds one.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	if c, ok := f.Body.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// FromMultipart opens fh, rejecting parts larger than maxSize when maxSize > 0.
func FromMultipart(fh *multipart.FileHeader, maxSize int64) (*File, error) {
	if maxSize > 0 && fh.Size > maxSize {
		return nil, ErrFileTooLarge
	}
	body, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &File{Filename: fh.Filename, Size: fh.Size, Body: body}, nil
}
