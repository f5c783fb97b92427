package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/fixmycity/issue-service/internal/errs"
	"github.com/google/uuid"
)

// MaxUploadSize caps accepted files at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Store writes accepted uploads into a single durable directory. The
// generated name is the only reference handed back; retrieval is a
// static read by name.
type Store struct {
	dir     string
	maxSize int64
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, maxSize: MaxUploadSize}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists one uploaded file, returning the generated
// name. Both the extension and the declared content type must be in the
// allowed set. Nothing is written when the file is rejected.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", errs.ErrInvalidUpload, s.maxSize)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: file type %q not allowed", errs.ErrInvalidUpload, ext)
	}
	if ct := fh.Header.Get("Content-Type"); !allowedContentTypes[ct] {
		return "", fmt.Errorf("%w: content type %q not allowed", errs.ErrInvalidUpload, ct)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return name, nil
}
