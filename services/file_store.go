package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore keeps uploaded files flat under a single directory that is also
// served as static content. Only the bare file name is stored in the database.
type FileStore struct {
	Dir    string
	Logger *zap.Logger
}

func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{Dir: dir, Logger: logger}
}

// Save copies the upload to a new uniquely named file and returns that name.
func (s *FileStore) Save(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close file: %w", err)
	}
	return name, nil
}

// SaveAll saves every upload; on failure the files already written are removed.
func (s *FileStore) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := s.Save(fh)
		if err != nil {
			s.RemoveAll(names)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *FileStore) Remove(name string) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return
	}

	path := filepath.Join(s.Dir, name)
	if err := os.Remove(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.Logger.Warn("failed to delete file", zap.String("path", path), zap.Error(err))
		}
		return
	}
	s.Logger.Debug("file deleted", zap.String("path", path))
}

func (s *FileStore) RemoveAll(names []string) {
	for _, name := range names {
		s.Remove(name)
	}
}

// ValidateImage rejects uploads that are not images or exceed maxBytes.
func ValidateImage(fh *multipart.FileHeader, maxBytes int64) error {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return fmt.Errorf("%w: only image files are allowed", ErrInvalidUpload)
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, maxBytes)
	}
	return nil
}

// MediaType classifies an upload as "image" or "video" from its content type.
func MediaType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "image/"):
		return "image"
	case strings.HasPrefix(ct, "video/"):
		return "video"
	}
	return ""
}
