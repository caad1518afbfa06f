// Package store keeps uploaded deliverables on local disk.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const MaxUploadBytes = 10 << 20

var (
	ErrNotPDF       = errors.New("only PDF files allowed")
	ErrTooLarge     = errors.New("file too large")
	ErrOutsideStore = errors.New("path outside storage directory")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type FileStore interface {
	SavePDF(originalName string, r io.Reader) (string, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

type LocalFileStore struct {
	dir string
	now func() time.Time
}

func NewLocalFileStore(dir string) *LocalFileStore {
	return &LocalFileStore{dir: dir, now: time.Now}
}

// SavePDF writes the upload as <dir>/<unixmillis>-<name> and returns that
// path. Content is sniffed; the client-declared type is ignored.
func (s *LocalFileStore) SavePDF(originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		return "", ErrNotPDF
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitize(originalName))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filepath.ToSlash(path), nil
}

func (s *LocalFileStore) Open(path string) (io.ReadCloser, error) {
	target, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(target)
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *LocalFileStore) Remove(path string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// resolve maps a stored path back to disk, refusing anything outside dir.
func (s *LocalFileStore) resolve(path string) (string, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	target, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrOutsideStore
	}
	return target, nil
}

func sanitize(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "certificate"
	}
	if !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		base += ".pdf"
	}
	return base
}
