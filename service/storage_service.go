package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage is where accepted uploads end up. Keys are slash separated and
// scoped by user id, so a disk implementation maps them to subdirectories
// and a bucket implementation can use them verbatim.
type Storage interface {
	Put(key string, data []byte, contentType string) error
	PublicURL(key string) string
	Path(key string) (string, error)
}

type DiskStorage struct {
	root          string
	publicBaseURL string
}

func NewDiskStorage(root, publicBaseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}
	return &DiskStorage{
		root:          root,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *DiskStorage) Put(key string, data []byte, contentType string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %v", err)
	}
	return nil
}

func (s *DiskStorage) PublicURL(key string) string {
	return s.publicBaseURL + "/files/" + key
}

// Path resolves a key under the storage root, rejecting anything that would
// escape it.
func (s *DiskStorage) Path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(s.root, clean), nil
}
