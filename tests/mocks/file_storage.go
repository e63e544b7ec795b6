package mocks

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/redacok/redacok-backend/pkg/errorx"
)

type FileStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewFileStorage() *FileStorage {
	return &FileStorage{files: make(map[string][]byte)}
}

func (s *FileStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *FileStorage) DeleteFile(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[key]; !ok {
		return errorx.NewNotFound()
	}
	delete(s.files, key)
	return nil
}

func (s *FileStorage) AssertFileExists(t *testing.T, key string) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[key]; !ok {
		t.Errorf("expected file with key %s to exist", key)
	}
}

func (s *FileStorage) FileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
