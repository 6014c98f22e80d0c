// Package fsxmem is an in-memory fsx.FileSystem for tests.
package fsxmem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/talentgate/portal/pkg/fsx"
)

type MemFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func New() *MemFileSystem {
	return &MemFileSystem{files: make(map[string][]byte)}
}

var _ fsx.FileSystem = (*MemFileSystem)(nil)

func (m *MemFileSystem) WriteFile(_ context.Context, filePath string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[filePath] = buf
	return nil
}

func (m *MemFileSystem) ReadFileStream(_ context.Context, filePath string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filePath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemFileSystem) DeleteFile(_ context.Context, filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filePath)
	return nil
}

func (m *MemFileSystem) Exists(_ context.Context, filePath string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filePath]
	return ok, nil
}

func (m *MemFileSystem) Join(elem ...string) string {
	return strings.Join(elem, "/")
}

// Len reports the number of stored files.
func (m *MemFileSystem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
