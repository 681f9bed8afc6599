// Package assetstore persists binary assets (profile images) outside the
// record store. It defines the Store interface, a disk implementation, and an
// in-memory implementation for tests. The store enforces no policy: size and
// type limits belong to the service that accepts the upload.
package assetstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store is the asset persistence contract. Put returns the public path the
// asset is reachable under; Delete of a missing path is not an error.
type Store interface {
	Put(ctx context.Context, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(path string) bool
}

// ---------------------------------------------------------------------------
// Disk implementation
// ---------------------------------------------------------------------------

// DiskStore writes assets under a directory and addresses them by a public
// URL prefix, e.g. /uploads/profile-images/profile-<id>.png.
type DiskStore struct {
	dir    string
	prefix string
}

// NewDiskStore creates the backing directory if needed.
func NewDiskStore(dir, publicPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset directory %s: %w", dir, err)
	}
	return &DiskStore{
		dir:    dir,
		prefix: strings.TrimSuffix(publicPrefix, "/"),
	}, nil
}

func (s *DiskStore) filename(ext string) string {
	return "profile-" + uuid.New().String() + ext
}

// localPath maps a public path back to the file on disk. Returns an error for
// paths outside this store's prefix so a crafted record value can never reach
// an arbitrary file.
func (s *DiskStore) localPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, s.prefix+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") || strings.Contains(rest, "..") {
		return "", fmt.Errorf("path %q is outside the asset store", path)
	}
	return filepath.Join(s.dir, rest), nil
}

func (s *DiskStore) Put(ctx context.Context, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.filename(ext)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("write asset file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close asset file: %w", err)
	}

	return s.prefix + "/" + name, nil
}

func (s *DiskStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.localPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove asset file: %w", err)
	}
	return nil
}

func (s *DiskStore) Exists(path string) bool {
	full, err := s.localPath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

// MemStore is a thread-safe, in-memory Store for tests.
type MemStore struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	prefix string

	// FailPut makes the next Put return an error, for failure-path tests.
	FailPut error
	// FailDelete makes Delete return an error without removing the asset.
	FailDelete error
}

// NewMemStore returns a ready-to-use MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		blobs:  make(map[string][]byte),
		prefix: "/uploads/profile-images",
	}
}

func (s *MemStore) Put(_ context.Context, ext string, r io.Reader) (string, error) {
	if s.FailPut != nil {
		return "", s.FailPut
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := s.prefix + "/profile-" + uuid.New().String() + ext
	s.mu.Lock()
	s.blobs[path] = data
	s.mu.Unlock()
	return path, nil
}

func (s *MemStore) Delete(_ context.Context, path string) error {
	if s.FailDelete != nil {
		return s.FailDelete
	}
	s.mu.Lock()
	delete(s.blobs, path)
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[path]
	return ok
}
