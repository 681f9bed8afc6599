package assetstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*DiskStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/uploads/profile-images")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, dir
}

func TestDiskStore_PutAndExists(t *testing.T) {
	s, dir := newTestStore(t)

	path, err := s.Put(context.Background(), ".png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/profile-images/profile-") {
		t.Errorf("unexpected public path: %q", path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("expected extension preserved, got %q", path)
	}
	if !s.Exists(path) {
		t.Error("expected asset to exist after Put")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file on disk, got %d", len(entries))
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if string(data) != "png-bytes" {
		t.Errorf("unexpected file content: %q", data)
	}
}

func TestDiskStore_UniqueNames(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.Put(context.Background(), ".png", bytes.NewReader([]byte("a")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Put(context.Background(), ".png", bytes.NewReader([]byte("b")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected distinct paths for successive puts")
	}
}

func TestDiskStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)

	path, _ := s.Put(context.Background(), ".jpg", bytes.NewReader([]byte("jpg")))
	if err := s.Delete(context.Background(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Exists(path) {
		t.Error("expected asset gone after Delete")
	}
}

func TestDiskStore_DeleteMissingIsOK(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Delete(context.Background(), "/uploads/profile-images/profile-gone.png")
	if err != nil {
		t.Errorf("expected missing-file delete to succeed, got %v", err)
	}
}

func TestDiskStore_DeleteRejectsForeignPaths(t *testing.T) {
	s, _ := newTestStore(t)

	for _, path := range []string{
		"/etc/passwd",
		"/uploads/profile-images/../escape.png",
		"/uploads/profile-images/sub/dir.png",
		"/default-profile.png",
	} {
		if err := s.Delete(context.Background(), path); err == nil {
			t.Errorf("expected Delete(%q) to be rejected", path)
		}
		if s.Exists(path) {
			t.Errorf("expected Exists(%q) to be false", path)
		}
	}
}

func TestDiskStore_PutCancelledContext(t *testing.T) {
	s, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Put(ctx, ".png", bytes.NewReader([]byte("x"))); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()

	path, err := s.Put(context.Background(), ".png", bytes.NewReader([]byte("png")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Exists(path) {
		t.Error("expected asset present")
	}
	if err := s.Delete(context.Background(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Exists(path) {
		t.Error("expected asset gone")
	}
}
