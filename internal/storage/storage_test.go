package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	return a
}

func TestSaveAndOpen(t *testing.T) {
	a := newTestAdapter(t)

	size, err := a.Save("media/a1/image/k1", strings.NewReader("hello world"), 1024)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if size != 11 {
		t.Errorf("expected 11 bytes written, got %d", size)
	}

	rc, openSize, err := a.Open("media/a1/image/k1")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = rc.Close() }()

	if openSize != 11 {
		t.Errorf("expected size 11 on open, got %d", openSize)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("unexpected contents: %q", data)
	}
}

func TestSaveEnforcesLimit(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.Save("media/a1/file/big", strings.NewReader(strings.Repeat("x", 100)), 10)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	// The partial file must not survive the aborted upload.
	if _, err := os.Stat(filepath.Join(a.Root(), "media/a1/file/big")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected partial file to be removed, stat err: %v", err)
	}
}

func TestSaveExactlyAtLimit(t *testing.T) {
	a := newTestAdapter(t)

	size, err := a.Save("media/a1/file/edge", strings.NewReader(strings.Repeat("x", 10)), 10)
	if err != nil {
		t.Fatalf("expected save at exactly the limit to succeed, got %v", err)
	}
	if size != 10 {
		t.Errorf("expected 10 bytes written, got %d", size)
	}
}

func TestTraversalKeysRejected(t *testing.T) {
	a := newTestAdapter(t)

	for _, key := range []string{"../escape", "media/../../etc/passwd", ".."} {
		if _, err := a.Save(key, strings.NewReader("x"), 10); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Save(%q): expected ErrInvalidKey, got %v", key, err)
		}
		if _, _, err := a.Open(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Open(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	a := newTestAdapter(t)

	_, _, err := a.Open("media/a1/image/missing")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	a := newTestAdapter(t)

	if err := a.Remove("media/a1/never-written"); err != nil {
		t.Fatalf("expected no error removing a missing file, got %v", err)
	}
}

func TestNewKeyIsScopedAndUnique(t *testing.T) {
	k1 := NewKey("audit-1", "image")
	k2 := NewKey("audit-1", "image")

	if !strings.HasPrefix(k1, "media/audit-1/image/") {
		t.Errorf("unexpected key shape: %q", k1)
	}
	if k1 == k2 {
		t.Errorf("expected distinct keys, both %q", k1)
	}
}
