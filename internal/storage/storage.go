// Package storage implements the on-disk file store for uploaded media.
// Files are written under a configured root directory and addressed by a
// relative storage key; keys are validated so a crafted key can never
// resolve outside the root.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrTooLarge is returned by Save when the stream exceeds the byte limit.
var ErrTooLarge = errors.New("storage: stream exceeds size limit")

// ErrInvalidKey is returned when a storage key resolves outside the root.
var ErrInvalidKey = errors.New("storage: key escapes storage root")

// Adapter streams uploads to disk and serves them back by storage key.
type Adapter struct {
	root string
}

// NewAdapter creates an Adapter rooted at dir, creating it if needed.
func NewAdapter(dir string) (*Adapter, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Adapter{root: abs}, nil
}

// Root returns the absolute storage root directory.
func (a *Adapter) Root() string {
	return a.root
}

// NewKey builds a collision-resistant storage key for an upload scoped to
// an audit and kind: media/<auditID>/<kind>/<unixnano>-<random>.
func NewKey(auditID, kind string) string {
	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		// Timestamp alone still keys the file; collisions within the
		// same nanosecond are the only loss.
		return path.Join("media", auditID, kind, fmt.Sprintf("%d", time.Now().UnixNano()))
	}
	return path.Join("media", auditID, kind,
		fmt.Sprintf("%d-%s", time.Now().UnixNano(), hex.EncodeToString(suffix[:])))
}

// resolve maps a storage key to an absolute path, rejecting keys that
// would escape the root.
func (a *Adapter) resolve(key string) (string, error) {
	full := filepath.Join(a.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(a.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return full, nil
}

// Save streams r to the file addressed by key, enforcing limit as a hard
// byte ceiling. Memory use is bounded by the copy buffer, not the file
// size. On overflow or write failure the partial file is removed.
// Returns the number of bytes actually written.
func (a *Adapter) Save(key string, r io.Reader, limit int64) (int64, error) {
	full, err := a.resolve(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create storage file: %w", err)
	}

	// Read one byte past the limit so overflow is detectable.
	written, err := io.Copy(f, io.LimitReader(r, limit+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > limit {
		err = ErrTooLarge
	}
	if err != nil {
		// Never leave a partial file behind.
		_ = os.Remove(full)
		return 0, err
	}
	return written, nil
}

// Open returns a reader and the size for the file addressed by key.
// A missing file is reported as os.ErrNotExist for the caller to map.
func (a *Adapter) Open(key string) (io.ReadCloser, int64, error) {
	full, err := a.resolve(key)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// Remove deletes the file addressed by key. Missing files are not an error.
func (a *Adapter) Remove(key string) error {
	full, err := a.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
