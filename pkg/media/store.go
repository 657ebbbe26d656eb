package media

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore is a bucket on the local filesystem. The server serves its root
// at baseURL.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates the bucket root if needed.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating media root: %w", err)
	}
	return &DiskStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Put stores an uploaded file in a tenant's slot and returns its public URL.
// Any previous file in the slot is removed first, so a tenant that uploads a
// .png over a .jpg does not keep both.
func (s *DiskStore) Put(tenantID uuid.UUID, kind, filename string, r io.Reader) (string, error) {
	objPath, err := objectPath(tenantID, kind, filename)
	if err != nil {
		return "", err
	}

	if err := s.removeSlot(tenantID, kind); err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(objPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("creating asset directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("creating asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("writing asset: %w", err)
	}

	return s.baseURL + "/" + objPath, nil
}

// removeSlot deletes every stored extension of one slot.
func (s *DiskStore) removeSlot(tenantID uuid.UUID, kind string) error {
	dir, base := slotPrefix(tenantID, kind)
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(dir)))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing asset slot: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) != base {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(dir), name)); err != nil {
			return fmt.Errorf("removing previous asset: %w", err)
		}
	}
	return nil
}

// FileServer returns a handler serving the bucket's files. Directory listings
// are disabled.
func (s *DiskStore) FileServer() http.Handler {
	fs := http.FileServer(http.Dir(s.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
