package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestObjectPath(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		kind     string
		filename string
		want     string
		wantErr  error
	}{
		{"logo png", KindLogo, "brand.png", id.String() + "/logo.png", nil},
		{"og image jpg", KindOGImage, "preview.JPG", id.String() + "/seo/og-image.jpg", nil},
		{"traversal in name", KindLogo, "../../etc/passwd.png", id.String() + "/logo.png", nil},
		{"no extension", KindLogo, "logo", "", ErrBadExtension},
		{"executable", KindLogo, "logo.exe", "", ErrBadExtension},
		{"unknown kind", "banner", "x.png", "", ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := objectPath(id, tt.kind, tt.filename)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("objectPath: %v", err)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "..") {
				t.Errorf("path %q contains a traversal", got)
			}
		})
	}
}

func TestDiskStore_PutReplacesSlot(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "/media")
	if err != nil {
		t.Fatal(err)
	}

	id := uuid.New()

	url, err := store.Put(id, KindLogo, "first.jpg", strings.NewReader("jpg-bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/media/"+id.String()+"/logo.jpg" {
		t.Errorf("url = %q", url)
	}

	// Uploading a different extension must not leave the old file behind.
	url, err = store.Put(id, KindLogo, "second.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/media/"+id.String()+"/logo.png" {
		t.Errorf("url = %q", url)
	}

	entries, err := os.ReadDir(filepath.Join(root, id.String()))
	if err != nil {
		t.Fatal(err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	if len(files) != 1 || files[0] != "logo.png" {
		t.Errorf("slot files = %v, want [logo.png]", files)
	}
}

func TestDiskStore_TenantsAreIsolated(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatal(err)
	}

	a, b := uuid.New(), uuid.New()
	if _, err := store.Put(a, KindLogo, "a.png", strings.NewReader("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Put(b, KindLogo, "b.png", strings.NewReader("b")); err != nil {
		t.Fatal(err)
	}

	// Replacing tenant A's logo must not touch tenant B's.
	if _, err := store.Put(a, KindLogo, "a2.jpg", strings.NewReader("a2")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(store.root, b.String(), "logo.png"))
	if err != nil {
		t.Fatalf("tenant B's logo is gone: %v", err)
	}
	if string(data) != "b" {
		t.Errorf("tenant B's logo = %q, want %q", data, "b")
	}
}
