// Package media stores a tenant's uploaded assets (logo, social preview
// image) on disk and serves them over HTTP. Assets live under a per-tenant
// prefix; uploading replaces whatever the slot held before, whatever
// extension it carried.
package media

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Asset kinds. Each kind is a single slot per tenant.
const (
	KindLogo    = "logo"
	KindOGImage = "og-image"
)

// ErrUnknownKind is returned for an upload targeting a slot that does not
// exist.
var ErrUnknownKind = errors.New("unknown asset kind")

// ErrBadExtension is returned for uploads that are not a supported image
// format.
var ErrBadExtension = errors.New("unsupported file extension")

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".svg":  {},
	".gif":  {},
	".ico":  {},
}

// SettingKey maps an asset kind to the settings key its public URL is stored
// under.
func SettingKey(kind string) (string, error) {
	switch kind {
	case KindLogo:
		return "logo_url", nil
	case KindOGImage:
		return "seo_og_image_url", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// objectPath builds the storage path for a slot, relative to the bucket root.
// The extension comes from the uploaded filename; everything else about the
// name is fixed, so hostile filenames cannot escape the tenant prefix.
func objectPath(tenantID uuid.UUID, kind, filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrBadExtension, ext)
	}

	switch kind {
	case KindLogo:
		return path.Join(tenantID.String(), "logo"+ext), nil
	case KindOGImage:
		return path.Join(tenantID.String(), "seo", "og-image"+ext), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// slotPrefix is the path prefix shared by all extensions of one slot.
func slotPrefix(tenantID uuid.UUID, kind string) (dir, base string) {
	switch kind {
	case KindOGImage:
		return path.Join(tenantID.String(), "seo"), "og-image"
	default:
		return tenantID.String(), "logo"
	}
}
