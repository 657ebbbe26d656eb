// Package theme manages the color presets sites are rendered with. Themes
// are global rows shared by every tenant; exactly one is active at a time.
package theme

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an activation names a theme that does not
// exist.
var ErrNotFound = errors.New("theme not found")

// Theme is one color preset. Colors are HSL triplets as used in CSS custom
// properties, e.g. "142 71% 45%".
type Theme struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Primary    string    `json:"primary"`
	Secondary  string    `json:"secondary"`
	Accent     string    `json:"accent"`
	Background string    `json:"background"`
	Foreground string    `json:"foreground"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
