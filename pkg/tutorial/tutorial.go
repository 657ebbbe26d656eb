// Package tutorial manages the step-by-step install guides shown on a
// tenant's site. Steps are grouped by device type and replaced per group.
package tutorial

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tutorial types, one guide per kind of device.
const (
	TypeApp = "app"
	TypeTV  = "tv"
)

// ErrUnknownType is returned when a save names a tutorial type that does not
// exist.
var ErrUnknownType = errors.New("unknown tutorial type")

// IsValidType reports whether t is a known tutorial type.
func IsValidType(t string) bool {
	return t == TypeApp || t == TypeTV
}

// Step is one numbered instruction in a guide.
type Step struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	LinkURL     string    `json:"link_url"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
