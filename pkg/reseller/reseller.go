// Package reseller manages a tenant's reseller section: whether the section
// shows at all and the credit packages offered. One row per tenant.
package reseller

import (
	"time"
)

// Tier is one credit package offered to prospective resellers.
type Tier struct {
	Credits int    `json:"credits" validate:"required,min=1"`
	Price   string `json:"price" validate:"required"`
	Label   string `json:"label"`
}

// Settings is a tenant's reseller section configuration.
type Settings struct {
	ShowSection bool      `json:"show_section"`
	Tiers       []Tier    `json:"tiers"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultSettings is what a tenant without a stored row gets: the section is
// hidden and there is nothing to offer.
func DefaultSettings() *Settings {
	return &Settings{ShowSection: false, Tiers: []Tier{}}
}
