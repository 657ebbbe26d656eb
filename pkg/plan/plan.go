// Package plan manages the subscription plans shown on a tenant's pricing
// section. Saving replaces the whole list; display order is the order the
// admin sent.
package plan

import (
	"time"

	"github.com/google/uuid"
)

// Plan is one priced offer. Features is the bullet list rendered on the
// plan's card.
type Plan struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Period    string    `json:"period"`
	Features  []string  `json:"features"`
	Popular   bool      `json:"popular"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
