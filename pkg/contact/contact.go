// Package contact manages the WhatsApp phone numbers a tenant's site links
// to. Customer and reseller numbers are kept as separate groups; saving a
// group replaces it wholesale.
package contact

import (
	"time"

	"github.com/google/uuid"
)

// Contact is one stored phone number.
type Contact struct {
	ID         uuid.UUID `json:"id"`
	Phone      string    `json:"phone"`
	IsReseller bool      `json:"is_reseller"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// Phones extracts just the numbers, preserving order.
func Phones(contacts []Contact) []string {
	phones := make([]string, len(contacts))
	for i, c := range contacts {
		phones[i] = c.Phone
	}
	return phones
}
