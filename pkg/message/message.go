// Package message manages the prewritten WhatsApp texts and button labels a
// tenant's site opens conversations with.
package message

import (
	"errors"
	"time"
)

// ErrUnknownType is returned when a save names a message type that does not
// exist.
var ErrUnknownType = errors.New("unknown message type")

// Message types. Each type seeds the conversation opened from a different
// part of the site.
const (
	TypeDefault     = "default"
	TypeKrator      = "krator"
	TypeContact     = "contact"
	TypeTrialPC     = "trial_pc"
	TypeTrialMobile = "trial_mobile"
	TypeReseller    = "reseller"
)

var validTypes = map[string]struct{}{
	TypeDefault:     {},
	TypeKrator:      {},
	TypeContact:     {},
	TypeTrialPC:     {},
	TypeTrialMobile: {},
	TypeReseller:    {},
}

// IsValidType reports whether t is a known message type.
func IsValidType(t string) bool {
	_, ok := validTypes[t]
	return ok
}

// Message is one stored conversation opener.
type Message struct {
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ButtonText is one stored button label, keyed by the site element it labels.
type ButtonText struct {
	Key       string    `json:"key"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
