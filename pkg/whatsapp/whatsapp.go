// Package whatsapp builds the wa.me links a tenant's site opens conversations
// through. Which number answers is picked at random so inbound load spreads
// across a tenant's contacts.
package whatsapp

import (
	"errors"
	"math/rand/v2"
	"net/url"
	"strings"
)

// ErrNoContacts is returned when a link is requested for a tenant with no
// stored phone numbers.
var ErrNoContacts = errors.New("no contacts available")

// Link builds a wa.me URL for one phone and message. The message is query
// escaped; the phone keeps its leading plus but loses separators.
func Link(phone, message string) string {
	return "https://wa.me/" + normalizePhone(phone) + "?text=" + url.QueryEscape(message)
}

// PickLink builds a link for a uniformly random contact of the list.
func PickLink(phones []string, message string) (string, error) {
	phone, err := Pick(phones)
	if err != nil {
		return "", err
	}
	return Link(phone, message), nil
}

// Pick returns a uniformly random element of phones.
func Pick(phones []string) (string, error) {
	if len(phones) == 0 {
		return "", ErrNoContacts
	}
	return phones[rand.IntN(len(phones))], nil
}

// normalizePhone strips everything that is not a digit, keeping one leading
// plus. "+55 (11) 99999-9999" becomes "+5511999999999".
func normalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
