// Package setting manages the free-form key/value settings a tenant's site is
// rendered from. Values are stored as text; values that contain JSON are
// decoded when the public content document is assembled.
package setting

import (
	"encoding/json"
	"time"
)

// Setting is one stored key/value pair for a tenant.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseValue decodes a stored value for serving. Values are persisted as
// text, but many hold JSON (arrays, objects, booleans) written by the admin
// UI. A value that does not parse as JSON is served as the raw string rather
// than dropped.
func ParseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
