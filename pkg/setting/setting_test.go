package setting

import (
	"reflect"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"json string", `"hello"`, "hello"},
		{"number", `42`, float64(42)},
		{"boolean", `true`, true},
		{"array", `["a","b"]`, []any{"a", "b"}},
		{"object", `{"k":"v"}`, map[string]any{"k": "v"}},
		{"plain text kept raw", `not json at all`, "not json at all"},
		{"hex color kept raw", `#22c55e`, "#22c55e"},
		{"truncated json kept raw", `{"k":`, `{"k":`},
		{"empty kept raw", ``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseValue(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseValue(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}
