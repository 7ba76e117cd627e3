package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// OptionalString is a nullable case field in a PATCH body (RFC 7396):
//   - Present=false: absent, leave unchanged
//   - Present=true, Value=nil: null or blank, clear the field
//   - Present=true, Value=&"Pénal": set the trimmed value
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON only runs when the key is in the body
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	o.Value = nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a string or null: %w", err)
	}
	if s = strings.TrimSpace(s); s != "" {
		o.Value = &s
	}
	return nil
}
