// Package jsonutil provides lenient JSON decoding for request fields that
// accept more than one shape.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// StringList decodes a JSON value that may be either a single string or an
// array of strings. Absent and null both decode to a nil list, which
// callers treat as "filter not supplied".
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = StringList(many)
		return nil
	}

	return fmt.Errorf("expected string or array of strings, got %s", string(data))
}

// Strings returns the list as a plain []string, nil when empty.
func (l StringList) Strings() []string {
	if len(l) == 0 {
		return nil
	}
	return []string(l)
}
