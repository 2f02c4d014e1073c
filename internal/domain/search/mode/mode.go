package mode

import (
	"fmt"
	"strings"
)

// Mode is a named search preset.
type Mode string

// Search mode constants.
const (
	// Default searches every enabled field with the configured options.
	Default Mode = "default"
	// English disables Bengali names.
	English Mode = "english"
	// Bengali searches Bengali names only.
	Bengali Mode = "bengali"
	// Fuzzy raises the threshold to the typo-tolerant preset unless overridden.
	Fuzzy Mode = "fuzzy"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Default || m == English || m == Bengali || m == Fuzzy
}

// Parse is case-insensitive; blank input is Default.
func Parse(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown search mode %q", s)
	}
	return m, nil
}
