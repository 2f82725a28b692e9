package document

import (
	"fmt"
	"strings"
)

// Mode selects how items are rendered.
type Mode int

const (
	// ModePrescriptive renders rule definitions as declarative
	// statements.
	ModePrescriptive Mode = iota + 1

	// ModeDescriptive renders evaluation outcomes.
	ModeDescriptive
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePrescriptive:
		return "prescriptive"
	case ModeDescriptive:
		return "descriptive"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModePrescriptive || m == ModeDescriptive
}

// ParseMode converts a case-insensitive mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prescriptive":
		return ModePrescriptive, nil
	case "descriptive":
		return ModeDescriptive, nil
	default:
		return 0, fmt.Errorf("unknown render mode: %q", s)
	}
}
