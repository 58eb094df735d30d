package catalog

import (
	"fmt"
	"strings"
)

// Mode is the kind of in-game list a media file shows.
type Mode int

const (
	ModeAuto Mode = iota
	ModeCatalog
	ModeRecipes
	ModeStorage
	ModeCritters
	ModeReactions
	ModeMusic
)

var modeNames = [...]string{"auto", "catalog", "recipes", "storage", "critters", "reactions", "music"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a lowercase mode name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeAuto, nil
	}
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeAuto, fmt.Errorf("unknown mode %q", s)
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Modes lists the names accepted on the command line.
func Modes() []string {
	return modeNames[:]
}
