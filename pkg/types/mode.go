package types

import "fmt"

// Mode selects which GitHub search backend is queried.
type Mode string

const (
	// ModeCode searches repository code for .env files.
	ModeCode Mode = "code"
	// ModeGists lists public gists.
	ModeGists Mode = "gists"
)

// ParseMode converts a user supplied mode name into a Mode.
// An empty name selects code search; "repos" is accepted as an alias for it.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "code", "repos":
		return ModeCode, nil
	case "gists":
		return ModeGists, nil
	default:
		return "", fmt.Errorf("unknown search mode %q (expected code or gists)", s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}
