package augment

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/timbretag/patch"
)

// Mode selects the augmentation strategy applied to every category.
type Mode int

const (
	// Interpolate synthesises vectors between magnitude-adjacent anchors.
	Interpolate Mode = iota

	// InjectNoise appends uniformly perturbed copies of each category.
	InjectNoise
)

// String returns the configuration spelling of m.
func (m Mode) String() string {
	switch m {
	case Interpolate:
		return "interpolate"
	case InjectNoise:
		return "inject_noise"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == Interpolate || m == InjectNoise }

// ParseMode accepts "interpolate" and "inject_noise" (also "noise",
// "injectnoise", "inject-noise"), case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interpolate", "interpolation":
		return Interpolate, nil
	case "inject_noise", "inject-noise", "injectnoise", "noise":
		return InjectNoise, nil
	}
	return 0, fmt.Errorf("augment: %w: unknown mode %q", patch.ErrInvalidConfiguration, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("augment: %w: mode %d", patch.ErrInvalidConfiguration, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
