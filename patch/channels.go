package patch

import "fmt"

// Spectral channel names, in vector order.
const (
	FilterFrequency = "FilterFrequency"
	FilterEmphasis  = "FilterEmphasis"
	FilterContour   = "FilterContour"
	OscModMix       = "OscModMix"
	OscDetune       = "OscDetune"
)

// Temporal channel names, in vector order. FilterContour is shared with the
// spectral schema and closes the temporal vector.
const (
	FilterAttack  = "FilterAttack"
	FilterDecay   = "FilterDecay"
	FilterSustain = "FilterSustain"
	FilterRelease = "FilterRelease"
	VcaAttack     = "VcaAttack"
	VcaDecay      = "VcaDecay"
	VcaSustain    = "VcaSustain"
	VcaRelease    = "VcaRelease"
)

var spectralChannels = []string{
	FilterFrequency,
	FilterEmphasis,
	FilterContour,
	OscModMix,
	OscDetune,
}

var temporalChannels = []string{
	FilterAttack,
	FilterDecay,
	FilterSustain,
	FilterRelease,
	VcaAttack,
	VcaDecay,
	VcaSustain,
	VcaRelease,
	FilterContour,
}

// Channels returns a copy of the channel schema of d.
func Channels(d Domain) []string {
	switch d {
	case Spectral:
		return append([]string(nil), spectralChannels...)
	case Temporal:
		return append([]string(nil), temporalChannels...)
	}
	return nil
}

// Width returns the stored channel count of d.
func Width(d Domain) int {
	switch d {
	case Spectral:
		return len(spectralChannels)
	case Temporal:
		return len(temporalChannels)
	}
	return 0
}

// ChannelIndex resolves a channel name to its position in d's vectors.
func ChannelIndex(d Domain, name string) (int, error) {
	var names []string
	switch d {
	case Spectral:
		names = spectralChannels
	case Temporal:
		names = temporalChannels
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownCategory, d)
	}
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s channel %q", ErrChannelMismatch, d, name)
}

// ChannelIndices resolves several names at once, keeping their order.
func ChannelIndices(d Domain, names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, n := range names {
		idx, err := ChannelIndex(d, n)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

// ChannelName returns the name at position idx of d, or "" when out of range.
func ChannelName(d Domain, idx int) string {
	var names []string
	switch d {
	case Spectral:
		names = spectralChannels
	case Temporal:
		names = temporalChannels
	}
	if idx < 0 || idx >= len(names) {
		return ""
	}
	return names[idx]
}
