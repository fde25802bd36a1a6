package format

import (
	"fmt"
	"strconv"
)

// Style selects how a clock value is rendered.
type Style int

const (
	// StyleShort is the shortest form with no padding on the leading
	// field: "1:02:03", "4:03", "9".
	StyleShort Style = iota
	// StylePadded is the shortest form with every field below hours
	// zero-padded: "1:02:03", "04:03", "09".
	StylePadded
	// StyleFull is always "HH:MM:SS" with all fields zero-padded.
	StyleFull
)

// String returns the display name for a style
func (s Style) String() string {
	switch s {
	case StyleShort:
		return "short"
	case StylePadded:
		return "padded"
	case StyleFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseStyle converts a 0/1/2 value to a Style.
func ParseStyle(n int) (Style, bool) {
	if n < 0 || n > 2 {
		return StyleShort, false
	}
	return Style(n), true
}

// Clock renders a second count as a clock string. Negative input is
// clamped to zero. Hours are only zero-padded in StyleFull.
func Clock(totalSeconds int, style Style) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch style {
	case StylePadded:
		if hours > 0 {
			return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
		}
		if minutes > 0 {
			return fmt.Sprintf("%02d:%02d", minutes, seconds)
		}
		return fmt.Sprintf("%02d", seconds)

	case StyleFull:
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)

	default: // StyleShort
		if hours > 0 {
			return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
		}
		if minutes > 0 {
			return fmt.Sprintf("%d:%02d", minutes, seconds)
		}
		return strconv.Itoa(seconds)
	}
}
