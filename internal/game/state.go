// Package game plays duels between strategies and replays their records.
package game

// Mode is how the replay viewer advances.
type Mode int

const (
	// ModeStep advances one frame per key press.
	ModeStep Mode = iota
	// ModeAutoplay advances on a timer until the last frame.
	ModeAutoplay
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeStep:
		return "step"
	case ModeAutoplay:
		return "autoplay"
	default:
		return "unknown"
	}
}

// Toggle switches between stepping and autoplay.
func (m Mode) Toggle() Mode {
	if m == ModeAutoplay {
		return ModeStep
	}
	return ModeAutoplay
}
