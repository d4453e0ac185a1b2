package chordbind

// MatcherKind selects which physical code a Matcher compares against.
type MatcherKind uint8

const (
	MatcherKeycode MatcherKind = iota
	MatcherScancode
)

// Matcher identifies one key press to match: either a physical keycode or
// a physical scancode produced by the injected Resolver, plus the
// modifiers that must accompany it.
type Matcher struct {
	Kind MatcherKind
	Code int
	Mods Modifiers
}

// matches reports whether the matcher accepts the given event, per its
// Kind: Keycode matchers compare ev.Keycode, Scancode matchers compare
// ev.Scancode. Modifiers always compare for exact field-wise equality.
func (m Matcher) matches(ev KeyEvent) bool {
	if m.Mods != ev.Modifiers {
		return false
	}
	switch m.Kind {
	case MatcherKeycode:
		return ev.Keycode == m.Code
	case MatcherScancode:
		return ev.Scancode == m.Code
	default:
		return false
	}
}

// Direction tags a Matcher with the key transition it responds to.
type Direction uint8

const (
	Keydown Direction = iota
	Keyup
)

func (d Direction) String() string {
	if d == Keyup {
		return "keyup"
	}
	return "keydown"
}

// DirectedMatcher is one Matcher tagged with the direction it applies to.
type DirectedMatcher struct {
	Direction Direction
	Matcher   Matcher
}

// Sequence is an ordered, non-empty list of direction-tagged matchers.
type Sequence []DirectedMatcher

// KeyEvent is one physical key transition as reported by the host's
// capture layer (see package termio for a concrete terminal-based one).
type KeyEvent struct {
	Scancode  int
	Keycode   int
	Modifiers Modifiers
	Text      string
}
