package chordbind

import "strconv"

// NamedKey enumerates the closed set of non-printable, non-function,
// non-numpad keys the parser and resolver understand.
type NamedKey uint8

const (
	NamedNone NamedKey = iota
	NamedEscape
	NamedTab
	NamedReturn
	NamedSpace
	NamedBackspace
	NamedDelete
	NamedInsert
	NamedPause
	NamedCapsLock
	NamedHome
	NamedEnd
	NamedPageUp
	NamedPageDown
	NamedUp
	NamedDown
	NamedLeft
	NamedRight
)

// String returns a short, human-readable name, mostly useful in error
// messages and debug logging.
func (n NamedKey) String() string {
	switch n {
	case NamedEscape:
		return "Escape"
	case NamedTab:
		return "Tab"
	case NamedReturn:
		return "Return"
	case NamedSpace:
		return "Space"
	case NamedBackspace:
		return "Backspace"
	case NamedDelete:
		return "Delete"
	case NamedInsert:
		return "Insert"
	case NamedPause:
		return "Pause"
	case NamedCapsLock:
		return "CapsLock"
	case NamedHome:
		return "Home"
	case NamedEnd:
		return "End"
	case NamedPageUp:
		return "PageUp"
	case NamedPageDown:
		return "PageDown"
	case NamedUp:
		return "Up"
	case NamedDown:
		return "Down"
	case NamedLeft:
		return "Left"
	case NamedRight:
		return "Right"
	default:
		return "None"
	}
}

// KeySymbolKind tags which field of a KeySymbol is meaningful.
type KeySymbolKind uint8

const (
	KindRune KeySymbolKind = iota
	KindFunction
	KindNumpad
	KindNamed
)

// KeySymbol is the closed, named set of keys the parser operates on: a
// printable codepoint, a function key F1..F24, a numpad digit, or one of
// the named keys in NamedKey. Exactly one field is meaningful, selected by
// Kind.
type KeySymbol struct {
	Kind     KeySymbolKind
	Rune     rune     // valid when Kind == KindRune
	Function int      // valid when Kind == KindFunction; 1..24
	Numpad   int      // valid when Kind == KindNumpad; 0..9
	Named    NamedKey // valid when Kind == KindNamed
}

// String renders the symbol the way it would appear in an error message.
func (s KeySymbol) String() string {
	switch s.Kind {
	case KindRune:
		return string(s.Rune)
	case KindFunction:
		return "F" + strconv.Itoa(s.Function)
	case KindNumpad:
		return "Num" + strconv.Itoa(s.Numpad)
	case KindNamed:
		return s.Named.String()
	default:
		return "?"
	}
}

// Modifiers is a fixed record of independent modifier booleans. The zero
// value is the designated "none" value and two Modifiers values compare
// for equality field-wise using ==.
type Modifiers struct {
	Control bool
	Shift   bool
	Alt     bool
	Meta    bool // "super"/"command"
}

// NoMods is the designated none value.
var NoMods = Modifiers{}

// Resolver maps key symbols to the numeric codes the runtime compares key
// events against. Keycode is tried first; Scancode is the fallback. Both
// functions report ok=false when they have no mapping for the symbol.
type Resolver struct {
	Keycode  func(KeySymbol) (code int, ok bool)
	Scancode func(KeySymbol) (code int, ok bool)
}

func (r Resolver) resolve(sym KeySymbol) (Matcher, bool) {
	if r.Keycode != nil {
		if code, ok := r.Keycode(sym); ok {
			return Matcher{Kind: MatcherKeycode, Code: code}, true
		}
	}
	if r.Scancode != nil {
		if code, ok := r.Scancode(sym); ok {
			return Matcher{Kind: MatcherScancode, Code: code}, true
		}
	}
	return Matcher{}, false
}
