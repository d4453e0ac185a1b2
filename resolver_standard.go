package chordbind

// Keycodes for named and function keys, chosen to sit well above the
// printable-rune range (which uses the rune's own codepoint as its
// keycode) so the two ranges can never collide.
const (
	keycodeNamedBase    = 1 << 21
	keycodeFunctionBase = 1<<21 + 1<<16
)

// DefaultResolver is a concrete Resolver covering the full KeySymbol set.
// Printable runes, named keys, and function keys resolve via Keycode;
// numpad digits resolve only via Scancode, so library consumers and tests
// exercise both Matcher variants without needing a custom resolver.
//
// The numeric values are internal to this package's notion of "keycode"
// and "scancode" — they exist to give Matcher something stable to compare,
// not to model any particular OS or keyboard layout. package termio
// produces KeyEvent values using this same table so that terminal input
// and parsed bindings agree on what a given key "is".
var DefaultResolver = Resolver{
	Keycode:  defaultKeycode,
	Scancode: defaultScancode,
}

func defaultKeycode(sym KeySymbol) (int, bool) {
	switch sym.Kind {
	case KindRune:
		return int(sym.Rune), true
	case KindNamed:
		if sym.Named == NamedNone {
			return 0, false
		}
		return keycodeNamedBase + int(sym.Named), true
	case KindFunction:
		if sym.Function < 1 || sym.Function > 24 {
			return 0, false
		}
		return keycodeFunctionBase + sym.Function, true
	default:
		return 0, false
	}
}

func defaultScancode(sym KeySymbol) (int, bool) {
	if sym.Kind == KindNumpad {
		if sym.Numpad < 0 || sym.Numpad > 9 {
			return 0, false
		}
		// A conventional PC-101 numpad scancode base (0x52 is KP0 on a
		// standard "Set 1" scancode table); the exact values only need
		// to be internally consistent between parser and termio.
		return 0x52 + sym.Numpad, true
	}
	return 0, false
}
