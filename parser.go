package chordbind

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseErrorKind enumerates the ways a binding string can fail to parse.
type ParseErrorKind uint8

const (
	UnbalancedBracket ParseErrorKind = iota
	UnknownModifier
	UnknownKey
	EmptySequence
	DanglingKeyup
)

// ParseError is the error value a failed Parse returns. Token carries the
// offending substring, where applicable.
type ParseError struct {
	Kind  ParseErrorKind
	Token string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnbalancedBracket:
		return fmt.Sprintf("chordbind: unbalanced bracket in %q", e.Token)
	case UnknownModifier:
		return fmt.Sprintf("chordbind: unknown modifier %q", e.Token)
	case UnknownKey:
		return fmt.Sprintf("chordbind: unknown key %q", e.Token)
	case EmptySequence:
		return "chordbind: empty binding sequence"
	case DanglingKeyup:
		return "chordbind: trailing ! with no following atom"
	default:
		return "chordbind: parse error"
	}
}

// namedTokens maps the literal tokens recognized bare (standalone, inside
// "<...>", or as the final segment of a plus-form) to their NamedKey.
// Keys are lower-cased; lookups must lower-case first.
var namedTokens = map[string]NamedKey{
	"esc":       NamedEscape,
	"escape":    NamedEscape,
	"tab":       NamedTab,
	"return":    NamedReturn,
	"enter":     NamedReturn,
	"cr":        NamedReturn,
	"space":     NamedSpace,
	"backspace": NamedBackspace,
	"bs":        NamedBackspace,
	"del":       NamedDelete,
	"delete":    NamedDelete,
	"ins":       NamedInsert,
	"insert":    NamedInsert,
	"pause":     NamedPause,
	"caps":      NamedCapsLock,
	"capslock":  NamedCapsLock,
	"home":      NamedHome,
	"end":       NamedEnd,
	"pageup":    NamedPageUp,
	"pagedown":  NamedPageDown,
	"up":        NamedUp,
	"down":      NamedDown,
	"left":      NamedLeft,
	"right":     NamedRight,
}

// Parse translates a binding string into a normalized Sequence. See
// package doc and SPEC_FULL.md §4.1 for the surface grammar.
func Parse(pattern string, r Resolver) (Sequence, error) {
	groups := strings.Fields(pattern)
	if len(groups) == 0 {
		return nil, &ParseError{Kind: EmptySequence}
	}

	var seq Sequence
	for _, g := range groups {
		atoms, err := parseGroup(g, r)
		if err != nil {
			return nil, err
		}
		seq = append(seq, atoms...)
	}
	if len(seq) == 0 {
		return nil, &ParseError{Kind: EmptySequence}
	}
	return seq, nil
}

// parseGroup parses one whitespace-delimited chunk of the pattern into
// zero or more directed matchers, consuming characters left to right.
func parseGroup(g string, r Resolver) (Sequence, error) {
	runes := []rune(g)
	var seq Sequence
	i := 0
	for i < len(runes) {
		dir := Keydown
		if runes[i] == '!' {
			i++
			if i >= len(runes) {
				return nil, &ParseError{Kind: DanglingKeyup}
			}
			dir = Keyup
		}

		switch {
		case runes[i] == '<':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '>' {
					end = j
					break
				}
			}
			if end == -1 {
				return nil, &ParseError{Kind: UnbalancedBracket, Token: string(runes[i:])}
			}
			m, err := parseAngleForm(string(runes[i+1:end]), r)
			if err != nil {
				return nil, err
			}
			seq = append(seq, DirectedMatcher{Direction: dir, Matcher: m})
			i = end + 1

		default:
			rest := string(runes[i:])

			if plusIdx := plusFormIndex(rest); plusIdx > 0 {
				m, err := parsePlusForm(rest, r)
				if err != nil {
					return nil, err
				}
				seq = append(seq, DirectedMatcher{Direction: dir, Matcher: m})
				i = len(runes)
				continue
			}

			lower := strings.ToLower(rest)
			if named, ok := namedTokens[lower]; ok {
				m, err := resolveSymbol(KeySymbol{Kind: KindNamed, Named: named}, NoMods, r)
				if err != nil {
					return nil, err
				}
				seq = append(seq, DirectedMatcher{Direction: dir, Matcher: m})
				i = len(runes)
				continue
			}

			if utf8.RuneCountInString(rest) > 1 {
				if n, ok := parseFunctionKey(lower); ok {
					m, err := resolveSymbol(KeySymbol{Kind: KindFunction, Function: n}, NoMods, r)
					if err != nil {
						return nil, err
					}
					seq = append(seq, DirectedMatcher{Direction: dir, Matcher: m})
					i = len(runes)
					continue
				}
				if n, ok := parseNumpadKey(lower); ok {
					m, err := resolveSymbol(KeySymbol{Kind: KindNumpad, Numpad: n}, NoMods, r)
					if err != nil {
						return nil, err
					}
					seq = append(seq, DirectedMatcher{Direction: dir, Matcher: m})
					i = len(runes)
					continue
				}
			}

			ch := runes[i]
			sym := KeySymbol{Kind: KindRune, Rune: normalizeRune(ch)}
			m, err := resolveSymbol(sym, NoMods, r)
			if err != nil {
				return nil, err
			}
			seq = append(seq, DirectedMatcher{Direction: dir, Matcher: m})
			i++
		}
	}
	return seq, nil
}

// plusFormIndex returns the index of the '+' that separates a vscode-style
// plus-form's modifiers from its key, or -1 if rest is not a plus-form.
// A bare "+" (binding the plus key itself) and a trailing "+" are not
// plus-forms; '+' has no other meaning in the grammar so any other
// occurrence commits to plus-form parsing (errors rather than silently
// falling back to a bare-character read).
func plusFormIndex(rest string) int {
	idx := strings.LastIndexByte(rest, '+')
	if idx <= 0 || idx >= len(rest)-1 {
		return -1
	}
	return idx
}

func parsePlusForm(rest string, r Resolver) (Matcher, error) {
	parts := strings.Split(rest, "+")
	keyTok := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]

	var mods Modifiers
	for _, w := range modParts {
		switch strings.ToLower(w) {
		case "ctrl":
			mods.Control = true
		case "shift":
			mods.Shift = true
		case "alt":
			mods.Alt = true
		case "meta", "cmd", "super", "win":
			mods.Meta = true
		default:
			return Matcher{}, &ParseError{Kind: UnknownModifier, Token: w}
		}
	}
	return resolveKeyToken(keyTok, mods, r)
}

func parseAngleForm(inner string, r Resolver) (Matcher, error) {
	if inner == "" {
		return Matcher{}, &ParseError{Kind: UnknownKey, Token: "<>"}
	}
	parts := strings.Split(inner, "-")
	keyTok := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]

	var mods Modifiers
	for _, w := range modParts {
		switch strings.ToLower(w) {
		case "c":
			mods.Control = true
		case "s":
			mods.Shift = true
		case "a":
			mods.Alt = true
		case "m", "d":
			mods.Meta = true
		default:
			return Matcher{}, &ParseError{Kind: UnknownModifier, Token: w}
		}
	}
	return resolveKeyToken(keyTok, mods, r)
}

// resolveKeyToken translates the final key-token segment of an angle-form
// or plus-form into a KeySymbol and asks the resolver for a Matcher.
func resolveKeyToken(tok string, mods Modifiers, r Resolver) (Matcher, error) {
	if tok == "" {
		return Matcher{}, &ParseError{Kind: UnknownKey, Token: tok}
	}

	if utf8.RuneCountInString(tok) == 1 {
		ch, _ := utf8.DecodeRuneInString(tok)
		return resolveSymbol(KeySymbol{Kind: KindRune, Rune: normalizeRune(ch)}, mods, r)
	}

	lower := strings.ToLower(tok)
	if named, ok := namedTokens[lower]; ok {
		return resolveSymbol(KeySymbol{Kind: KindNamed, Named: named}, mods, r)
	}

	if n, ok := parseFunctionKey(lower); ok {
		return resolveSymbol(KeySymbol{Kind: KindFunction, Function: n}, mods, r)
	}

	if n, ok := parseNumpadKey(lower); ok {
		return resolveSymbol(KeySymbol{Kind: KindNumpad, Numpad: n}, mods, r)
	}

	return Matcher{}, &ParseError{Kind: UnknownKey, Token: tok}
}

func resolveSymbol(sym KeySymbol, mods Modifiers, r Resolver) (Matcher, error) {
	m, ok := r.resolve(sym)
	if !ok {
		return Matcher{}, &ParseError{Kind: UnknownKey, Token: sym.String()}
	}
	m.Mods = mods
	return m, nil
}

func parseFunctionKey(lower string) (int, bool) {
	if len(lower) < 2 || lower[0] != 'f' {
		return 0, false
	}
	n, err := strconv.Atoi(lower[1:])
	if err != nil || n < 1 || n > 24 {
		return 0, false
	}
	return n, true
}

func parseNumpadKey(lower string) (int, bool) {
	const prefix = "num"
	if len(lower) != len(prefix)+1 || !strings.HasPrefix(lower, prefix) {
		return 0, false
	}
	d := lower[len(prefix)]
	if d < '0' || d > '9' {
		return 0, false
	}
	return int(d - '0'), true
}

// normalizeRune lower-cases ASCII letters: case carries no semantic
// meaning on a bare key or a final key token unless a modifier encodes it
// explicitly (Shift).
func normalizeRune(r rune) rune {
	return unicode.ToLower(r)
}
