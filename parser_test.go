package chordbind

import (
	"reflect"
	"testing"
)

func km(code int, mods Modifiers) Matcher {
	return Matcher{Kind: MatcherKeycode, Code: code, Mods: mods}
}

func sm(code int, mods Modifiers) Matcher {
	return Matcher{Kind: MatcherScancode, Code: code, Mods: mods}
}

func seq(matchers ...Matcher) Sequence {
	s := make(Sequence, len(matchers))
	for i, m := range matchers {
		s[i] = DirectedMatcher{Direction: Keydown, Matcher: m}
	}
	return s
}

func TestParseSingleKeys(t *testing.T) {
	tests := []struct {
		pattern string
		want    Sequence
	}{
		{"j", seq(km('j', NoMods))},
		{"J", seq(km('j', NoMods))}, // case carries no meaning on a bare rune
		{"1", seq(km('1', NoMods))},
		{"0", seq(km('0', NoMods))},
		{"gg", seq(km('g', NoMods), km('g', NoMods))},
		{"ciw", seq(km('c', NoMods), km('i', NoMods), km('w', NoMods))},
	}
	for _, tt := range tests {
		got, err := Parse(tt.pattern, DefaultResolver)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.pattern, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.pattern, got, tt.want)
		}
	}
}

func TestParseVimStyleChords(t *testing.T) {
	tests := []struct {
		pattern string
		want    Sequence
	}{
		{"<C-w>", seq(km('w', Modifiers{Control: true}))},
		{"<C-W>", seq(km('w', Modifiers{Control: true}))},
		{"<A-x>", seq(km('x', Modifiers{Alt: true}))},
		{"<M-x>", seq(km('x', Modifiers{Meta: true}))},
		{"<C-A-d>", seq(km('d', Modifiers{Control: true, Alt: true}))},
		{"<C-w><C-j>", seq(km('w', Modifiers{Control: true}), km('j', Modifiers{Control: true}))},
		{"<C-w>j", seq(km('w', Modifiers{Control: true}), km('j', NoMods))},
		{"g<C-d>", seq(km('g', NoMods), km('d', Modifiers{Control: true}))},
	}
	for _, tt := range tests {
		got, err := Parse(tt.pattern, DefaultResolver)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.pattern, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.pattern, got, tt.want)
		}
	}
}

func TestParseNamedKeys(t *testing.T) {
	tests := []struct {
		pattern string
		want    Sequence
	}{
		{"<Esc>", seq(km(keycodeNamedBase+int(NamedEscape), NoMods))},
		{"<CR>", seq(km(keycodeNamedBase+int(NamedReturn), NoMods))},
		{"<Enter>", seq(km(keycodeNamedBase+int(NamedReturn), NoMods))},
		{"<Tab>", seq(km(keycodeNamedBase+int(NamedTab), NoMods))},
		{"<Space>", seq(km(keycodeNamedBase+int(NamedSpace), NoMods))},
		{"<BS>", seq(km(keycodeNamedBase+int(NamedBackspace), NoMods))},
		{"esc", seq(km(keycodeNamedBase+int(NamedEscape), NoMods))},
		{"<Up>", seq(km(keycodeNamedBase+int(NamedUp), NoMods))},
		{"<S-Tab>", seq(km(keycodeNamedBase+int(NamedTab), Modifiers{Shift: true}))},
		{"<C-Esc>", seq(km(keycodeNamedBase+int(NamedEscape), Modifiers{Control: true}))},
	}
	for _, tt := range tests {
		got, err := Parse(tt.pattern, DefaultResolver)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.pattern, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.pattern, got, tt.want)
		}
	}
}

func TestParseFunctionAndNumpadKeys(t *testing.T) {
	tests := []struct {
		pattern string
		want    Sequence
	}{
		{"<F1>", seq(km(keycodeFunctionBase+1, NoMods))},
		{"<F12>", seq(km(keycodeFunctionBase+12, NoMods))},
		{"<num5>", seq(sm(0x52+5, NoMods))},
		{"num0", seq(sm(0x52+0, NoMods))},
	}
	for _, tt := range tests {
		got, err := Parse(tt.pattern, DefaultResolver)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.pattern, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.pattern, got, tt.want)
		}
	}
}

func TestParseVscodeStylePlusForm(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"<c-a>", "<C-A>"},
		{"<C-A>", "Ctrl+a"},
		{"Ctrl+a", "ctrl+a"},
		{"Ctrl+Shift+k", "<C-S-k>"},
		{"Alt+Left", "<A-Left>"},
	}
	for _, tt := range tests {
		got1, err1 := Parse(tt.a, DefaultResolver)
		got2, err2 := Parse(tt.b, DefaultResolver)
		if err1 != nil || err2 != nil {
			t.Errorf("Parse(%q)/Parse(%q) errored: %v / %v", tt.a, tt.b, err1, err2)
			continue
		}
		if !reflect.DeepEqual(got1, got2) {
			t.Errorf("Parse(%q) = %+v, Parse(%q) = %+v, want equal", tt.a, got1, tt.b, got2)
		}
	}
}

func TestParseKeyupPrefix(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Direction
	}{
		{"!a", []Direction{Keyup}},
		{"a!a", []Direction{Keydown, Keyup}},
		{"a !<C-A>", []Direction{Keydown, Keyup}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.pattern, DefaultResolver)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.pattern, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("Parse(%q) produced %d matchers, want %d", tt.pattern, len(got), len(tt.want))
			continue
		}
		for i, dm := range got {
			if dm.Direction != tt.want[i] {
				t.Errorf("Parse(%q)[%d].Direction = %v, want %v", tt.pattern, i, dm.Direction, tt.want[i])
			}
		}
	}
}

func TestParseWhitespaceGroups(t *testing.T) {
	a, err := Parse("a b", DefaultResolver)
	if err != nil {
		t.Fatalf("Parse(\"a b\") returned error: %v", err)
	}
	want := seq(km('a', NoMods), km('b', NoMods))
	if !reflect.DeepEqual(a, want) {
		t.Errorf("Parse(\"a b\") = %+v, want %+v", a, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ParseErrorKind
	}{
		{"", EmptySequence},
		{"<a", UnbalancedBracket},
		{"<x-a>", UnknownModifier},
		{"<nosuchkey>", UnknownKey},
		{"!", DanglingKeyup},
	}
	for _, tt := range tests {
		_, err := Parse(tt.pattern, DefaultResolver)
		pe, ok := err.(*ParseError)
		if !ok {
			t.Errorf("Parse(%q) error = %v (%T), want *ParseError", tt.pattern, err, err)
			continue
		}
		if pe.Kind != tt.kind {
			t.Errorf("Parse(%q) error kind = %v, want %v", tt.pattern, pe.Kind, tt.kind)
		}
	}
}
