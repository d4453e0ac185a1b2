package termio

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/kungfusheep/chordbind"
)

func readOne(t *testing.T, input []byte) chordbind.KeyEvent {
	t.Helper()
	r := NewReader(bytes.NewReader(input), 20*time.Millisecond)
	ev, err := r.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey() returned error: %v", err)
	}
	return ev
}

func wantRune(ch rune, mods chordbind.Modifiers) chordbind.KeyEvent {
	code, _ := chordbind.DefaultResolver.Keycode(chordbind.KeySymbol{Kind: chordbind.KindRune, Rune: ch})
	return chordbind.KeyEvent{Keycode: code, Modifiers: mods}
}

func wantNamed(n chordbind.NamedKey, mods chordbind.Modifiers) chordbind.KeyEvent {
	code, _ := chordbind.DefaultResolver.Keycode(chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: n})
	return chordbind.KeyEvent{Keycode: code, Modifiers: mods}
}

func TestReaderPlainRune(t *testing.T) {
	got := readOne(t, []byte("j"))
	want := wantRune('j', chordbind.NoMods)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadKey() = %+v, want %+v", got, want)
	}
}

func TestReaderControlRune(t *testing.T) {
	got := readOne(t, []byte{1}) // Ctrl-A
	want := wantRune('a', chordbind.Modifiers{Control: true})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadKey() = %+v, want %+v", got, want)
	}
}

func TestReaderNamedKeys(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  chordbind.KeyEvent
	}{
		{"enter", []byte{13}, wantNamed(chordbind.NamedReturn, chordbind.NoMods)},
		{"tab", []byte{9}, wantNamed(chordbind.NamedTab, chordbind.NoMods)},
		{"backspace", []byte{127}, wantNamed(chordbind.NamedBackspace, chordbind.NoMods)},
		{"space", []byte{32}, wantNamed(chordbind.NamedSpace, chordbind.NoMods)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readOne(t, tt.bytes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadKey() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReaderCSIArrowKeys(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  chordbind.NamedKey
	}{
		{"up", []byte{27, '[', 'A'}, chordbind.NamedUp},
		{"down", []byte{27, '[', 'B'}, chordbind.NamedDown},
		{"right", []byte{27, '[', 'C'}, chordbind.NamedRight},
		{"left", []byte{27, '[', 'D'}, chordbind.NamedLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readOne(t, tt.bytes)
			want := wantNamed(tt.want, chordbind.NoMods)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ReadKey() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestReaderSS3FunctionKeys(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{27, 'O', 'P'}), 20*time.Millisecond)
	got, err := r.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey() returned error: %v", err)
	}
	code, _ := chordbind.DefaultResolver.Keycode(chordbind.KeySymbol{Kind: chordbind.KindFunction, Function: 1})
	want := chordbind.KeyEvent{Keycode: code}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadKey() = %+v, want %+v (F1 via SS3)", got, want)
	}
}

// A typed capital letter must resolve to the same keycode as its lowercase
// binding string, since chordbind.Parse lower-cases bare key tokens and
// case otherwise carries no meaning without an explicit Shift modifier.
func TestReaderUppercaseRuneNormalizedToLowercase(t *testing.T) {
	got := readOne(t, []byte("G"))
	want := wantRune('g', chordbind.NoMods)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadKey() = %+v, want %+v (case-insensitive match with a \"g\" binding)", got, want)
	}
}

// A lone Escape byte with nothing following it (end of stream) resolves to
// a plain Escape key rather than blocking forever waiting for a sequence
// that will never arrive.
func TestReaderBareEscapeAtEOF(t *testing.T) {
	got := readOne(t, []byte{27})
	want := wantNamed(chordbind.NamedEscape, chordbind.NoMods)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadKey() = %+v, want %+v", got, want)
	}
}
