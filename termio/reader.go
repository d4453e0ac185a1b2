// Package termio adapts a raw terminal byte stream into chordbind.KeyEvent
// values, and puts the terminal into the raw mode that makes byte-at-a-time
// reading possible in the first place.
package termio

import (
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/kungfusheep/chordbind"
)

// Reader turns bytes read from r into chordbind.KeyEvents, decoding CSI and
// SS3 escape sequences for arrows, function keys, Home/End, Insert/Delete,
// PageUp/PageDown and Shift+Tab; Return, Tab, Backspace and Space come from
// single bytes. Pause and CapsLock are never produced. It resolves keys through the same
// chordbind.DefaultResolver a Parse call would use, so patterns parsed from
// binding strings and keys read from a terminal agree on numeric codes.
type Reader struct {
	bytes   chan byte
	errCh   chan error
	lastErr error

	timeout              time.Duration
	parseEscapeSequences bool
}

// NewReader creates a Reader and starts a background goroutine pumping
// bytes from r. timeout is used to distinguish a standalone Escape key
// press from the start of an escape sequence: once ESC is seen, the
// Reader waits up to timeout for a following byte before concluding the
// key was Escape alone. The same timeout bounds the gap between bytes
// within a sequence, so a sequence truncated by a terminal disconnect
// degrades to Escape rather than hanging ReadKey forever.
func NewReader(r io.Reader, timeout time.Duration) *Reader {
	if timeout <= 0 {
		timeout = 50 * time.Millisecond
	}
	rd := &Reader{
		bytes:                make(chan byte, 64),
		errCh:                make(chan error, 1),
		timeout:              timeout,
		parseEscapeSequences: true,
	}
	go rd.pump(r)
	return rd
}

// pump reads from src until it errors, forwarding every byte individually
// over r.bytes. Decoupling the read loop from ReadKey this way is what
// lets ReadKey apply a short per-byte timeout while waiting on the rest of
// an escape sequence, since src.Read itself has no notion of a deadline.
func (r *Reader) pump(src io.Reader) {
	chunk := make([]byte, 32)
	for {
		n, err := src.Read(chunk)
		for i := 0; i < n; i++ {
			r.bytes <- chunk[i]
		}
		if err != nil {
			r.errCh <- err
			close(r.bytes)
			return
		}
	}
}

// SetParseEscapeSequences configures whether ESC bytes are inspected for a
// following escape sequence. Disabling it removes the timeout delay on a
// bare Escape key, at the cost of never recognizing arrow/function keys.
func (r *Reader) SetParseEscapeSequences(parse bool) {
	r.parseEscapeSequences = parse
}

// ReadKey reads and decodes the next key event, blocking until one byte is
// available or the stream ends.
func (r *Reader) ReadKey() (chordbind.KeyEvent, error) {
	b, ok := <-r.bytes
	if !ok {
		return chordbind.KeyEvent{}, r.readErr()
	}

	if b == 27 {
		if !r.parseEscapeSequences {
			return namedEvent(chordbind.NamedEscape, chordbind.NoMods), nil
		}
		return r.readEscapeSequence(), nil
	}

	return r.singleByteEvent(b), nil
}

// readErr returns the error that ended the pump goroutine, caching it so
// repeated calls after EOF don't block on an already-drained errCh.
func (r *Reader) readErr() error {
	if r.lastErr == nil {
		r.lastErr = <-r.errCh
	}
	return r.lastErr
}

// nextByteTimeout waits up to r.timeout for the next pumped byte. ok is
// false on timeout or on a closed stream, both of which end whatever
// escape sequence is currently being decoded.
func (r *Reader) nextByteTimeout() (byte, bool) {
	select {
	case b, ok := <-r.bytes:
		return b, ok
	case <-time.After(r.timeout):
		return 0, false
	}
}

func (r *Reader) readEscapeSequence() chordbind.KeyEvent {
	next, ok := r.nextByteTimeout()
	if !ok {
		return namedEvent(chordbind.NamedEscape, chordbind.NoMods)
	}

	switch next {
	case 'O':
		third, ok := r.nextByteTimeout()
		if !ok {
			return namedEvent(chordbind.NamedEscape, chordbind.NoMods)
		}
		return parseSS3(third)
	case '[':
		var body []byte
		for len(body) < 10 {
			c, ok := r.nextByteTimeout()
			if !ok {
				break
			}
			body = append(body, c)
			if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '~' {
				break
			}
		}
		return parseCSI(string(body))
	}

	if next >= 32 && next < 127 {
		return chordbind.KeyEvent{Keycode: int(normalizeByte(next)), Modifiers: chordbind.Modifiers{Alt: true}}
	}
	return namedEvent(chordbind.NamedEscape, chordbind.NoMods)
}

func (r *Reader) singleByteEvent(b byte) chordbind.KeyEvent {
	switch {
	case b == 13 || b == 10:
		return namedEvent(chordbind.NamedReturn, chordbind.NoMods)
	case b == 9:
		return namedEvent(chordbind.NamedTab, chordbind.NoMods)
	case b == 127 || b == 8:
		return namedEvent(chordbind.NamedBackspace, chordbind.NoMods)
	case b == 32:
		return namedEvent(chordbind.NamedSpace, chordbind.NoMods)
	case b < 27:
		return runeEvent(rune('a'+b-1), chordbind.Modifiers{Control: true})
	default:
		return runeEvent(rune(normalizeByte(b)), chordbind.NoMods)
	}
}

// normalizeByte lower-cases ASCII letters to match parser.go's
// normalizeRune: case carries no semantic meaning on a bare key unless a
// modifier (Shift) encodes it explicitly, so a binding for "G" and a typed
// capital G must resolve to the same keycode.
func normalizeByte(b byte) byte {
	return byte(unicode.ToLower(rune(b)))
}

func parseCSI(body string) chordbind.KeyEvent {
	if body == "" {
		return namedEvent(chordbind.NamedEscape, chordbind.NoMods)
	}

	switch body {
	case "A":
		return namedEvent(chordbind.NamedUp, chordbind.NoMods)
	case "B":
		return namedEvent(chordbind.NamedDown, chordbind.NoMods)
	case "C":
		return namedEvent(chordbind.NamedRight, chordbind.NoMods)
	case "D":
		return namedEvent(chordbind.NamedLeft, chordbind.NoMods)
	case "H":
		return namedEvent(chordbind.NamedHome, chordbind.NoMods)
	case "F":
		return namedEvent(chordbind.NamedEnd, chordbind.NoMods)
	case "Z":
		return namedEvent(chordbind.NamedTab, chordbind.Modifiers{Shift: true})
	}

	if len(body) >= 4 && body[0] == '1' && body[1] == ';' {
		mods := parseModifier(body[2])
		switch body[3] {
		case 'A':
			return namedEvent(chordbind.NamedUp, mods)
		case 'B':
			return namedEvent(chordbind.NamedDown, mods)
		case 'C':
			return namedEvent(chordbind.NamedRight, mods)
		case 'D':
			return namedEvent(chordbind.NamedLeft, mods)
		case 'H':
			return namedEvent(chordbind.NamedHome, mods)
		case 'F':
			return namedEvent(chordbind.NamedEnd, mods)
		}
	}

	if strings.HasSuffix(body, "~") {
		return parseTilde(body[:len(body)-1])
	}

	return namedEvent(chordbind.NamedEscape, chordbind.NoMods)
}

func parseTilde(body string) chordbind.KeyEvent {
	mods := chordbind.NoMods
	numStr := body
	if idx := strings.IndexByte(body, ';'); idx != -1 {
		if idx+1 < len(body) {
			mods = parseModifier(body[idx+1])
		}
		numStr = body[:idx]
	}

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return namedEvent(chordbind.NamedEscape, chordbind.NoMods)
	}

	switch n {
	case 1, 7:
		return namedEvent(chordbind.NamedHome, mods)
	case 2:
		return namedEvent(chordbind.NamedInsert, mods)
	case 3:
		return namedEvent(chordbind.NamedDelete, mods)
	case 4, 8:
		return namedEvent(chordbind.NamedEnd, mods)
	case 5:
		return namedEvent(chordbind.NamedPageUp, mods)
	case 6:
		return namedEvent(chordbind.NamedPageDown, mods)
	case 11, 12, 13, 14, 15:
		return functionEvent(n-10, mods)
	case 17, 18, 19, 20, 21:
		return functionEvent(n-11, mods)
	case 23, 24:
		return functionEvent(n-12, mods)
	}

	return namedEvent(chordbind.NamedEscape, mods)
}

func parseSS3(b byte) chordbind.KeyEvent {
	switch b {
	case 'H':
		return namedEvent(chordbind.NamedHome, chordbind.NoMods)
	case 'F':
		return namedEvent(chordbind.NamedEnd, chordbind.NoMods)
	case 'A':
		return namedEvent(chordbind.NamedUp, chordbind.NoMods)
	case 'B':
		return namedEvent(chordbind.NamedDown, chordbind.NoMods)
	case 'C':
		return namedEvent(chordbind.NamedRight, chordbind.NoMods)
	case 'D':
		return namedEvent(chordbind.NamedLeft, chordbind.NoMods)
	case 'P', 'Q', 'R', 'S':
		return functionEvent(int(b-'P')+1, chordbind.NoMods)
	default:
		return namedEvent(chordbind.NamedEscape, chordbind.NoMods)
	}
}

// parseModifier decodes the terminal's "1 + (shift?1:0) + (alt?2:0) +
// (ctrl?4:0)" modifier-number encoding used in CSI sequences like
// "\x1b[1;5A".
func parseModifier(b byte) chordbind.Modifiers {
	n := int(b - '1')
	return chordbind.Modifiers{
		Shift:   n&1 != 0,
		Alt:     n&2 != 0,
		Control: n&4 != 0,
	}
}

func runeEvent(ch rune, mods chordbind.Modifiers) chordbind.KeyEvent {
	sym := chordbind.KeySymbol{Kind: chordbind.KindRune, Rune: ch}
	return toKeyEvent(sym, mods)
}

func namedEvent(n chordbind.NamedKey, mods chordbind.Modifiers) chordbind.KeyEvent {
	sym := chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: n}
	return toKeyEvent(sym, mods)
}

func functionEvent(n int, mods chordbind.Modifiers) chordbind.KeyEvent {
	sym := chordbind.KeySymbol{Kind: chordbind.KindFunction, Function: n}
	return toKeyEvent(sym, mods)
}

// toKeyEvent resolves sym through chordbind.DefaultResolver so the codes in
// the returned KeyEvent match what Parse(pattern, chordbind.DefaultResolver)
// would produce for the same logical key.
func toKeyEvent(sym chordbind.KeySymbol, mods chordbind.Modifiers) chordbind.KeyEvent {
	ev := chordbind.KeyEvent{Modifiers: mods}
	if code, ok := chordbind.DefaultResolver.Keycode(sym); ok {
		ev.Keycode = code
		return ev
	}
	if code, ok := chordbind.DefaultResolver.Scancode(sym); ok {
		ev.Scancode = code
	}
	return ev
}
