package termio

import (
	"os"

	"golang.org/x/term"
)

// RawTerminal puts an fd into raw mode for the duration of its lifetime.
// Restore must be called to return the terminal to its original state;
// callers typically defer it immediately after a successful MakeRaw.
type RawTerminal struct {
	fd    int
	state *term.State
}

// MakeRaw switches fd into raw mode, disabling line buffering and signal
// generation so individual key presses reach the process as bytes.
func MakeRaw(fd int) (*RawTerminal, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawTerminal{fd: fd, state: state}, nil
}

// Restore returns the terminal to the state it was in before MakeRaw.
func (t *RawTerminal) Restore() error {
	return term.Restore(t.fd, t.state)
}

// Stdin is a convenience for the common case of reading keys from the
// process's own controlling terminal.
func Stdin() int {
	return int(os.Stdin.Fd())
}

// IsTerminal reports whether fd refers to a terminal, so hosts can decide
// whether raw-mode key capture is even possible (e.g. when stdin has been
// redirected from a file or pipe).
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
