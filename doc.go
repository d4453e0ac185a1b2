// Package chordbind is an input binding engine for a modal text editor.
//
// It parses binding strings such as "ab", "<C-w>j" or "Ctrl+Shift+k" into
// normalized matcher sequences (see Parse), and matches a stream of key
// events against a registry of such sequences (see Engine), producing
// Execute or Unhandled effects. Bindings may dispatch an opaque payload or
// remap to another key sequence that is re-fed through the engine.
//
// The package is agnostic of actual keyboard layouts: callers inject a
// Resolver that maps KeySymbol values to numeric keycodes or scancodes.
// Terminal/OS key capture, the dispatch target, and the timer driving
// Engine.Flush are all external to this package; see package termio and
// Driver for concrete, swappable implementations of those pieces.
package chordbind
