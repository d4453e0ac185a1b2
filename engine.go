package chordbind

import (
	"errors"
	"sync"
)

// ErrEmptySequence is returned by AddBinding/AddMapping when given a
// sequence with no matchers. Registering such a binding is a programmer
// error; the parser can never produce an empty Sequence for a non-empty
// input, so this should only be reachable by a caller constructing a
// Sequence by hand.
var ErrEmptySequence = errors.New("chordbind: binding sequence must not be empty")

// binding is one registered rule. Payload is opaque to the engine;
// Context is whatever type the host's enabled predicate wants to see.
type binding[Payload, Context any] struct {
	ID       int
	Sequence Sequence
	Action   Action[Payload]
	Enabled  func(Context) bool
}

func (b *binding[Payload, Context]) enabled(ctx Context) bool {
	if b.Enabled == nil {
		return true
	}
	return b.Enabled(ctx)
}

// Engine is the stateful matcher runtime: a registry of bindings plus a
// buffer of keys received since the last resolution. It is a
// single-threaded cooperative state machine (see SPEC_FULL.md §5) — all
// methods are synchronous, and if an Engine value is shared across
// goroutines the caller must serialize calls into it.
//
// Payload is the opaque value a Dispatch binding hands back as an Execute
// effect. Context is whatever the host's per-binding enabled predicate
// wants to inspect (editor mode, focused pane, etc.); it is opaque to the
// engine too.
type Engine[Payload, Context any] struct {
	mu            sync.Mutex
	nextID        int
	bindings      []*binding[Payload, Context]
	buffer        []KeyEvent
	maxRemapDepth int
}

// NewEngine constructs an empty Engine with the default remap recursion
// cap (64; see SPEC_FULL.md §9).
func NewEngine[Payload, Context any]() *Engine[Payload, Context] {
	return NewEngineWithOptions[Payload, Context](DefaultEngineOptions())
}

// NewEngineWithOptions constructs an empty Engine tuned by opts, typically
// loaded via LoadEngineOptions. Only MaxRemapDepth affects the Engine
// itself; FlushTimeout is consumed by Driver, not Engine, since Engine
// starts no timers of its own (SPEC_FULL.md §5).
func NewEngineWithOptions[Payload, Context any](opts EngineOptions) *Engine[Payload, Context] {
	maxRemapDepth := opts.MaxRemapDepth
	if maxRemapDepth <= 0 {
		maxRemapDepth = DefaultEngineOptions().MaxRemapDepth
	}
	return &Engine[Payload, Context]{maxRemapDepth: maxRemapDepth}
}

// SetMaxRemapDepth overrides the remap recursion cap. A remap chain deeper
// than n surfaces its remaining keys as Unhandled instead of reinjecting
// them further.
func (e *Engine[Payload, Context]) SetMaxRemapDepth(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maxRemapDepth = n
}

// AddBinding registers a Dispatch binding and returns its id. sequence
// must be non-empty.
func (e *Engine[Payload, Context]) AddBinding(sequence Sequence, enabled func(Context) bool, payload Payload) (int, error) {
	if len(sequence) == 0 {
		return 0, ErrEmptySequence
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.register(sequence, enabled, Action[Payload]{Kind: ActionDispatch, Payload: payload}), nil
}

// AddMapping registers a Remap binding and returns its id. sequence must
// be non-empty. keys is the literal key list reinjected into the engine
// when the binding matches.
func (e *Engine[Payload, Context]) AddMapping(sequence Sequence, enabled func(Context) bool, keys []KeyEvent) (int, error) {
	if len(sequence) == 0 {
		return 0, ErrEmptySequence
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.register(sequence, enabled, Action[Payload]{Kind: ActionRemap, Keys: keys}), nil
}

// register allocates an id and prepends the binding to the list, so that
// list order reflects last-registered-first — the tie-break rule for
// multiple simultaneously-ready bindings (SPEC_FULL.md §9).
func (e *Engine[Payload, Context]) register(seq Sequence, enabled func(Context) bool, action Action[Payload]) int {
	id := e.nextID
	e.nextID++
	b := &binding[Payload, Context]{ID: id, Sequence: seq, Action: action, Enabled: enabled}
	e.bindings = append([]*binding[Payload, Context]{b}, e.bindings...)
	return id
}

// KeyDown feeds one key-down event into the engine, returning the effects
// it produces. It may return nil (waiting for more input to disambiguate).
func (e *Engine[Payload, Context]) KeyDown(ctx Context, key KeyEvent) []Effect[Payload] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.keyDownLocked(ctx, key, 0)
}

// KeyUp is a no-op: it mutates no state and produces no effects. The
// current matching algorithm drives entirely from keydown buffering; see
// SPEC_FULL.md §9 ("Keyup matchers") for why this contract is preserved
// rather than extended.
func (e *Engine[Payload, Context]) KeyUp(ctx Context, key KeyEvent) []Effect[Payload] {
	return nil
}

// Flush forces resolution of any pending keys as if no further input
// could arrive (e.g. on a caller-driven timeout). See Driver for a
// ready-made timer wrapper implementing the external-timer contract this
// method assumes.
func (e *Engine[Payload, Context]) Flush(ctx Context) []Effect[Payload] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushLocked(ctx, 0)
}

// Pending returns a copy of the currently buffered (unresolved) keys, for
// introspection (e.g. rendering "g..." while a sequence is in progress).
func (e *Engine[Payload, Context]) Pending() []KeyEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]KeyEvent, len(e.buffer))
	copy(out, e.buffer)
	return out
}

// keyDownLocked implements §4.2's "Resolution policy on a new keydown".
// Candidates are evaluated against a tentative copy of the buffer before
// any engine state is mutated, so that a panicking enabled predicate (§7)
// leaves e.buffer untouched.
func (e *Engine[Payload, Context]) keyDownLocked(ctx Context, key KeyEvent, depth int) []Effect[Payload] {
	tentative := make([]KeyEvent, len(e.buffer)+1)
	copy(tentative, e.buffer)
	tentative[len(e.buffer)] = key

	ready, potential := e.candidates(ctx, tentative)

	if len(potential) > 0 {
		e.buffer = tentative
		return nil
	}
	if len(ready) > 0 {
		b := ready[0]
		e.buffer = nil
		return e.applyAction(ctx, b, depth)
	}

	// No binding can accept this extended buffer; recovery is handled by
	// flush (§4.2).
	e.buffer = tentative
	return e.flushLocked(ctx, depth)
}

// candidates evaluates every enabled binding's matcher prefix against
// events, partitioning into ready (fully matched) and potential (matched
// so far, could still extend). See §4.2 "Matching algorithm".
func (e *Engine[Payload, Context]) candidates(ctx Context, events []KeyEvent) (ready, potential []*binding[Payload, Context]) {
	for _, b := range e.bindings {
		if !b.enabled(ctx) {
			continue
		}
		if len(b.Sequence) < len(events) {
			continue
		}
		matched := true
		for i, ev := range events {
			dm := b.Sequence[i]
			if dm.Direction != Keydown || !dm.Matcher.matches(ev) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if len(events) == len(b.Sequence) {
			ready = append(ready, b)
		} else {
			potential = append(potential, b)
		}
	}
	return ready, potential
}

// applyAction dispatches a ready binding's action. A Remap action
// reinjects its keys by replacing the (already-cleared) buffer with them
// and recursively flushing, per §4.2 "Remap re-entry"; the recursion depth
// cap is an explicit, documented deviation from the original design
// (SPEC_FULL.md §9).
func (e *Engine[Payload, Context]) applyAction(ctx Context, b *binding[Payload, Context], depth int) []Effect[Payload] {
	switch b.Action.Kind {
	case ActionDispatch:
		return []Effect[Payload]{{Kind: EffectExecute, Payload: b.Action.Payload}}
	case ActionRemap:
		if depth+1 > e.maxRemapDepth {
			effects := make([]Effect[Payload], len(b.Action.Keys))
			for i, k := range b.Action.Keys {
				effects[i] = Effect[Payload]{Kind: EffectUnhandled, Key: k}
			}
			return effects
		}
		e.buffer = append([]KeyEvent(nil), b.Action.Keys...)
		return e.flushLocked(ctx, depth+1)
	default:
		return nil
	}
}

// flushLocked implements §4.2's two-pass flush: a forced pass that commits
// the longest ready match (or a single Unhandled key) against shrinking
// prefixes of the buffer, followed by a settled pass that re-feeds any
// keys shrunk off the tail as fresh keydowns.
func (e *Engine[Payload, Context]) flushLocked(ctx Context, depth int) []Effect[Payload] {
	if len(e.buffer) == 0 {
		return nil
	}

	// Snapshot and clear before running forcedPass: a ready remap resolves
	// by recursing back into flushLocked (see applyAction), and that nested
	// call may legitimately leave e.buffer holding a new pending prefix.
	// Clearing afterward would clobber that state; clearing now lets the
	// nested mutation stand.
	buf := e.buffer
	e.buffer = nil

	effects, carry := e.forcedPass(ctx, buf, depth)

	for _, k := range carry {
		effects = append(effects, e.keyDownLocked(ctx, k, depth)...)
	}
	return effects
}

// forcedPass commits exactly one resolution (a dispatch/remap covering
// some prefix of buf, or a single Unhandled key), shrinking buf from its
// tail into carry until one is found. See §4.2 "Flush algorithm".
func (e *Engine[Payload, Context]) forcedPass(ctx Context, buf []KeyEvent, depth int) (effects []Effect[Payload], carry []KeyEvent) {
	prefix := buf
	for {
		ready, _ := e.candidates(ctx, prefix)
		if len(ready) > 0 {
			effects = append(effects, e.applyAction(ctx, ready[0], depth)...)
			return effects, carry
		}
		if len(prefix) <= 1 {
			if len(prefix) == 1 {
				effects = append(effects, Effect[Payload]{Kind: EffectUnhandled, Key: prefix[0]})
			}
			return effects, carry
		}
		carry = append([]KeyEvent{prefix[len(prefix)-1]}, carry...)
		prefix = prefix[:len(prefix)-1]
	}
}
