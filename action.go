package chordbind

// ActionKind tags the two things a binding can do once its sequence has
// fully matched.
type ActionKind uint8

const (
	ActionDispatch ActionKind = iota
	ActionRemap
)

// Action is either Dispatch(payload) — hand an opaque payload back to the
// caller as an Execute effect — or Remap(keys) — reinject a literal key
// list back through the engine. Payload is meaningless when Kind is
// ActionRemap, and Keys is meaningless when Kind is ActionDispatch.
type Action[Payload any] struct {
	Kind    ActionKind
	Payload Payload
	Keys    []KeyEvent
}

// EffectKind tags the two externally visible outcomes of feeding keys
// through an Engine.
type EffectKind uint8

const (
	EffectExecute EffectKind = iota
	EffectUnhandled
)

// Effect is one externally visible result of a KeyDown/KeyUp/Flush call.
// Payload is meaningful only when Kind is EffectExecute; Key is meaningful
// only when Kind is EffectUnhandled.
type Effect[Payload any] struct {
	Kind    EffectKind
	Payload Payload
	Key     KeyEvent
}
