package action

// KeyAction is the target of a key binding: a tree of single / multiple /
// nested / repeating nodes (SPEC_FULL.md §3, §4.5). Go has no sum type, so
// Variant selects which field is populated.
type KeyAction struct {
	Variant KeyActionVariant

	Single Action
	Multi  []Action
	Nested map[string]KeyAction
	Count  int
	Inner  *KeyAction
}

// KeyActionVariant identifies which KeyAction shape is populated.
type KeyActionVariant int

const (
	VariantSingle KeyActionVariant = iota
	VariantMultiple
	VariantNested
	VariantRepeating
)

// Single wraps a single action as a KeyAction.
func Single(a Action) KeyAction { return KeyAction{Variant: VariantSingle, Single: a} }

// Multiple wraps a fixed sequence of actions as a KeyAction.
func Multiple(actions ...Action) KeyAction {
	return KeyAction{Variant: VariantMultiple, Multi: actions}
}

// Nested wraps a prefix-key dispatch map as a KeyAction.
func Nested(m map[string]KeyAction) KeyAction {
	return KeyAction{Variant: VariantNested, Nested: m}
}

// Repeating wraps a KeyAction with an explicit repeat count, as produced
// by the resolver when a numeric prefix precedes a resolved binding.
func Repeating(count int, inner KeyAction) KeyAction {
	return KeyAction{Variant: VariantRepeating, Count: count, Inner: &inner}
}

// Flatten expands a KeyAction into the flat sequence of atomic actions it
// ultimately produces, applying Repeating counts and recursing through
// Multiple. Nested KeyActions have no direct action output (they only
// narrow dispatch) and flatten to nothing; the resolver never calls
// Flatten on an unresolved Nested node.
func (k KeyAction) Flatten() []Action {
	switch k.Variant {
	case VariantSingle:
		return []Action{k.Single}
	case VariantMultiple:
		return append([]Action(nil), k.Multi...)
	case VariantRepeating:
		n := k.Count
		if n <= 0 {
			n = 1
		}
		var out []Action
		for i := 0; i < n; i++ {
			if k.Inner != nil {
				out = append(out, k.Inner.Flatten()...)
			}
		}
		return out
	default:
		return nil
	}
}
