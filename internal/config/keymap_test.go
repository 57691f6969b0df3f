package config

import (
	"testing"

	"github.com/vellum-editor/vellum/internal/action"
)

func newTestConfigWithKeys(t *testing.T, keys map[string]any) *Config {
	t.Helper()
	cfg := New(WithWatcher(false), WithSchemaValidation(false))
	if err := cfg.Set("keys", keys); err != nil {
		t.Fatalf("Set(keys): %v", err)
	}
	return cfg
}

func TestKeymapManagerLoadDefaultsThenOverride(t *testing.T) {
	cfg := newTestConfigWithKeys(t, map[string]any{
		"normal": map[string]any{
			"x": "move-down",
		},
	})

	km := NewKeymapManager(cfg, nil)
	if err := km.LoadDefaults(); err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	if err := km.LoadFromConfig(); err != nil {
		t.Fatalf("LoadFromConfig: %v", err)
	}

	binding, ok := km.Keymap().Bindings[action.Normal]["x"]
	if !ok {
		t.Fatalf("expected a binding for 'x' in normal mode")
	}
	got := binding.Flatten()
	if len(got) != 1 || got[0].Kind != action.MoveDown {
		t.Fatalf("expected overridden 'x' to move down, got %+v", got)
	}
}

func TestParseKeyActionParameterized(t *testing.T) {
	ka, err := parseKeyAction(map[string]any{
		"quit": map[string]any{"force": true},
	})
	if err != nil {
		t.Fatalf("parseKeyAction: %v", err)
	}
	actions := ka.Flatten()
	if len(actions) != 1 || actions[0].Kind != action.Quit || !actions[0].Force {
		t.Fatalf("expected a forced quit action, got %+v", actions)
	}
}

func TestParseKeyActionRepeating(t *testing.T) {
	ka, err := parseKeyAction([]any{3, "move-down"})
	if err != nil {
		t.Fatalf("parseKeyAction: %v", err)
	}
	if ka.Variant != action.VariantRepeating || ka.Count != 3 {
		t.Fatalf("expected a repeating key action with count 3, got %+v", ka)
	}
}

func TestParseKeyActionNested(t *testing.T) {
	ka, err := parseKeyAction(map[string]any{
		"g": map[string]any{
			"g": "move-to-top",
		},
	})
	if err != nil {
		t.Fatalf("parseKeyAction: %v", err)
	}
	if ka.Variant != action.VariantNested {
		t.Fatalf("expected a nested key action, got %+v", ka)
	}
	if _, ok := ka.Nested["g"]; !ok {
		t.Fatalf("expected nested map to contain 'g', got %+v", ka.Nested)
	}
}

func TestParseKeyActionMultiple(t *testing.T) {
	ka, err := parseKeyAction([]any{"move-down", "move-down"})
	if err != nil {
		t.Fatalf("parseKeyAction: %v", err)
	}
	if ka.Variant != action.VariantMultiple || len(ka.Multi) != 2 {
		t.Fatalf("expected two multiple actions, got %+v", ka)
	}
}

func TestParseKeyActionUnknownNameErrors(t *testing.T) {
	if _, err := parseKeyAction("not-a-real-action"); err == nil {
		t.Fatalf("expected an error for an unknown action name")
	}
}
