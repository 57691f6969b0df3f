package pluginhost

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writePlugin(t *testing.T, dir, name, code string) {
	t.Helper()
	pluginDir := filepath.Join(dir, name)
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	manifest := `{"name":"` + name + `","version":"0.1.0","main":"init.lua"}`
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "init.lua"), []byte(code), 0o644); err != nil {
		t.Fatalf("write init.lua: %v", err)
	}
}

func TestDispatchCallsNamedFunction(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "greeter", `
function greet(name)
    return "hello " .. name
end
`)

	h := New(WithPaths(dir))
	ctx := context.Background()
	if err := h.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	err := h.Dispatch(ctx, `{"plugin":"greeter","fn":"greet","args":["vellum"]}`)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	result := h.LastResult()
	if result == "" {
		t.Fatalf("expected a recorded result envelope")
	}
}

func TestDispatchUnknownPluginRecordsError(t *testing.T) {
	h := New(WithPaths(t.TempDir()))
	ctx := context.Background()
	if err := h.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	err := h.Dispatch(ctx, `{"plugin":"missing","fn":"noop"}`)
	if err == nil {
		t.Fatalf("expected an error for an unknown plugin")
	}
	if h.LastResult() == "" {
		t.Fatalf("expected an error envelope to be recorded")
	}
}

func TestDispatchRejectsMalformedPayload(t *testing.T) {
	h := New(WithPaths(t.TempDir()))
	if err := h.Dispatch(context.Background(), `not json`); err == nil {
		t.Fatalf("expected an error for a non-JSON payload")
	}
}

func TestDispatchRejectsMissingFields(t *testing.T) {
	h := New(WithPaths(t.TempDir()))
	if err := h.Dispatch(context.Background(), `{"plugin":"x"}`); err == nil {
		t.Fatalf("expected an error when fn is missing")
	}
}
