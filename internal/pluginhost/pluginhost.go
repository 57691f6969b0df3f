// Package pluginhost bridges the event loop's PluginCommand action onto the
// Lua plugin runtime in internal/plugin, decoding and encoding the JSON
// envelopes that cross that boundary with tidwall/gjson and tidwall/sjson
// rather than round-tripping through Go structs the plugin system has no
// fixed schema for.
//
// Grounded on original_source/src/plugin/runtime.rs and metadata.rs (the
// original's message-passing surface: a plugin call addresses one loaded
// plugin by name, names a function, and carries a loosely-typed argument
// list) and internal/plugin/lua for the actual Lua embedding, kept as-is
// since it is already general-purpose, teacher-authored runtime scaffolding
// with no business logic to rewrite.
package pluginhost

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vellum-editor/vellum/internal/plugin"
)

// Host loads and activates every plugin discovered on the configured search
// paths, then dispatches PluginCommand action payloads to them. It satisfies
// internal/eventloop.PluginHost.
type Host struct {
	manager    *plugin.Manager
	lastResult string
}

// Option configures a Host.
type Option func(*plugin.ManagerConfig)

// WithPaths overrides the plugin search paths.
func WithPaths(paths ...string) Option {
	return func(c *plugin.ManagerConfig) { c.PluginPaths = paths }
}

// New creates a Host with the teacher's default manager configuration
// (auto-activate on load, plugin paths under the user config/data dirs and
// the project's .vellum/plugins directory).
func New(opts ...Option) *Host {
	cfg := plugin.DefaultManagerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Host{manager: plugin.NewManager(cfg)}
}

// LoadAll discovers and loads every plugin on the search path, auto-activating
// per the manager's configuration. Per-plugin load errors are aggregated but
// do not prevent the editor from starting.
func (h *Host) LoadAll(ctx context.Context) error {
	return h.manager.LoadAll(ctx)
}

// Shutdown deactivates and unloads every loaded plugin in reverse load order.
func (h *Host) Shutdown(ctx context.Context) error {
	return h.manager.UnloadAll(ctx)
}

// LastResult returns the JSON response envelope produced by the most recent
// Dispatch call, for surfacing in the status line or a dialog.
func (h *Host) LastResult() string {
	return h.lastResult
}

// Dispatch decodes a PluginCommand action's Text payload as a JSON object
// shaped {"plugin": "<name>", "fn": "<global function>", "args": [...]},
// calls that function on the named plugin's Lua state, and records a
// {"plugin","fn","result"|"error"} envelope built with sjson as LastResult.
//
// gjson.Get is used instead of json.Unmarshal because the args array is
// untyped and heterogeneous across plugins; gjson walks it without requiring
// a Go struct shaped to match every plugin's call signature.
func (h *Host) Dispatch(ctx context.Context, command string) error {
	if !gjson.Valid(command) {
		return fmt.Errorf("pluginhost: command payload is not valid JSON: %q", command)
	}

	parsed := gjson.Parse(command)
	name := parsed.Get("plugin").String()
	fn := parsed.Get("fn").String()
	if name == "" || fn == "" {
		return fmt.Errorf("pluginhost: command payload missing plugin/fn fields: %q", command)
	}

	var args []interface{}
	parsed.Get("args").ForEach(func(_, v gjson.Result) bool {
		args = append(args, v.Value())
		return true
	})

	host, ok := h.manager.Get(name)
	if !ok {
		return h.recordError(name, fn, fmt.Errorf("%w: %s", plugin.ErrPluginNotFound, name))
	}

	results, err := host.Call(fn, args...)
	if err != nil {
		return h.recordError(name, fn, err)
	}

	envelope := "{}"
	envelope, _ = sjson.Set(envelope, "plugin", name)
	envelope, _ = sjson.Set(envelope, "fn", fn)
	envelope, _ = sjson.Set(envelope, "result", results)
	h.lastResult = envelope
	return nil
}

func (h *Host) recordError(name, fn string, err error) error {
	envelope := "{}"
	envelope, _ = sjson.Set(envelope, "plugin", name)
	envelope, _ = sjson.Set(envelope, "fn", fn)
	envelope, _ = sjson.Set(envelope, "error", err.Error())
	h.lastResult = envelope
	return err
}

// Manager exposes the underlying plugin manager for callers that need
// direct access (command palette listing active plugins, :PluginReload).
func (h *Host) Manager() *plugin.Manager {
	return h.manager
}
