package config

import (
	"fmt"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/config/notify"
	ourkeymap "github.com/vellum-editor/vellum/internal/keymap"
)

// KeymapManager builds an internal/keymap.Keymap from this config's `keys`
// table, per SPEC_FULL.md §4.12's serialized KeyAction schema: a string
// names a parameterless action, an object `{action: params}` names a
// parameterized one, an array is Multiple, a two-element array whose first
// element is an integer is Repeating(n, inner), and an object whose keys are
// themselves key-strings (rather than a recognized action name) is Nested.
type KeymapManager struct {
	cfg      *Config
	notifier *notify.Notifier
	km       *ourkeymap.Keymap
}

// NewKeymapManager creates a KeymapManager over cfg, notifying through
// notifier when the keymap is reloaded. Only stores references; does not
// itself read configuration or register callbacks.
func NewKeymapManager(cfg *Config, notifier *notify.Notifier) *KeymapManager {
	return &KeymapManager{cfg: cfg, notifier: notifier, km: ourkeymap.New()}
}

// Keymap returns the keymap built so far (defaults plus any config
// overrides applied via LoadFromConfig).
func (m *KeymapManager) Keymap() *ourkeymap.Keymap {
	return m.km
}

// LoadDefaults seeds the keymap with the editor's built-in bindings,
// lowest priority, loaded before any user configuration.
func (m *KeymapManager) LoadDefaults() error {
	m.km = ourkeymap.Default()
	return nil
}

// LoadFromConfig overlays the `keys` table (one sub-table per mode) onto
// the current keymap, overriding any default binding for the same
// mode/key-string pair.
func (m *KeymapManager) LoadFromConfig() error {
	raw, ok := m.cfg.Get("keys")
	if !ok {
		return nil
	}
	modes, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("config: keys must be a table of modes, got %T", raw)
	}

	for modeName, rawBindings := range modes {
		mode, ok := modeByName[modeName]
		if !ok {
			return fmt.Errorf("config: keys.%s: unknown mode", modeName)
		}
		bindings, ok := rawBindings.(map[string]any)
		if !ok {
			return fmt.Errorf("config: keys.%s must be a table of key-strings", modeName)
		}
		for keyString, spec := range bindings {
			ka, err := parseKeyAction(spec)
			if err != nil {
				return fmt.Errorf("config: keys.%s.%s: %w", modeName, keyString, err)
			}
			m.km.Bind(mode, keyString, ka)
		}
	}

	if m.notifier != nil {
		m.notifier.NotifyReload("keys")
	}
	return nil
}

var modeByName = map[string]action.Mode{
	"normal":       action.Normal,
	"insert":       action.Insert,
	"command":      action.CommandMode,
	"search":       action.Search,
	"visual":       action.Visual,
	"visual_line":  action.VisualLine,
	"visual_block": action.VisualBlock,
}

// actionBuilder constructs an Action from a params table (nil for
// parameterless actions).
type actionBuilder func(params map[string]any) (action.Action, error)

var actionsByName = map[string]actionBuilder{
	"move-up":                   noParams(action.NewMoveUp),
	"move-down":                 noParams(action.NewMoveDown),
	"move-left":                 noParams(action.NewMoveLeft),
	"move-right":                noParams(action.NewMoveRight),
	"move-line-start":           noParams(action.NewMoveLineStart),
	"move-line-end":             noParams(action.NewMoveLineEnd),
	"move-to-top":               noParams(action.NewMoveToTop),
	"move-to-bottom":            noParams(action.NewMoveToBottom),
	"move-to-next-word":         noParams(action.NewMoveToNextWord),
	"move-to-prev-word":         noParams(action.NewMoveToPrevWord),
	"move-line-to-viewport-center": noParams(action.NewMoveLineToViewportCenter),
	"delete-current-line":      noParams(action.NewDeleteCurrentLine),
	"delete-previous-char":     noParams(action.NewDeletePreviousChar),
	"delete-word":              noParams(action.NewDeleteWord),
	"undo":                     noParams(action.NewUndo),
	"save":                     noParams(action.NewSave),
	"insert-tab":               noParams(action.NewInsertTab),
	"insert-new-line":          noParams(action.NewInsertNewLine),
	"insert-line-below-cursor": noParams(action.NewInsertLineBelowCursor),
	"insert-line-above-cursor": noParams(action.NewInsertLineAboveCursor),
	"insert-line-at-cursor":    noParams(action.NewInsertLineAtCursor),
	"file-picker":              noParams(action.NewFilePicker),
	"close-dialog":             noParams(action.NewCloseDialog),
	"refresh-diagnostics":      noParams(action.NewRefreshDiagnostics),
	"hover":                    noParams(action.NewHover),
	"go-to-definition":         noParams(action.NewGoToDefinition),
	"suspend":                  noParams(action.NewSuspend),
	"toggle-wrap":              noParams(action.NewToggleWrap),
	"increase-left":            noParams(action.NewIncreaseLeft),
	"decrease-left":            noParams(action.NewDecreaseLeft),
	"dump-buffer":              noParams(action.NewDumpBuffer),
	"next-buffer":              noParams(action.NewNextBuffer),
	"prev-buffer":              noParams(action.NewPrevBuffer),
	"close-buffer":             noParams(action.NewCloseBuffer),
	"page-up":                  noParams(action.NewPageUp),
	"page-down":                noParams(action.NewPageDown),
	"find-next":                noParams(action.NewFindNext),
	"find-prev":                noParams(action.NewFindPrev),

	"quit": func(p map[string]any) (action.Action, error) {
		force, _ := p["force"].(bool)
		return action.NewQuit(force), nil
	},
	"enter-mode": func(p map[string]any) (action.Action, error) {
		name, _ := p["mode"].(string)
		mode, ok := modeByName[name]
		if !ok {
			return action.Action{}, fmt.Errorf("enter-mode: unknown mode %q", name)
		}
		return action.NewEnterMode(mode), nil
	},
	"save-as": func(p map[string]any) (action.Action, error) {
		path, _ := p["path"].(string)
		return action.NewSaveAs(path), nil
	},
	"go-to-line": func(p map[string]any) (action.Action, error) {
		n := intParam(p["n"])
		pos := action.PositionTop
		switch s, _ := p["pos"].(string); s {
		case "center":
			pos = action.PositionCenter
		case "bottom":
			pos = action.PositionBottom
		}
		return action.NewGoToLine(n, pos), nil
	},
	"scroll-up": func(p map[string]any) (action.Action, error) {
		return action.NewScrollUp(intParam(p["n"])), nil
	},
	"scroll-down": func(p map[string]any) (action.Action, error) {
		return action.NewScrollDown(intParam(p["n"])), nil
	},
	"open-buffer": func(p map[string]any) (action.Action, error) {
		name, _ := p["name"].(string)
		return action.NewOpenBuffer(name), nil
	},
	"open-file": func(p map[string]any) (action.Action, error) {
		path, _ := p["path"].(string)
		return action.NewOpenFile(path), nil
	},
	"command": func(p map[string]any) (action.Action, error) {
		cmd, _ := p["cmd"].(string)
		return action.NewCommand(cmd), nil
	},
	"plugin-command": func(p map[string]any) (action.Action, error) {
		cmd, _ := p["cmd"].(string)
		return action.NewPluginCommand(cmd), nil
	},
	"print": func(p map[string]any) (action.Action, error) {
		msg, _ := p["msg"].(string)
		return action.NewPrint(msg), nil
	},
}

func noParams(ctor func() action.Action) actionBuilder {
	return func(map[string]any) (action.Action, error) { return ctor(), nil }
}

func intParam(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// parseKeyAction converts one `keys.<mode>.<key-string>` value into a
// action.KeyAction tree.
func parseKeyAction(spec any) (action.KeyAction, error) {
	switch v := spec.(type) {
	case string:
		return parseNamedAction(v, nil)

	case []any:
		if len(v) == 2 {
			if n, ok := asInt(v[0]); ok {
				inner, err := parseKeyAction(v[1])
				if err != nil {
					return action.KeyAction{}, err
				}
				return action.Repeating(n, inner), nil
			}
		}
		actions := make([]action.Action, 0, len(v))
		for _, item := range v {
			ka, err := parseKeyAction(item)
			if err != nil {
				return action.KeyAction{}, err
			}
			actions = append(actions, ka.Flatten()...)
		}
		return action.Multiple(actions...), nil

	case map[string]any:
		if len(v) == 1 {
			for name, params := range v {
				if _, known := actionsByName[name]; known {
					pmap, _ := params.(map[string]any)
					ka, err := parseNamedAction(name, pmap)
					if err != nil {
						return action.KeyAction{}, err
					}
					return ka, nil
				}
			}
		}
		nested := make(map[string]action.KeyAction, len(v))
		for key, sub := range v {
			ka, err := parseKeyAction(sub)
			if err != nil {
				return action.KeyAction{}, err
			}
			nested[key] = ka
		}
		return action.Nested(nested), nil

	default:
		return action.KeyAction{}, fmt.Errorf("unsupported key action value of type %T", spec)
	}
}

func parseNamedAction(name string, params map[string]any) (action.KeyAction, error) {
	builder, ok := actionsByName[name]
	if !ok {
		return action.KeyAction{}, fmt.Errorf("unknown action %q", name)
	}
	a, err := builder(params)
	if err != nil {
		return action.KeyAction{}, err
	}
	return action.Single(a), nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
