package executor

import "github.com/vellum-editor/vellum/internal/action"

// commandSet is the known colon-command vocabulary, matched by
// internal/command against either an exact name or a concatenation of
// single-character prefixes (so "wq" resolves to write+quit, "bn" to
// buffer-next). Order matters: it is the tie-break when two commands
// share a first letter.
var commandSet = []string{
	"write",
	"write-quit",
	"quit",
	"edit",
	"buffer-next",
	"buffer-previous",
}

// actionsForCommand expands one resolved command name (plus the force
// flag carried by the whole command line) into the Action sequence it
// performs.
func actionsForCommand(name string, force bool) []action.Action {
	switch name {
	case "write":
		return []action.Action{action.NewSave()}
	case "quit":
		return []action.Action{action.NewQuit(force)}
	case "write-quit":
		return []action.Action{action.NewSave(), action.NewQuit(force)}
	case "edit":
		return []action.Action{action.NewOpenFile("")}
	case "buffer-next":
		return []action.Action{action.NewNextBuffer()}
	case "buffer-previous":
		return []action.Action{action.NewPrevBuffer()}
	default:
		return nil
	}
}
