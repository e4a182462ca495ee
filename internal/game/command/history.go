package command

import (
	"errors"

	"github.com/cory-johannsen/mechlab/internal/game/operation"
)

// HandleUndo reverts the most recent change.
func HandleUndo(e *Editor) string {
	op := e.stack.NextUndo()
	if err := e.stack.Undo(); err != nil {
		if errors.Is(err, operation.ErrNothingToUndo) {
			return "Nothing to undo."
		}
		return rejection(err)
	}
	return "Undid: " + op.Describe() + "."
}

// HandleRedo re-applies the most recently undone change.
func HandleRedo(e *Editor) string {
	op := e.stack.NextRedo()
	if err := e.stack.Redo(); err != nil {
		if errors.Is(err, operation.ErrNothingToRedo) {
			return "Nothing to redo."
		}
		return rejection(err)
	}
	return "Redid: " + op.Describe() + "."
}

// HandleRename renames the loadout. Names are not part of the history.
func HandleRename(e *Editor, name string) string {
	if name == "" {
		return "Usage: rename <name>"
	}
	e.loadout.SetName(name)
	return "Renamed to " + name + "."
}
