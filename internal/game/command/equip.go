package command

import (
	"github.com/cory-johannsen/mechlab/internal/game/operation"
)

// HandleAdd processes the "add" command.
// Words are expected to be "<item_id> <location>".
//
// Precondition: e must not be nil.
// Postcondition: On success the item is equipped through the history and a
// confirmation is returned. On failure the loadout is unchanged and the
// returned string names the reason.
func HandleAdd(e *Editor, p ParseResult) string {
	if len(p.Words) != 2 {
		return "Usage: add <item_id> <location>"
	}
	item, err := e.item(p.Words[0])
	if err != nil {
		return sentence(err.Error())
	}
	c, err := e.component(p.Words[1])
	if err != nil {
		return sentence(err.Error())
	}
	return e.push(operation.NewAddItem(e.bus, c, item))
}

// HandleRemove processes the "remove" command.
// Words are expected to be "<item_id> <location>".
//
// Precondition: e must not be nil.
// Postcondition: On success the last equipped instance of the item is removed;
// removing an engine also removes its side torso parts and housed heat sinks.
func HandleRemove(e *Editor, p ParseResult) string {
	if len(p.Words) != 2 {
		return "Usage: remove <item_id> <location>"
	}
	item, err := e.item(p.Words[0])
	if err != nil {
		return sentence(err.Error())
	}
	c, err := e.component(p.Words[1])
	if err != nil {
		return sentence(err.Error())
	}
	return e.push(operation.NewRemoveItem(e.bus, c, item))
}

// HandleStrip processes the "strip" command: every equipped item and all
// armor leave the location as one undoable change.
func HandleStrip(e *Editor, p ParseResult) string {
	if len(p.Words) != 1 {
		return "Usage: strip <location>"
	}
	c, err := e.component(p.Words[0])
	if err != nil {
		return sentence(err.Error())
	}
	return e.push(operation.NewStripComponent(e.bus, c))
}
