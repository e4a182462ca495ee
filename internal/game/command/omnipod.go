package command

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/operation"
)

// HandlePod processes the "pod" command.
// Words are expected to be "<location> <pod_id>".
//
// Precondition: e must not be nil.
// Postcondition: On success everything equipped at the location is removed,
// jump jets elsewhere are trimmed to the new capacity, and the pod is mounted.
func HandlePod(e *Editor, p ParseResult) string {
	if len(p.Words) != 2 {
		return "Usage: pod <location> <pod_id>"
	}
	c, err := e.component(p.Words[0])
	if err != nil {
		return sentence(err.Error())
	}
	pod, ok := e.catalog.OmniPod(p.Words[1].ID())
	if !ok {
		return fmt.Sprintf("Unknown omnipod %q.", p.Words[1].Text)
	}
	op, err := operation.NewChangeOmniPod(e.bus, c, pod)
	if err != nil {
		return rejection(err)
	}
	return e.push(op)
}

// toggleAliases maps short actuator names to item ids.
var toggleAliases = map[string]string{
	"lower": catalog.LowerArmActuatorID,
	"la":    catalog.LowerArmActuatorID,
	"hand":  catalog.HandActuatorID,
	"ha":    catalog.HandActuatorID,
}

// HandleToggle processes the "toggle" command.
// Words are expected to be "<location> <lower|hand> <on|off>".
func HandleToggle(e *Editor, p ParseResult) string {
	if len(p.Words) != 3 {
		return "Usage: toggle <location> <lower|hand> <on|off>"
	}
	c, err := e.component(p.Words[0])
	if err != nil {
		return sentence(err.Error())
	}
	id := p.Words[1].ID()
	if alias, ok := toggleAliases[id]; ok {
		id = alias
	}
	item, ok := e.catalog.Item(id)
	if !ok {
		return fmt.Sprintf("Unknown item %q.", p.Words[1].Text)
	}
	on, ok := p.Words[2].Switch()
	if !ok {
		return "specify on or off"
	}
	return e.push(operation.NewToggleItem(e.bus, c, item, on))
}
