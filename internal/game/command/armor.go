package command

import (
	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/operation"
)

// HandleArmor processes the "armor" and "armor-sym" commands.
// Words are "<location> [front|back] <points>"; the side defaults to front on
// torso locations. Edits from the editor are always manual.
//
// Precondition: e must not be nil.
// Postcondition: When symmetric is set the location and its mirror change
// together or not at all.
func HandleArmor(e *Editor, p ParseResult, symmetric bool) string {
	usage := "Usage: armor <location> [front|back] <points>"
	if symmetric {
		usage = "Usage: armor-sym <location> [front|back] <points>"
	}
	if len(p.Words) < 2 || len(p.Words) > 3 {
		return usage
	}
	loc, err := p.Words[0].Location()
	if err != nil {
		return sentence(err.Error())
	}
	side := catalog.SideOnly
	if loc.IsTwoSided() {
		side = catalog.SideFront
	}
	if len(p.Words) == 3 {
		if side, err = p.Words[1].Side(); err != nil {
			return sentence(err.Error())
		}
	}
	amount, err := p.Words[len(p.Words)-1].Points()
	if err != nil {
		return sentence(err.Error())
	}

	if !symmetric {
		return e.push(operation.NewSetArmor(e.bus, e.loadout.Component(loc), side, amount, true))
	}
	op, err := operation.NewSetArmorSymmetric(e.bus, e.loadout, loc, side, amount, true)
	if err != nil {
		return sentence(err.Error())
	}
	return e.push(op)
}
