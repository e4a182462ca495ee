package operation

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
)

// SetUpgrades changes the upgrade selection of a loadout. Nil fields of the
// requested set keep the current choice.
type SetUpgrades struct {
	state
	bus     *message.Bus
	loadout *loadout.Loadout
	want    loadout.Upgrades

	old loadout.Upgrades
}

// NewSetUpgrades returns an operation selecting want on l.
func NewSetUpgrades(bus *message.Bus, l *loadout.Loadout, want loadout.Upgrades) *SetUpgrades {
	return &SetUpgrades{bus: bus, loadout: l, want: want}
}

// Describe implements Operation.
func (op *SetUpgrades) Describe() string {
	var names []string
	for _, u := range []*catalog.Upgrade{op.want.Structure, op.want.Armor, op.want.HeatSink, op.want.Guidance} {
		if u != nil {
			names = append(names, u.Name)
		}
	}
	return "set upgrades " + strings.Join(names, ", ")
}

func (op *SetUpgrades) merged() loadout.Upgrades {
	next := op.loadout.Upgrades()
	if op.want.Structure != nil {
		next.Structure = op.want.Structure
	}
	if op.want.Armor != nil {
		next.Armor = op.want.Armor
	}
	if op.want.HeatSink != nil {
		next.HeatSink = op.want.HeatSink
	}
	if op.want.Guidance != nil {
		next.Guidance = op.want.Guidance
	}
	return next
}

func (op *SetUpgrades) reject(format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op.Describe(), fmt.Sprintf(format, args...), loadout.ErrEquipRejected)
}

// Apply implements Operation.
//
// Precondition: each upgrade is of the matching type and technology base.
// Omni chassis keep their structure and armor; the heat sink type only
// changes while no heat sinks are mounted.
// Postcondition: on error the loadout is unchanged.
func (op *SetUpgrades) Apply() error {
	if err := op.beginApply(op.Describe()); err != nil {
		return err
	}
	l := op.loadout
	cur := l.Upgrades()
	next := op.merged()
	chassis := l.Chassis()

	checks := []struct {
		u   *catalog.Upgrade
		typ catalog.UpgradeType
	}{
		{next.Structure, catalog.UpgradeStructure},
		{next.Armor, catalog.UpgradeArmor},
		{next.HeatSink, catalog.UpgradeHeatSink},
		{next.Guidance, catalog.UpgradeGuidance},
	}
	for _, ch := range checks {
		if ch.u.Type != ch.typ {
			return op.reject("%s is not a %s upgrade", ch.u.Name, ch.typ)
		}
		if !ch.u.Faction.IsCompatible(chassis.Faction) {
			return op.reject("%s: %s", ch.u.Name, loadout.IncompatibleFaction)
		}
	}
	if chassis.IsOmni() && (next.Structure != cur.Structure || next.Armor != cur.Armor) {
		return op.reject("omni chassis have fixed structure and armor")
	}
	if next.HeatSink != cur.HeatSink && l.HeatSinksCount() > 0 {
		return op.reject("remove all heat sinks before changing the heat sink type")
	}

	l.SetUpgrades(next)
	if err := op.verify(l); err != nil {
		l.SetUpgrades(cur)
		return err
	}
	op.old = cur
	op.applied = true
	op.bus.Post(message.UpgradesMessage{Loadout: l})
	return nil
}

func (op *SetUpgrades) verify(l *loadout.Loadout) error {
	if l.FreeMass() < -massEpsilon {
		return op.reject("%s", loadout.TooHeavy)
	}
	if l.NumCriticalSlotsFree() < 0 {
		return op.reject("%s", loadout.NotEnoughSlots)
	}
	for _, c := range l.Components() {
		if c.SlotsFree() < 0 {
			return op.reject("%s in %s", loadout.NotEnoughSlots, c)
		}
	}
	return nil
}

// Undo implements Operation.
func (op *SetUpgrades) Undo() error {
	if err := op.beginUndo(op.Describe()); err != nil {
		return err
	}
	op.loadout.SetUpgrades(op.old)
	op.applied = false
	op.bus.Post(message.UpgradesMessage{Loadout: op.loadout})
	return nil
}

// CanCoalesce implements Operation.
func (op *SetUpgrades) CanCoalesce(Operation) bool { return false }
