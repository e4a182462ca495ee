package operation

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
)

// massEpsilon absorbs floating point noise in tonnage comparisons.
const massEpsilon = 1e-6

// recovered is automatic armor zeroed on a sibling to make room for a manual edit.
type recovered struct {
	component *loadout.ConfiguredComponent
	side      catalog.ArmorSide
	amount    int
}

// SetArmor sets the armor of one side of a component.
//
// A manual edit that lacks tonnage first frees the armor of every other
// component still under automatic distribution, then asks the distributor to
// rebalance. Undo restores the freed armor as well.
type SetArmor struct {
	state
	bus       *message.Bus
	component *loadout.ConfiguredComponent
	side      catalog.ArmorSide
	amount    int
	manual    bool

	oldAmount int
	oldAuto   bool
	recovered []recovered
}

// NewSetArmor returns an operation setting side of c to amount.
func NewSetArmor(bus *message.Bus, c *loadout.ConfiguredComponent, side catalog.ArmorSide, amount int, manual bool) *SetArmor {
	return &SetArmor{bus: bus, component: c, side: side, amount: amount, manual: manual}
}

// Component returns the target component.
func (op *SetArmor) Component() *loadout.ConfiguredComponent { return op.component }

// Side returns the target side.
func (op *SetArmor) Side() catalog.ArmorSide { return op.side }

// Amount returns the requested armor points.
func (op *SetArmor) Amount() int { return op.amount }

// Manual reports whether the edit came from the user.
func (op *SetArmor) Manual() bool { return op.manual }

// Describe implements Operation.
func (op *SetArmor) Describe() string {
	return fmt.Sprintf("set %s %s armor to %d", op.component, op.side, op.amount)
}

// Apply implements Operation.
//
// Precondition: 0 <= amount <= the side's current maximum.
// Postcondition: on error the loadout is unchanged.
func (op *SetArmor) Apply() error {
	if err := op.beginApply(op.Describe()); err != nil {
		return err
	}
	c := op.component
	l := c.Loadout()
	old, err := c.Armor(op.side)
	if err != nil {
		return fmt.Errorf("%s: %w", op.Describe(), err)
	}
	if op.amount < 0 || op.amount > c.Def().ArmorMax() {
		return fmt.Errorf("%s: maximum is %d: %w", op.Describe(), c.Def().ArmorMax(), loadout.ErrArmorOutOfRange)
	}
	limit, _ := c.ArmorMax(op.side)
	if op.amount > limit {
		return fmt.Errorf("%s: %d left on this side: %w", op.Describe(), limit, loadout.ErrArmorOutOfRange)
	}

	var freed []recovered
	need := l.ArmorMassOf(op.amount - old)
	if need > l.FreeMass()+massEpsilon {
		if !op.manual {
			return fmt.Errorf("%s: %w", op.Describe(), loadout.ErrInsufficientTonnage)
		}
		points := 0
		for _, sib := range l.Components() {
			if sib == c || !sib.HasAutomaticArmor() {
				continue
			}
			for _, side := range sib.Sides() {
				if v, _ := sib.Armor(side); v > 0 {
					freed = append(freed, recovered{component: sib, side: side, amount: v})
					points += v
				}
			}
		}
		if need > l.FreeMass()+l.ArmorMassOf(points)+massEpsilon {
			return fmt.Errorf("%s: %w", op.Describe(), loadout.ErrInsufficientTonnage)
		}
	}

	op.oldAmount = old
	op.oldAuto = c.HasAutomaticArmor()
	op.recovered = freed
	for _, r := range freed {
		_ = r.component.SetArmor(r.side, 0, false)
	}
	_ = c.SetArmor(op.side, op.amount, op.manual)
	op.applied = true

	op.bus.Post(message.ComponentMessage{Loadout: l, Component: c, Type: message.ArmorChanged, Automatic: !op.manual})
	op.postRecovered(l)
	return nil
}

// Undo implements Operation.
func (op *SetArmor) Undo() error {
	if err := op.beginUndo(op.Describe()); err != nil {
		return err
	}
	c := op.component
	l := c.Loadout()
	_ = c.SetArmor(op.side, op.oldAmount, !op.oldAuto)
	for i := len(op.recovered) - 1; i >= 0; i-- {
		r := op.recovered[i]
		_ = r.component.SetArmor(r.side, r.amount, false)
	}
	op.applied = false

	op.bus.Post(message.ComponentMessage{Loadout: l, Component: c, Type: message.ArmorChanged, Automatic: op.oldAuto})
	op.postRecovered(l)
	return nil
}

func (op *SetArmor) postRecovered(l *loadout.Loadout) {
	if len(op.recovered) == 0 {
		return
	}
	var last *loadout.ConfiguredComponent
	for _, r := range op.recovered {
		if r.component == last {
			continue
		}
		last = r.component
		op.bus.Post(message.ComponentMessage{Loadout: l, Component: r.component, Type: message.ArmorChanged, Automatic: true})
	}
	op.bus.Post(message.ComponentMessage{Loadout: l, Component: op.component, Type: message.ArmorDistributionUpdateRequest})
}

// CanCoalesce implements Operation: successive edits of the same side with
// the same manual flag merge into one history entry.
func (op *SetArmor) CanCoalesce(other Operation) bool {
	o, ok := other.(*SetArmor)
	if !ok || o == op {
		return false
	}
	return o.component == op.component && o.side == op.side && o.manual == op.manual
}

// SetArmorSymmetric sets the same armor on a location and its mirror
// location, e.g. both arms or both side torsos.
type SetArmorSymmetric struct {
	*Composite
	pair   [2]*loadout.ConfiguredComponent
	side   catalog.ArmorSide
	manual bool
}

// NewSetArmorSymmetric builds the pair of SetArmor operations for loc and its mirror.
//
// Precondition: loc has a left/right mirror; otherwise an error is returned.
func NewSetArmorSymmetric(bus *message.Bus, l *loadout.Loadout, loc catalog.Location, side catalog.ArmorSide, amount int, manual bool) (*SetArmorSymmetric, error) {
	mirror, ok := loc.Opposite()
	if !ok {
		return nil, fmt.Errorf("%s has no mirror location", loc)
	}
	a, b := l.Component(loc), l.Component(mirror)
	if a == nil || b == nil {
		return nil, fmt.Errorf("unknown location %q", loc)
	}
	desc := fmt.Sprintf("set %s and %s %s armor to %d", a, b, side, amount)
	return &SetArmorSymmetric{
		Composite: NewComposite(desc,
			NewSetArmor(bus, a, side, amount, manual),
			NewSetArmor(bus, b, side, amount, manual),
		),
		pair:   [2]*loadout.ConfiguredComponent{a, b},
		side:   side,
		manual: manual,
	}, nil
}

// CanCoalesce implements Operation.
func (op *SetArmorSymmetric) CanCoalesce(other Operation) bool {
	o, ok := other.(*SetArmorSymmetric)
	if !ok || o == op || o.side != op.side || o.manual != op.manual {
		return false
	}
	same := o.pair[0] == op.pair[0] && o.pair[1] == op.pair[1]
	swapped := o.pair[0] == op.pair[1] && o.pair[1] == op.pair[0]
	return same || swapped
}
