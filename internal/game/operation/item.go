package operation

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
)

var sideTorsos = []catalog.Location{catalog.LocationLeftTorso, catalog.LocationRightTorso}

// placement is one item removed from a component, remembered so undo can put
// it back at the same position.
type placement struct {
	component *loadout.ConfiguredComponent
	item      *catalog.Item
	index     int
}

// itemBase holds what AddItem and RemoveItem share: the target, the bus, and
// the engine bookkeeping that spans the side torsos.
type itemBase struct {
	state
	bus       *message.Bus
	component *loadout.ConfiguredComponent
	item      *catalog.Item

	removed     []placement
	numEngineHS int
}

func (b *itemBase) post(c *loadout.ConfiguredComponent, t message.Type, item *catalog.Item) {
	b.bus.Post(message.ComponentMessage{Loadout: c.Loadout(), Component: c, Type: t, Item: item})
}

// add appends the item and, for engines with side torso presence, a marker in
// each side torso.
func (b *itemBase) add() {
	l := b.component.Loadout()
	b.component.AddItem(b.item)
	b.post(b.component, message.ItemAdded, b.item)
	if !b.item.HasSideTorsoPresence() {
		return
	}
	for _, loc := range sideTorsos {
		side := l.Component(loc)
		side.AddItem(b.item.SideItem)
		b.post(side, message.ItemAdded, b.item.SideItem)
	}
}

// unadd reverses add.
func (b *itemBase) unadd() {
	l := b.component.Loadout()
	if b.item.HasSideTorsoPresence() {
		for i := len(sideTorsos) - 1; i >= 0; i-- {
			side := l.Component(sideTorsos[i])
			side.RemoveItem(b.item.SideItem)
			b.post(side, message.ItemRemoved, b.item.SideItem)
		}
	}
	b.component.RemoveItem(b.item)
	b.post(b.component, message.ItemRemoved, b.item)
}

// remove takes the item out. An engine takes its side markers and the heat
// sinks it houses with it; the count of the latter is kept in numEngineHS.
func (b *itemBase) remove() {
	c := b.component
	l := c.Loadout()
	b.removed = b.removed[:0]
	b.numEngineHS = 0

	take := func(target *loadout.ConfiguredComponent, item *catalog.Item) {
		i := target.RemoveItem(item)
		b.removed = append(b.removed, placement{component: target, item: item, index: i})
		b.post(target, message.ItemRemoved, item)
	}

	if b.item.IsEngine() {
		if b.item.HasSideTorsoPresence() {
			for _, loc := range sideTorsos {
				take(l.Component(loc), b.item.SideItem)
			}
		}
		housed := c.EngineHeatSinks()
		items := c.Items()
		for i := len(items) - 1; i >= 0 && b.numEngineHS < housed; i-- {
			if items[i].IsHeatSink() {
				take(c, items[i])
				b.numEngineHS++
			}
		}
	}
	take(c, b.item)
}

// restore reverses remove, reinserting in reverse order at the recorded indices.
func (b *itemBase) restore() {
	for i := len(b.removed) - 1; i >= 0; i-- {
		p := b.removed[i]
		p.component.InsertItem(p.index, p.item)
		b.post(p.component, message.ItemAdded, p.item)
	}
}

// Item returns the item being added or removed.
func (b *itemBase) Item() *catalog.Item { return b.item }

// Component returns the target component.
func (b *itemBase) Component() *loadout.ConfiguredComponent { return b.component }

// CanCoalesce implements Operation. Item operations never coalesce.
func (b *itemBase) CanCoalesce(Operation) bool { return false }

// AddItem equips an item on a component.
type AddItem struct {
	itemBase
}

// NewAddItem returns an operation equipping item on c.
func NewAddItem(bus *message.Bus, c *loadout.ConfiguredComponent, item *catalog.Item) *AddItem {
	return &AddItem{itemBase{bus: bus, component: c, item: item}}
}

// Describe implements Operation.
func (op *AddItem) Describe() string {
	return fmt.Sprintf("add %s to %s", op.item.Name, op.component)
}

// Apply implements Operation.
//
// Postcondition: on error the loadout is unchanged and the error unwraps to
// loadout.ErrEquipRejected.
func (op *AddItem) Apply() error {
	if err := op.beginApply(op.Describe()); err != nil {
		return err
	}
	l := op.component.Loadout()
	if res := l.CanEquip(op.item, op.component); !res.OK() {
		return fmt.Errorf("%s: %w", op.Describe(), res)
	}
	op.add()
	op.applied = true
	op.adviseCASE(l)
	return nil
}

// adviseCASE posts a warning when CASE is added next to an Inner Sphere XL
// engine, which is destroyed with either side torso regardless of CASE.
func (op *AddItem) adviseCASE(l *loadout.Loadout) {
	if !op.item.CASE {
		return
	}
	engine := l.Engine()
	if engine == nil || engine.EngineType != catalog.EngineXL || engine.TechBase() != catalog.FactionInnerSphere {
		return
	}
	op.bus.Post(message.NotificationMessage{
		Loadout:  l,
		Severity: message.SeverityWarning,
		Text:     fmt.Sprintf("%s in %s has no effect with %s: losing a side torso destroys the engine", op.item.Name, op.component, engine.Name),
	})
}

// Undo implements Operation.
func (op *AddItem) Undo() error {
	if err := op.beginUndo(op.Describe()); err != nil {
		return err
	}
	op.unadd()
	op.applied = false
	return nil
}

// RemoveItem takes an equipped item off a component.
type RemoveItem struct {
	itemBase
}

// NewRemoveItem returns an operation removing item from c.
func NewRemoveItem(bus *message.Bus, c *loadout.ConfiguredComponent, item *catalog.Item) *RemoveItem {
	return &RemoveItem{itemBase{bus: bus, component: c, item: item}}
}

// Describe implements Operation.
func (op *RemoveItem) Describe() string {
	return fmt.Sprintf("remove %s from %s", op.item.Name, op.component)
}

// HousedHeatSinks returns how many housed heat sinks the last Apply removed along with an engine.
func (op *RemoveItem) HousedHeatSinks() int { return op.numEngineHS }

// Apply implements Operation.
func (op *RemoveItem) Apply() error {
	if err := op.beginApply(op.Describe()); err != nil {
		return err
	}
	if err := op.component.CanRemove(op.item); err != nil {
		return fmt.Errorf("%s: %w", op.Describe(), err)
	}
	op.remove()
	op.applied = true
	return nil
}

// Undo implements Operation.
func (op *RemoveItem) Undo() error {
	if err := op.beginUndo(op.Describe()); err != nil {
		return err
	}
	op.restore()
	op.applied = false
	return nil
}

// removeEquipped builds a RemoveItem for every user-removable item on c.
// Heat sinks housed by an equipped engine are left to the engine removal.
func removeEquipped(bus *message.Bus, c *loadout.ConfiguredComponent) []Operation {
	items := c.Items()
	skip := 0
	for _, it := range items {
		if it.IsEngine() {
			skip = c.EngineHeatSinks()
		}
	}
	var ops []Operation
	for _, it := range items {
		if !it.IsUserRemovable() {
			continue
		}
		if it.IsHeatSink() && skip > 0 {
			skip--
			continue
		}
		ops = append(ops, NewRemoveItem(bus, c, it))
	}
	return ops
}
