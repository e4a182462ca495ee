package operation

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
)

// ToggleItem switches a lower arm or hand actuator on an omni component.
// Switching the lower arm off switches the hand off too.
type ToggleItem struct {
	state
	bus       *message.Bus
	component *loadout.ConfiguredComponent
	item      *catalog.Item
	on        bool

	oldLowerArm bool
	oldHand     bool
}

// NewToggleItem returns an operation switching item on or off on c.
func NewToggleItem(bus *message.Bus, c *loadout.ConfiguredComponent, item *catalog.Item, on bool) *ToggleItem {
	return &ToggleItem{bus: bus, component: c, item: item, on: on}
}

// Describe implements Operation.
func (op *ToggleItem) Describe() string {
	mode := "off"
	if op.on {
		mode = "on"
	}
	return fmt.Sprintf("toggle %s %s on %s", op.item.Name, mode, op.component)
}

// Apply implements Operation.
//
// Precondition: switching on needs a free critical slot on the whole loadout
// as well as the component-level permission.
func (op *ToggleItem) Apply() error {
	if err := op.beginApply(op.Describe()); err != nil {
		return err
	}
	c := op.component
	l := c.Loadout()
	pod := c.OmniPod()
	if c.Kind() != loadout.KindOmni || pod == nil || !pod.CanToggle(op.item) {
		return fmt.Errorf("%s: %w", op.Describe(), loadout.EquipResult{Type: loadout.NotSupported, Location: c.Location(), Item: op.item})
	}
	if op.on && !c.ToggleState(op.item) {
		if res := c.CanToggleOn(op.item); !res.OK() {
			return fmt.Errorf("%s: %w", op.Describe(), res)
		}
		if l.NumCriticalSlotsFree() < c.ItemSlots(op.item) {
			return fmt.Errorf("%s: %w", op.Describe(), loadout.EquipResult{Type: loadout.NotEnoughSlots, Item: op.item})
		}
	}

	op.oldLowerArm = c.ToggleStates()[catalog.LowerArmActuatorID]
	op.oldHand = c.ToggleStates()[catalog.HandActuatorID]

	c.SetToggleState(op.item, op.on)
	if !op.on && op.item.ID == catalog.LowerArmActuatorID {
		if hand := podToggleable(pod, catalog.HandActuatorID); hand != nil {
			c.SetToggleState(hand, false)
		}
	}
	op.applied = true
	op.bus.Post(message.ComponentMessage{Loadout: l, Component: c, Type: message.ItemsChanged})
	return nil
}

// Undo implements Operation. The lower arm is restored before the hand when
// switching parts back on, and after it when switching them back off.
func (op *ToggleItem) Undo() error {
	if err := op.beginUndo(op.Describe()); err != nil {
		return err
	}
	c := op.component
	pod := c.OmniPod()
	lower := podToggleable(pod, catalog.LowerArmActuatorID)
	hand := podToggleable(pod, catalog.HandActuatorID)
	set := func(item *catalog.Item, on bool) {
		if item != nil {
			c.SetToggleState(item, on)
		}
	}
	if op.on {
		set(hand, op.oldHand)
		set(lower, op.oldLowerArm)
	} else {
		set(lower, op.oldLowerArm)
		set(hand, op.oldHand)
	}
	op.applied = false
	op.bus.Post(message.ComponentMessage{Loadout: c.Loadout(), Component: c, Type: message.ItemsChanged})
	return nil
}

// CanCoalesce implements Operation.
func (op *ToggleItem) CanCoalesce(Operation) bool { return false }

func podToggleable(pod *catalog.OmniPod, id string) *catalog.Item {
	if pod == nil {
		return nil
	}
	for _, t := range pod.Toggleables {
		if t.ID == id {
			return t
		}
	}
	return nil
}
