package operation

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
)

// ChangeOmniPod mounts a different pod on an omni component.
//
// Everything equipped on the component is removed first, then jump jets
// elsewhere until the loadout respects the new jump jet capacity, and finally
// the pod itself is swapped.
type ChangeOmniPod struct {
	*Composite
	component *loadout.ConfiguredComponent
	pod       *catalog.OmniPod
}

// NewChangeOmniPod builds the swap of c's pod to pod against the current state.
//
// Precondition: c is an omni component and pod fits its series and location.
func NewChangeOmniPod(bus *message.Bus, c *loadout.ConfiguredComponent, pod *catalog.OmniPod) (*ChangeOmniPod, error) {
	l := c.Loadout()
	if c.Kind() != loadout.KindOmni || pod == nil ||
		pod.Series != l.Chassis().Series || pod.Location != c.Location() {
		return nil, loadout.EquipResult{Type: loadout.NotSupported, Location: c.Location()}
	}
	desc := fmt.Sprintf("change %s omnipod to %s", c, pod.Name)
	op := &ChangeOmniPod{Composite: NewComposite(desc), component: c, pod: pod}

	removals := removeEquipped(bus, c)
	for _, r := range removals {
		op.Add(r)
	}

	remaining := l.JumpJetsEquipped() - countJumpJets(c.AllItems()) + countJumpJets(pod.FixedItems)
	capacity := l.JumpJetsMax() - c.OmniPod().JumpJets + pod.JumpJets
	for _, other := range l.Components() {
		if other == c || remaining <= capacity {
			continue
		}
		items := other.Items()
		for i := len(items) - 1; i >= 0 && remaining > capacity; i-- {
			if items[i].IsJumpJet() {
				op.Add(NewRemoveItem(bus, other, items[i]))
				remaining--
			}
		}
	}

	op.Add(&swapPod{bus: bus, component: c, pod: pod})
	return op, nil
}

// Pod returns the pod being mounted.
func (op *ChangeOmniPod) Pod() *catalog.OmniPod { return op.pod }

// Component returns the target component.
func (op *ChangeOmniPod) Component() *loadout.ConfiguredComponent { return op.component }

func countJumpJets(items []*catalog.Item) int {
	n := 0
	for _, it := range items {
		if it.IsJumpJet() {
			n++
		}
	}
	return n
}

// swapPod replaces the pod reference and resets the toggles to the new pod's
// defaults: every toggleable part on, as far as free slots allow.
type swapPod struct {
	state
	bus       *message.Bus
	component *loadout.ConfiguredComponent
	pod       *catalog.OmniPod

	oldPod     *catalog.OmniPod
	oldToggles map[string]bool
}

func (op *swapPod) Describe() string {
	return fmt.Sprintf("mount %s on %s", op.pod.Name, op.component)
}

func (op *swapPod) Apply() error {
	if err := op.beginApply(op.Describe()); err != nil {
		return err
	}
	c := op.component
	l := c.Loadout()
	op.oldPod = c.OmniPod()
	op.oldToggles = c.ToggleStates()

	c.SetOmniPod(op.pod)
	off := make(map[string]bool, len(op.pod.Toggleables))
	for _, t := range op.pod.Toggleables {
		off[t.ID] = false
	}
	c.ReplaceToggleStates(off)
	for _, t := range toggleOrder(op.pod.Toggleables) {
		if c.CanToggleOn(t).OK() && l.NumCriticalSlotsFree() >= c.ItemSlots(t) {
			c.SetToggleState(t, true)
		}
	}
	op.applied = true
	op.post()
	return nil
}

func (op *swapPod) Undo() error {
	if err := op.beginUndo(op.Describe()); err != nil {
		return err
	}
	op.component.SetOmniPod(op.oldPod)
	op.component.ReplaceToggleStates(op.oldToggles)
	op.applied = false
	op.post()
	return nil
}

func (op *swapPod) CanCoalesce(Operation) bool { return false }

func (op *swapPod) post() {
	c := op.component
	op.bus.Post(message.ComponentMessage{Loadout: c.Loadout(), Component: c, Type: message.OmniPodChanged})
	op.bus.Post(message.ComponentMessage{Loadout: c.Loadout(), Component: c, Type: message.ItemsChanged})
}

// toggleOrder puts the lower arm actuator ahead of the hand, which depends on it.
func toggleOrder(items []*catalog.Item) []*catalog.Item {
	out := make([]*catalog.Item, 0, len(items))
	var hand *catalog.Item
	for _, it := range items {
		if it.ID == catalog.HandActuatorID {
			hand = it
			continue
		}
		out = append(out, it)
	}
	if hand != nil {
		out = append(out, hand)
	}
	return out
}
