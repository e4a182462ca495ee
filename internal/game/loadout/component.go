package loadout

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
)

// Kind is the closed set of component variants.
type Kind int

const (
	// KindStandard components take hardpoints and fixed items from the chassis skeleton.
	KindStandard Kind = iota
	// KindOmni components take hardpoints and part of their fixed items from the mounted pod.
	KindOmni
)

// ConfiguredComponent is the mutable state of one chassis location: equipped
// items, armor, and for omni chassis the mounted pod and toggled actuators.
//
// The exported mutators (AddItem, RemoveItem, InsertItem, SetArmor,
// SetOmniPod, SetToggleState) perform no validation. They are for operations
// that have already checked legality; use the operation package instead.
type ConfiguredComponent struct {
	loadout   *Loadout
	def       *catalog.ComponentDef
	kind      Kind
	items     []*catalog.Item
	armor     map[catalog.ArmorSide]int
	autoArmor bool
	pod       *catalog.OmniPod
	toggles   map[string]bool
}

func newComponent(l *Loadout, def *catalog.ComponentDef, kind Kind, pod *catalog.OmniPod) *ConfiguredComponent {
	c := &ConfiguredComponent{
		loadout:   l,
		def:       def,
		kind:      kind,
		armor:     make(map[catalog.ArmorSide]int, 2),
		autoArmor: true,
		pod:       pod,
		toggles:   make(map[string]bool),
	}
	for _, side := range def.Location.Sides() {
		c.armor[side] = 0
	}
	if pod != nil {
		for _, t := range pod.Toggleables {
			c.toggles[t.ID] = true
		}
	}
	return c
}

// copyTo returns a deep copy of c owned by l.
func (c *ConfiguredComponent) copyTo(l *Loadout) *ConfiguredComponent {
	cp := &ConfiguredComponent{
		loadout:   l,
		def:       c.def,
		kind:      c.kind,
		items:     append([]*catalog.Item(nil), c.items...),
		armor:     make(map[catalog.ArmorSide]int, len(c.armor)),
		autoArmor: c.autoArmor,
		pod:       c.pod,
		toggles:   make(map[string]bool, len(c.toggles)),
	}
	for side, v := range c.armor {
		cp.armor[side] = v
	}
	for id, on := range c.toggles {
		cp.toggles[id] = on
	}
	return cp
}

// Loadout returns the owning loadout.
func (c *ConfiguredComponent) Loadout() *Loadout { return c.loadout }

// Def returns the chassis skeleton for this location.
func (c *ConfiguredComponent) Def() *catalog.ComponentDef { return c.def }

// Location returns the chassis location.
func (c *ConfiguredComponent) Location() catalog.Location { return c.def.Location }

// Kind returns the component variant.
func (c *ConfiguredComponent) Kind() Kind { return c.kind }

// String returns the location name.
func (c *ConfiguredComponent) String() string { return c.def.Location.String() }

// Items returns the user-equipped items in insertion order.
//
// Postcondition: the returned slice is a copy.
func (c *ConfiguredComponent) Items() []*catalog.Item {
	return append([]*catalog.Item(nil), c.items...)
}

// FixedItems returns the items that are always present and cannot be removed.
// For omni components this is the skeleton items plus the pod items plus the
// toggled-on actuators, without lower-arm and hand actuators whenever any
// large-bore item is mounted.
func (c *ConfiguredComponent) FixedItems() []*catalog.Item {
	switch c.kind {
	case KindOmni:
		fixed := make([]*catalog.Item, 0, len(c.def.FixedItems)+4)
		fixed = append(fixed, c.def.FixedItems...)
		if c.pod != nil {
			fixed = append(fixed, c.pod.FixedItems...)
			for _, t := range c.pod.Toggleables {
				if c.toggles[t.ID] {
					fixed = append(fixed, t)
				}
			}
		}
		if !hasLargeBore(fixed) && !hasLargeBore(c.items) {
			return fixed
		}
		out := fixed[:0:0]
		for _, it := range fixed {
			if !it.IsToggleable() {
				out = append(out, it)
			}
		}
		return out
	default:
		return append([]*catalog.Item(nil), c.def.FixedItems...)
	}
}

func hasLargeBore(items []*catalog.Item) bool {
	for _, it := range items {
		if it.LargeBore {
			return true
		}
	}
	return false
}

// AllItems returns fixed items followed by user items.
func (c *ConfiguredComponent) AllItems() []*catalog.Item {
	return append(c.FixedItems(), c.items...)
}

// HardPointCount returns the number of hardpoints of type t at this location.
func (c *ConfiguredComponent) HardPointCount(t catalog.HardPointType) int {
	switch c.kind {
	case KindOmni:
		if c.pod == nil {
			return 0
		}
		return c.pod.HardPointCount(t)
	default:
		return c.def.HardPointCount(t)
	}
}

// HardPoints returns the hardpoint counts by type, omitting types with none.
func (c *ConfiguredComponent) HardPoints() map[catalog.HardPointType]int {
	out := make(map[catalog.HardPointType]int)
	for _, t := range catalog.HardPointTypes() {
		if n := c.HardPointCount(t); n > 0 {
			out[t] = n
		}
	}
	return out
}

// HardPointsUsed returns how many mounted items (fixed and equipped) use a hardpoint of type t.
func (c *ConfiguredComponent) HardPointsUsed(t catalog.HardPointType) int {
	n := 0
	for _, it := range c.AllItems() {
		if it.Mount() == t {
			n++
		}
	}
	return n
}

// Engine returns the engine mounted here, fixed or equipped, or nil.
func (c *ConfiguredComponent) Engine() *catalog.Item {
	for _, it := range c.AllItems() {
		if it.IsEngine() {
			return it
		}
	}
	return nil
}

// EngineHeatSinksMax returns how many heat sinks the local engine can house, 0 without an engine.
func (c *ConfiguredComponent) EngineHeatSinksMax() int {
	if e := c.Engine(); e != nil {
		return e.HousedHeatSinks
	}
	return 0
}

// EngineHeatSinks returns the number of equipped heat sinks currently housed
// in the local engine, capped at the engine maximum.
func (c *ConfiguredComponent) EngineHeatSinks() int {
	limit := c.EngineHeatSinksMax()
	if limit == 0 {
		return 0
	}
	n := 0
	for _, it := range c.items {
		if it.IsHeatSink() {
			n++
		}
	}
	return min(n, limit)
}

// ItemSlots returns the slot cost of item under the loadout's guidance upgrade.
func (c *ConfiguredComponent) ItemSlots(item *catalog.Item) int {
	return c.loadout.upgrades.Guidance.ItemSlots(item)
}

// SlotsUsed returns the critical slots occupied at this location: fixed and
// equipped items, minus the slots of housed heat sinks, plus any structure
// or armor slots locked to the location.
func (c *ConfiguredComponent) SlotsUsed() int {
	structure, armor := c.FloatingSlots()
	used := structure + armor
	for _, it := range c.FixedItems() {
		used += c.ItemSlots(it)
	}
	housed := c.EngineHeatSinks()
	for _, it := range c.items {
		if housed > 0 && it.IsHeatSink() {
			housed--
			continue
		}
		used += c.ItemSlots(it)
	}
	return used
}

// SlotsFree returns the critical slots still available at this location.
func (c *ConfiguredComponent) SlotsFree() int {
	return c.def.Slots - c.SlotsUsed()
}

// SlotsNeeded returns the slots item would consume if added here, accounting
// for heat sinks that the local engine can still house for free.
func (c *ConfiguredComponent) SlotsNeeded(item *catalog.Item) int {
	if item.IsHeatSink() && c.EngineHeatSinks() < c.EngineHeatSinksMax() {
		return 0
	}
	return c.ItemSlots(item)
}

// SlotsReleasedBy returns the slots of toggled-on actuators that drop out of
// the fixed items once item is mounted here.
func (c *ConfiguredComponent) SlotsReleasedBy(item *catalog.Item) int {
	if !item.LargeBore || c.kind != KindOmni {
		return 0
	}
	n := 0
	for _, it := range c.FixedItems() {
		if it.IsToggleable() {
			n += c.ItemSlots(it)
		}
	}
	return n
}

// FloatingSlots returns the structure and armor slots locked to this location.
// Standard components report zero; their dynamic slots float chassis-wide.
func (c *ConfiguredComponent) FloatingSlots() (structure, armor int) {
	if c.kind != KindOmni {
		return 0, 0
	}
	return c.def.DynamicStructureSlots, c.def.DynamicArmorSlots
}

// HasCASE reports whether a CASE item is equipped or fixed here.
func (c *ConfiguredComponent) HasCASE() bool {
	for _, it := range c.AllItems() {
		if it.CASE {
			return true
		}
	}
	return false
}

// CanEquip performs the component-local legality check for item.
//
// Postcondition: returns Success iff the location allows the item, a matching
// hardpoint is free, enough slots are free once any actuators displaced by a
// large-bore item are dropped, and no duplicate CASE would arise.
func (c *ConfiguredComponent) CanEquip(item *catalog.Item) EquipResult {
	loc := c.Location()
	if !item.AllowedAt(loc) {
		return reject(NotSupported, loc, item)
	}
	if item.CASE && c.HasCASE() {
		return reject(ComponentAlreadyHasCase, loc, item)
	}
	if t := item.Mount(); t != catalog.HardPointNone {
		if c.HardPointsUsed(t) >= c.HardPointCount(t) {
			return reject(NoFreeHardPoints, loc, item)
		}
	}
	if c.SlotsFree()+c.SlotsReleasedBy(item) < c.SlotsNeeded(item) {
		return reject(NotEnoughSlots, loc, item)
	}
	return ok()
}

// CanRemove reports whether item is equipped here and removable by the user.
func (c *ConfiguredComponent) CanRemove(item *catalog.Item) error {
	if c.indexOf(item) < 0 {
		return fmt.Errorf("%s is not equipped in %s: %w", item.Name, c.Location(), ErrItemNotPresent)
	}
	if !item.IsUserRemovable() {
		return fmt.Errorf("%s in %s cannot be removed: %w", item.Name, c.Location(), ErrItemNotPresent)
	}
	return nil
}

func (c *ConfiguredComponent) indexOf(item *catalog.Item) int {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i] == item {
			return i
		}
	}
	return -1
}

// AddItem appends item without validation.
func (c *ConfiguredComponent) AddItem(item *catalog.Item) {
	c.items = append(c.items, item)
}

// InsertItem places item at index without validation; an out of range index appends.
func (c *ConfiguredComponent) InsertItem(index int, item *catalog.Item) {
	if index < 0 || index >= len(c.items) {
		c.items = append(c.items, item)
		return
	}
	c.items = append(c.items, nil)
	copy(c.items[index+1:], c.items[index:])
	c.items[index] = item
}

// RemoveItem removes the last occurrence of item without validation.
//
// Postcondition: returns the index the item was removed from, or -1 if absent.
func (c *ConfiguredComponent) RemoveItem(item *catalog.Item) int {
	i := c.indexOf(item)
	if i < 0 {
		return -1
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return i
}

// Sides returns the armor sides this location has.
func (c *ConfiguredComponent) Sides() []catalog.ArmorSide {
	return c.def.Location.Sides()
}

func (c *ConfiguredComponent) checkSide(side catalog.ArmorSide) error {
	if _, ok := c.armor[side]; !ok {
		return fmt.Errorf("%s has no %s armor: %w", c.Location(), side, ErrUnknownArmorSide)
	}
	return nil
}

// Armor returns the armor points on side.
func (c *ConfiguredComponent) Armor(side catalog.ArmorSide) (int, error) {
	if err := c.checkSide(side); err != nil {
		return 0, err
	}
	return c.armor[side], nil
}

// ArmorMax returns the most armor side may currently hold. Front and back
// share the skeleton budget, so each is limited by what the other already uses.
func (c *ConfiguredComponent) ArmorMax(side catalog.ArmorSide) (int, error) {
	if err := c.checkSide(side); err != nil {
		return 0, err
	}
	if c.def.Location.IsTwoSided() {
		return c.def.ArmorMax() - c.armor[side.Other()], nil
	}
	return c.def.ArmorMax(), nil
}

// ArmorTotal returns the sum of armor over all sides.
func (c *ConfiguredComponent) ArmorTotal() int {
	total := 0
	for _, v := range c.armor {
		total += v
	}
	return total
}

// HasAutomaticArmor reports whether armor here is managed by automatic distribution.
func (c *ConfiguredComponent) HasAutomaticArmor() bool {
	return c.autoArmor
}

// SetArmor stores amount on side without range or tonnage checks. The
// automatic-armor flag becomes !manual.
func (c *ConfiguredComponent) SetArmor(side catalog.ArmorSide, amount int, manual bool) error {
	if err := c.checkSide(side); err != nil {
		return err
	}
	c.armor[side] = amount
	c.autoArmor = !manual
	return nil
}

// OmniPod returns the mounted pod; nil for standard components.
func (c *ConfiguredComponent) OmniPod() *catalog.OmniPod {
	return c.pod
}

// SetOmniPod replaces the mounted pod without validation. Toggle states are left untouched.
func (c *ConfiguredComponent) SetOmniPod(pod *catalog.OmniPod) {
	c.pod = pod
}

// ToggleState reports whether the toggleable item is currently switched on.
func (c *ConfiguredComponent) ToggleState(item *catalog.Item) bool {
	return c.toggles[item.ID]
}

// ToggleStates returns a copy of all toggle states keyed by item id.
func (c *ConfiguredComponent) ToggleStates() map[string]bool {
	out := make(map[string]bool, len(c.toggles))
	for id, on := range c.toggles {
		out[id] = on
	}
	return out
}

// SetToggleState switches a toggleable item without validation.
func (c *ConfiguredComponent) SetToggleState(item *catalog.Item, on bool) {
	c.toggles[item.ID] = on
}

// ReplaceToggleStates overwrites all toggle states without validation.
func (c *ConfiguredComponent) ReplaceToggleStates(states map[string]bool) {
	c.toggles = make(map[string]bool, len(states))
	for id, on := range states {
		c.toggles[id] = on
	}
}

// CanToggleOn performs the component-level check for switching item on.
// The free global slot is checked by the caller against the whole loadout.
func (c *ConfiguredComponent) CanToggleOn(item *catalog.Item) EquipResult {
	loc := c.Location()
	if c.kind != KindOmni || c.pod == nil || !c.pod.CanToggle(item) {
		return reject(NotSupported, loc, item)
	}
	if item.ID == catalog.HandActuatorID && !c.toggles[catalog.LowerArmActuatorID] {
		return reject(NotSupported, loc, item)
	}
	if hasLargeBore(c.items) {
		return reject(LargeBoreWeaponActuatorConflict, loc, item)
	}
	if c.toggles[item.ID] {
		return ok()
	}
	if c.SlotsFree() < c.ItemSlots(item) {
		return reject(NotEnoughSlots, loc, item)
	}
	return ok()
}
