// Package loadout models one chassis instance being configured: a component
// per location plus the upgrade selections, with every aggregate (mass, armor,
// free slots) derived on demand from the components.
package loadout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
)

// massEpsilon absorbs floating point noise in tonnage comparisons.
const massEpsilon = 1e-6

// Upgrades is the structure, armor, heat sink and guidance selection of a loadout.
type Upgrades = catalog.UpgradeSet

// Loadout is the root aggregate of one configured chassis.
// Invariant: exactly one component per location, ordered as catalog.Locations().
type Loadout struct {
	id         uuid.UUID
	name       string
	chassis    *catalog.Chassis
	components []*ConfiguredComponent
	upgrades   Upgrades
}

// Option configures a Loadout at construction.
type Option func(*options)

type options struct {
	name string
	pods map[catalog.Location]*catalog.OmniPod
}

// WithName sets the loadout display name; the chassis name is used otherwise.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithOmniPods mounts the given pods, keyed by their own location.
func WithOmniPods(pods ...*catalog.OmniPod) Option {
	return func(o *options) {
		for _, p := range pods {
			o.pods[p.Location] = p
		}
	}
}

// New creates an empty loadout on chassis: fixed items only, zero armor,
// automatic armor everywhere.
//
// Precondition: chassis is valid and resolved; every upgrade is non-nil.
// Postcondition: for omni chassis every location has a pod of the chassis series.
func New(chassis *catalog.Chassis, upgrades Upgrades, opts ...Option) (*Loadout, error) {
	if chassis == nil {
		return nil, errors.New("loadout: New: chassis must not be nil")
	}
	if upgrades.Structure == nil || upgrades.Armor == nil || upgrades.HeatSink == nil || upgrades.Guidance == nil {
		return nil, errors.New("loadout: New: all four upgrades are required")
	}
	o := options{name: chassis.Name, pods: make(map[catalog.Location]*catalog.OmniPod)}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Loadout{
		id:         uuid.New(),
		name:       o.name,
		chassis:    chassis,
		components: make([]*ConfiguredComponent, 0, catalog.LocationCount),
		upgrades:   upgrades,
	}
	for _, loc := range catalog.Locations() {
		def := chassis.Component(loc)
		if def == nil {
			return nil, fmt.Errorf("loadout: New: chassis %q has no %s", chassis.ID, loc)
		}
		if !chassis.IsOmni() {
			l.components = append(l.components, newComponent(l, def, KindStandard, nil))
			continue
		}
		pod, ok := o.pods[loc]
		if !ok {
			return nil, fmt.Errorf("loadout: New: no omnipod for %s", loc)
		}
		if pod.Series != chassis.Series || pod.Location != loc {
			return nil, fmt.Errorf("loadout: New: omnipod %q does not fit %s %s", pod.ID, chassis.Series, loc)
		}
		l.components = append(l.components, newComponent(l, def, KindOmni, pod))
	}
	return l, nil
}

// NewFromCatalog creates an empty loadout of the chassis with the given id,
// using the chassis default upgrades and, for omni chassis, its default pods.
// Pods passed through WithOmniPods override the defaults.
func NewFromCatalog(reg *catalog.Registry, chassisID string, opts ...Option) (*Loadout, error) {
	chassis, ok := reg.Chassis(chassisID)
	if !ok {
		return nil, fmt.Errorf("loadout: chassis %q not found", chassisID)
	}
	upgrades, err := reg.DefaultUpgrades(chassis)
	if err != nil {
		return nil, err
	}
	if chassis.IsOmni() {
		opts = append([]Option{WithOmniPods(reg.DefaultPods(chassis)...)}, opts...)
	}
	return New(chassis, upgrades, opts...)
}

// Copy returns a deep copy with a fresh id. Catalog data is shared.
func (l *Loadout) Copy() *Loadout {
	cp := &Loadout{
		id:         uuid.New(),
		name:       l.name,
		chassis:    l.chassis,
		components: make([]*ConfiguredComponent, len(l.components)),
		upgrades:   l.upgrades,
	}
	for i, c := range l.components {
		cp.components[i] = c.copyTo(cp)
	}
	return cp
}

// ID returns the loadout's unique id.
func (l *Loadout) ID() uuid.UUID { return l.id }

// Name returns the display name.
func (l *Loadout) Name() string { return l.name }

// SetName renames the loadout.
func (l *Loadout) SetName(name string) { l.name = name }

// Chassis returns the chassis the loadout is built on.
func (l *Loadout) Chassis() *catalog.Chassis { return l.chassis }

// Upgrades returns the current upgrade selection.
func (l *Loadout) Upgrades() Upgrades { return l.upgrades }

// SetUpgrades replaces the upgrade selection without validation.
func (l *Loadout) SetUpgrades(u Upgrades) { l.upgrades = u }

// Component returns the component at loc, or nil for an unknown location.
func (l *Loadout) Component(loc catalog.Location) *ConfiguredComponent {
	i := loc.Index()
	if i < 0 {
		return nil
	}
	return l.components[i]
}

// Components returns every component in canonical location order.
func (l *Loadout) Components() []*ConfiguredComponent {
	return append([]*ConfiguredComponent(nil), l.components...)
}

// ItemTons returns the mass of item under the current guidance upgrade.
func (l *Loadout) ItemTons(item *catalog.Item) float64 {
	return l.upgrades.Guidance.ItemTons(item)
}

// StructureMass returns the internal structure tonnage.
func (l *Loadout) StructureMass() float64 {
	return l.upgrades.Structure.StructureMass(l.chassis.Tonnage)
}

// ArmorTotal returns the armor points summed over every component and side.
func (l *Loadout) ArmorTotal() int {
	total := 0
	for _, c := range l.components {
		total += c.ArmorTotal()
	}
	return total
}

// ArmorMass returns the tonnage of all mounted armor.
func (l *Loadout) ArmorMass() float64 {
	return l.upgrades.Armor.ArmorMass(l.ArmorTotal())
}

// ArmorMassOf returns the tonnage of the given number of armor points.
func (l *Loadout) ArmorMassOf(points int) float64 {
	return l.upgrades.Armor.ArmorMass(points)
}

// ItemsMass returns the tonnage of every fixed and equipped item.
func (l *Loadout) ItemsMass() float64 {
	total := 0.0
	for _, c := range l.components {
		for _, it := range c.AllItems() {
			total += l.ItemTons(it)
		}
	}
	return total
}

// Mass returns the total tonnage: structure, items and armor.
func (l *Loadout) Mass() float64 {
	return l.StructureMass() + l.ItemsMass() + l.ArmorMass()
}

// FreeMass returns the tonnage still available under the chassis maximum.
func (l *Loadout) FreeMass() float64 {
	return float64(l.chassis.Tonnage) - l.Mass()
}

// DynamicSlots returns the floating critical slots the structure and armor
// upgrades consume chassis-wide. Omni chassis lock these slots into their
// components instead, so they report zero here.
func (l *Loadout) DynamicSlots() int {
	if l.chassis.IsOmni() {
		return 0
	}
	return l.upgrades.Structure.DynamicSlots + l.upgrades.Armor.DynamicSlots
}

// NumCriticalSlotsUsed returns the critical slots used by all components plus dynamic slots.
func (l *Loadout) NumCriticalSlotsUsed() int {
	used := l.DynamicSlots()
	for _, c := range l.components {
		used += c.SlotsUsed()
	}
	return used
}

// NumCriticalSlotsFree returns the critical slots still free chassis-wide.
func (l *Loadout) NumCriticalSlotsFree() int {
	return l.chassis.TotalSlots() - l.NumCriticalSlotsUsed()
}

// JumpJetsMax returns the jump jet capacity: the chassis limit, or the sum
// over mounted pods for omni chassis.
func (l *Loadout) JumpJetsMax() int {
	if !l.chassis.IsOmni() {
		return l.chassis.MaxJumpJets
	}
	total := 0
	for _, c := range l.components {
		if p := c.OmniPod(); p != nil {
			total += p.JumpJets
		}
	}
	return total
}

// JumpJetsEquipped counts the jump jets mounted anywhere.
func (l *Loadout) JumpJetsEquipped() int {
	n := 0
	for _, c := range l.components {
		for _, it := range c.AllItems() {
			if it.IsJumpJet() {
				n++
			}
		}
	}
	return n
}

// Engine returns the engine in the center torso, or nil.
func (l *Loadout) Engine() *catalog.Item {
	return l.Component(catalog.LocationCenterTorso).Engine()
}

// Items returns every fixed and equipped item across all components.
func (l *Loadout) Items() []*catalog.Item {
	var out []*catalog.Item
	for _, c := range l.components {
		out = append(out, c.AllItems()...)
	}
	return out
}

// HeatSinksCount returns the number of heat sinks mounted anywhere.
func (l *Loadout) HeatSinksCount() int {
	n := 0
	for _, it := range l.Items() {
		if it.IsHeatSink() {
			n++
		}
	}
	return n
}

// CanEquipDirectly performs the component-independent legality checks for
// item: technology base, upgrade compatibility, engine rules, jump jet
// capacity and tonnage. Global slots depend on the target component and are
// checked by CanEquip.
func (l *Loadout) CanEquipDirectly(item *catalog.Item) EquipResult {
	if !item.TechBase().IsCompatible(l.chassis.Faction) {
		return reject(IncompatibleFaction, "", item)
	}
	if item.IsHeatSink() && l.upgrades.HeatSink.HeatSink != item {
		return reject(IncompatibleUpgrades, "", item)
	}
	if item.IsEngine() {
		if l.chassis.IsOmni() {
			return reject(NotSupported, "", item)
		}
		if l.Engine() != nil {
			return reject(EngineAlreadyEquipped, "", item)
		}
		if item.Rating < l.chassis.EngineMin || item.Rating > l.chassis.EngineMax {
			return reject(EngineRatingOutOfRange, "", item)
		}
	}
	if item.IsJumpJet() && l.JumpJetsEquipped() >= l.JumpJetsMax() {
		return reject(JumpJetCapacityReached, "", item)
	}
	if l.FreeMass()+massEpsilon < l.ItemTons(item) {
		return reject(TooHeavy, "", item)
	}
	return ok()
}

// CanEquip combines the global and component-local checks for adding item to c,
// including side torso room for engines and global slot availability.
//
// Precondition: c belongs to l.
func (l *Loadout) CanEquip(item *catalog.Item, c *ConfiguredComponent) EquipResult {
	if res := l.CanEquipDirectly(item); !res.OK() {
		return res
	}
	if res := c.CanEquip(item); !res.OK() {
		return res
	}
	needed := c.SlotsNeeded(item) - c.SlotsReleasedBy(item)
	if item.HasSideTorsoPresence() {
		for _, loc := range []catalog.Location{catalog.LocationLeftTorso, catalog.LocationRightTorso} {
			side := l.Component(loc)
			if side.SlotsFree() < side.ItemSlots(item.SideItem) {
				return reject(NotEnoughSlotsForXLSide, loc, item)
			}
			needed += side.ItemSlots(item.SideItem)
		}
	}
	if l.NumCriticalSlotsFree() < needed {
		return reject(NotEnoughSlots, "", item)
	}
	return ok()
}
