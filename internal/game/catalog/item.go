// Package catalog holds the read-only game data a loadout is assembled from:
// items, chassis skeletons, omnipods and upgrades, loaded from YAML.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Kind is the broad category of an Item.
type Kind string

// Kind constants for Item.Kind.
const (
	KindWeapon     Kind = "weapon"
	KindHeatSink   Kind = "heatsink"
	KindEngine     Kind = "engine"
	KindJumpJet    Kind = "jumpjet"
	KindAmmunition Kind = "ammunition"
	KindInternal   Kind = "internal"
	KindConsumable Kind = "consumable"
)

var validKinds = map[Kind]bool{
	KindWeapon:     true,
	KindHeatSink:   true,
	KindEngine:     true,
	KindJumpJet:    true,
	KindAmmunition: true,
	KindInternal:   true,
	KindConsumable: true,
}

// EngineType is the construction class of an engine.
type EngineType string

// EngineType constants.
const (
	EngineStandard EngineType = "std"
	EngineXL       EngineType = "xl"
	EngineLight    EngineType = "light"
)

var validEngineTypes = map[EngineType]bool{
	EngineStandard: true,
	EngineXL:       true,
	EngineLight:    true,
}

// Ids of the two structural parts that omnipod components may toggle.
const (
	LowerArmActuatorID = "lower-arm-actuator"
	HandActuatorID     = "hand-actuator"
)

// Item is an immutable catalog entry for a piece of equipment or a structural part.
type Item struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Kind      Kind          `yaml:"kind"`
	Slots     int           `yaml:"slots"`
	Tons      float64       `yaml:"tons"`
	HardPoint HardPointType `yaml:"hardpoint"`
	Faction   Faction       `yaml:"faction"`
	// Locations restricts where the item may be mounted; empty means anywhere.
	Locations []Location `yaml:"locations"`

	Rating          int        `yaml:"rating"`
	EngineType      EngineType `yaml:"engine_type"`
	HousedHeatSinks int        `yaml:"housed_heat_sinks"`
	SideItemID      string     `yaml:"side_item"`

	LargeBore bool `yaml:"large_bore"`
	Guided    bool `yaml:"guided"`

	CASE bool `yaml:"case"`

	// SideItem is the engine-internal marker placed in both side torsos.
	// Resolved from SideItemID by Registry.Resolve.
	SideItem *Item `yaml:"-"`
}

// String returns the display name.
func (i *Item) String() string {
	return i.Name
}

// Mount returns the hardpoint type the item consumes, HardPointNone if any.
func (i *Item) Mount() HardPointType {
	return i.HardPoint.orNone()
}

// TechBase returns the item faction with the zero value mapped to FactionAny.
func (i *Item) TechBase() Faction {
	return i.Faction.orAny()
}

// IsEngine reports whether the item is an engine.
func (i *Item) IsEngine() bool { return i.Kind == KindEngine }

// IsHeatSink reports whether the item is a heat sink.
func (i *Item) IsHeatSink() bool { return i.Kind == KindHeatSink }

// IsJumpJet reports whether the item is a jump jet.
func (i *Item) IsJumpJet() bool { return i.Kind == KindJumpJet }

// HasSideTorsoPresence reports whether mounting this engine also occupies both side torsos.
func (i *Item) HasSideTorsoPresence() bool {
	return i.IsEngine() && i.SideItem != nil
}

// IsToggleable reports whether the item is one of the omnipod toggleable actuators.
func (i *Item) IsToggleable() bool {
	return i.ID == LowerArmActuatorID || i.ID == HandActuatorID
}

// IsUserRemovable reports whether a user may remove the item once equipped.
// Structural internals and engine side markers can only leave with their owner.
func (i *Item) IsUserRemovable() bool {
	return i.Kind != KindInternal || i.CASE
}

// AllowedAt reports whether the item may be mounted at loc.
func (i *Item) AllowedAt(loc Location) bool {
	if len(i.Locations) == 0 {
		return true
	}
	for _, l := range i.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// AffectsHeatOrDamage reports whether adding or removing the item changes
// heat or damage output.
func (i *Item) AffectsHeatOrDamage() bool {
	switch i.Kind {
	case KindWeapon, KindHeatSink, KindEngine, KindAmmunition:
		return true
	}
	return false
}

// Validate checks that the Item satisfies its invariants.
//
// Precondition: i is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (i *Item) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[i.Kind] {
		errs = append(errs, fmt.Errorf("kind must be one of weapon, heatsink, engine, jumpjet, ammunition, internal, consumable; got %q", i.Kind))
	}
	if i.Slots < 0 {
		errs = append(errs, errors.New("slots must be >= 0"))
	}
	if i.Tons < 0 {
		errs = append(errs, errors.New("tons must be >= 0"))
	}
	if !validHardPoints[i.HardPoint.orNone()] {
		errs = append(errs, fmt.Errorf("hardpoint %q is not a valid hardpoint type", i.HardPoint))
	}
	if !validFactions[i.Faction.orAny()] {
		errs = append(errs, fmt.Errorf("faction %q is not a valid faction", i.Faction))
	}
	for _, loc := range i.Locations {
		if !loc.Valid() {
			errs = append(errs, fmt.Errorf("location %q is not a valid location", loc))
		}
	}
	if i.Kind == KindEngine {
		if i.Rating <= 0 {
			errs = append(errs, errors.New("rating must be > 0 for engines"))
		}
		if !validEngineTypes[i.EngineType] {
			errs = append(errs, fmt.Errorf("engine_type must be one of std, xl, light; got %q", i.EngineType))
		}
		if i.HousedHeatSinks < 0 {
			errs = append(errs, errors.New("housed_heat_sinks must be >= 0"))
		}
		if i.EngineType != EngineStandard && i.SideItemID == "" {
			errs = append(errs, errors.New("side_item is required for xl and light engines"))
		}
	}
	if i.CASE && i.Kind != KindInternal {
		errs = append(errs, errors.New("case items must be of kind internal"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// itemFile is the on-disk shape of an item catalog file.
type itemFile struct {
	Items []*Item `yaml:"items"`
}

// LoadItems reads all *.yaml and *.yml files from dir, parses the items listed
// in each, validates them, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Items or the first encountered error.
func LoadItems(dir string) ([]*Item, error) {
	var items []*Item
	err := forEachYAML(dir, func(path string, data []byte) error {
		var f itemFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		for _, it := range f.Items {
			if err := it.Validate(); err != nil {
				return fmt.Errorf("LoadItems: invalid item %q in %q: %w", it.ID, path, err)
			}
			items = append(items, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// forEachYAML calls fn with the contents of every YAML file directly inside dir,
// in directory order.
func forEachYAML(dir string, fn func(path string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read directory %q: %w", dir, err)
	}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read file %q: %w", path, err)
		}
		if err := fn(path, data); err != nil {
			return err
		}
	}
	return nil
}
