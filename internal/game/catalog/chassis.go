package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// HeadArmorMax caps head armor regardless of its hit points.
const HeadArmorMax = 18

// Variant distinguishes chassis with fixed hardpoints from those built on omnipods.
type Variant string

// Variant constants.
const (
	VariantStandard Variant = "standard"
	VariantOmni     Variant = "omni"
)

// ComponentDef is the skeleton of one chassis location.
type ComponentDef struct {
	Location     Location              `yaml:"location"`
	Slots        int                   `yaml:"slots"`
	HitPoints    int                   `yaml:"hit_points"`
	HardPoints   map[HardPointType]int `yaml:"hardpoints"`
	FixedItemIDs []string              `yaml:"fixed_items"`
	// Omni chassis have their structure and armor slots locked in place.
	DynamicStructureSlots int `yaml:"dynamic_structure_slots"`
	DynamicArmorSlots     int `yaml:"dynamic_armor_slots"`

	// FixedItems is resolved from FixedItemIDs by Registry.Resolve.
	FixedItems []*Item `yaml:"-"`
}

// ArmorMax returns the maximum total armor of the location: twice its hit
// points, with the head capped at HeadArmorMax.
func (c *ComponentDef) ArmorMax() int {
	limit := 2 * c.HitPoints
	if c.Location == LocationHead && limit > HeadArmorMax {
		return HeadArmorMax
	}
	return limit
}

// HardPointCount returns the number of hardpoints of type t.
func (c *ComponentDef) HardPointCount(t HardPointType) int {
	return c.HardPoints[t]
}

// Chassis is the skeleton a loadout is assembled on.
type Chassis struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Series  string  `yaml:"series"`
	Tonnage int     `yaml:"tonnage"`
	Faction Faction `yaml:"faction"`
	Variant Variant `yaml:"variant"`
	// MaxJumpJets applies to standard chassis; omni chassis sum their pods.
	MaxJumpJets     int                 `yaml:"max_jump_jets"`
	EngineMin       int                 `yaml:"engine_min"`
	EngineMax       int                 `yaml:"engine_max"`
	Components      []*ComponentDef     `yaml:"components"`
	DefaultPodIDs   map[Location]string `yaml:"default_pods"`
	DefaultUpgrades DefaultUpgrades     `yaml:"upgrades"`
}

// DefaultUpgrades names the upgrade ids a fresh loadout of the chassis starts with.
type DefaultUpgrades struct {
	Structure string `yaml:"structure"`
	Armor     string `yaml:"armor"`
	HeatSink  string `yaml:"heat_sink"`
	Guidance  string `yaml:"guidance"`
}

// IsOmni reports whether the chassis mounts interchangeable omnipods.
func (c *Chassis) IsOmni() bool {
	return c.Variant == VariantOmni
}

// Component returns the skeleton for loc, or nil if the chassis lacks it.
func (c *Chassis) Component(loc Location) *ComponentDef {
	for _, cd := range c.Components {
		if cd.Location == loc {
			return cd
		}
	}
	return nil
}

// TotalSlots returns the sum of critical slots over every location.
func (c *Chassis) TotalSlots() int {
	total := 0
	for _, cd := range c.Components {
		total += cd.Slots
	}
	return total
}

// ArmorMax returns the sum of the per-location armor maxima.
func (c *Chassis) ArmorMax() int {
	total := 0
	for _, cd := range c.Components {
		total += cd.ArmorMax()
	}
	return total
}

// Validate checks that the Chassis satisfies its invariants.
//
// Precondition: c is non-nil.
// Postcondition: returns nil iff all fields are valid and every location is present exactly once.
func (c *Chassis) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.Tonnage <= 0 {
		errs = append(errs, errors.New("tonnage must be > 0"))
	}
	if c.Variant != VariantStandard && c.Variant != VariantOmni {
		errs = append(errs, fmt.Errorf("variant must be standard or omni; got %q", c.Variant))
	}
	if !validFactions[c.Faction.orAny()] {
		errs = append(errs, fmt.Errorf("faction %q is not a valid faction", c.Faction))
	}
	if c.MaxJumpJets < 0 {
		errs = append(errs, errors.New("max_jump_jets must be >= 0"))
	}
	if c.Variant == VariantStandard && c.EngineMin > c.EngineMax {
		errs = append(errs, errors.New("engine_min must not exceed engine_max"))
	}
	if c.Variant == VariantOmni && c.Series == "" {
		errs = append(errs, errors.New("series is required for omni chassis"))
	}
	seen := make(map[Location]bool, LocationCount)
	for _, cd := range c.Components {
		if !cd.Location.Valid() {
			errs = append(errs, fmt.Errorf("component location %q is not valid", cd.Location))
			continue
		}
		if seen[cd.Location] {
			errs = append(errs, fmt.Errorf("component %q defined twice", cd.Location))
		}
		seen[cd.Location] = true
		if cd.Slots <= 0 {
			errs = append(errs, fmt.Errorf("component %q: slots must be > 0", cd.Location))
		}
		if cd.HitPoints <= 0 {
			errs = append(errs, fmt.Errorf("component %q: hit_points must be > 0", cd.Location))
		}
		for t, n := range cd.HardPoints {
			if !validHardPoints[t] || t == HardPointNone {
				errs = append(errs, fmt.Errorf("component %q: hardpoint type %q is not valid", cd.Location, t))
			}
			if n < 0 {
				errs = append(errs, fmt.Errorf("component %q: hardpoint count must be >= 0", cd.Location))
			}
		}
	}
	for _, loc := range locations {
		if !seen[loc] {
			errs = append(errs, fmt.Errorf("component %q is missing", loc))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("chassis validation failed: %v", errs)
	}
	return nil
}

type chassisFile struct {
	Chassis []*Chassis `yaml:"chassis"`
}

// LoadChassis reads every YAML file in dir and returns the validated chassis listed in them.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Chassis or the first encountered error.
func LoadChassis(dir string) ([]*Chassis, error) {
	var out []*Chassis
	err := forEachYAML(dir, func(path string, data []byte) error {
		var f chassisFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("LoadChassis: cannot parse file %q: %w", path, err)
		}
		for _, c := range f.Chassis {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("LoadChassis: invalid chassis %q in %q: %w", c.ID, path, err)
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
