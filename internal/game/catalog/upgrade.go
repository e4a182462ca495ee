package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UpgradeType selects which of the four upgrade families an Upgrade belongs to.
type UpgradeType string

// UpgradeType constants.
const (
	UpgradeStructure UpgradeType = "structure"
	UpgradeArmor     UpgradeType = "armor"
	UpgradeHeatSink  UpgradeType = "heat_sink"
	UpgradeGuidance  UpgradeType = "guidance"
)

// Upgrade is a chassis-wide construction choice. Only the fields relevant to
// its Type are meaningful.
type Upgrade struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Type    UpgradeType `yaml:"type"`
	Faction Faction     `yaml:"faction"`
	// DynamicSlots are floating critical slots consumed anywhere on the chassis.
	DynamicSlots int `yaml:"dynamic_slots"`

	// Structure: fraction of chassis tonnage spent on internal structure.
	MassFraction float64 `yaml:"mass_fraction"`
	// Armor: armor points per ton.
	PointsPerTon float64 `yaml:"points_per_ton"`
	// Heat sink: the heat sink item the loadout must use.
	HeatSinkID string `yaml:"heat_sink"`
	// Guidance: added to every guided weapon.
	ExtraSlots int     `yaml:"extra_slots"`
	ExtraTons  float64 `yaml:"extra_tons"`

	// HeatSink is resolved from HeatSinkID by Registry.Resolve.
	HeatSink *Item `yaml:"-"`
}

// String returns the display name.
func (u *Upgrade) String() string {
	return u.Name
}

// StructureMass returns the structure tonnage for a chassis of the given tonnage.
func (u *Upgrade) StructureMass(tonnage int) float64 {
	return float64(tonnage) * u.MassFraction
}

// ArmorMass returns the tonnage of the given number of armor points.
func (u *Upgrade) ArmorMass(points int) float64 {
	if u.PointsPerTon <= 0 {
		return 0
	}
	return float64(points) / u.PointsPerTon
}

// ItemSlots returns the slot cost of item under this guidance upgrade.
func (u *Upgrade) ItemSlots(item *Item) int {
	if u != nil && u.Type == UpgradeGuidance && item.Guided {
		return item.Slots + u.ExtraSlots
	}
	return item.Slots
}

// ItemTons returns the mass of item under this guidance upgrade.
func (u *Upgrade) ItemTons(item *Item) float64 {
	if u != nil && u.Type == UpgradeGuidance && item.Guided {
		return item.Tons + u.ExtraTons
	}
	return item.Tons
}

// Validate checks the Upgrade invariants.
//
// Postcondition: returns nil iff all fields are valid for the upgrade type.
func (u *Upgrade) Validate() error {
	var errs []error
	if u.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if u.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validFactions[u.Faction.orAny()] {
		errs = append(errs, fmt.Errorf("faction %q is not a valid faction", u.Faction))
	}
	if u.DynamicSlots < 0 {
		errs = append(errs, errors.New("dynamic_slots must be >= 0"))
	}
	switch u.Type {
	case UpgradeStructure:
		if u.MassFraction <= 0 || u.MassFraction >= 1 {
			errs = append(errs, errors.New("mass_fraction must be in (0, 1)"))
		}
	case UpgradeArmor:
		if u.PointsPerTon <= 0 {
			errs = append(errs, errors.New("points_per_ton must be > 0"))
		}
	case UpgradeHeatSink:
		if u.HeatSinkID == "" {
			errs = append(errs, errors.New("heat_sink is required for heat sink upgrades"))
		}
	case UpgradeGuidance:
		if u.ExtraSlots < 0 || u.ExtraTons < 0 {
			errs = append(errs, errors.New("extra_slots and extra_tons must be >= 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("type must be one of structure, armor, heat_sink, guidance; got %q", u.Type))
	}
	if len(errs) > 0 {
		return fmt.Errorf("upgrade validation failed: %v", errs)
	}
	return nil
}

type upgradeFile struct {
	Upgrades []*Upgrade `yaml:"upgrades"`
}

// LoadUpgrades reads every YAML file in dir and returns the validated upgrades.
func LoadUpgrades(dir string) ([]*Upgrade, error) {
	var out []*Upgrade
	err := forEachYAML(dir, func(path string, data []byte) error {
		var f upgradeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("LoadUpgrades: cannot parse file %q: %w", path, err)
		}
		for _, u := range f.Upgrades {
			if err := u.Validate(); err != nil {
				return fmt.Errorf("LoadUpgrades: invalid upgrade %q in %q: %w", u.ID, path, err)
			}
			out = append(out, u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
