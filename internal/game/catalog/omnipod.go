package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OmniPod is an interchangeable module for one location of an omni chassis
// series. It supplies the location's hardpoints and part of its fixed items.
type OmniPod struct {
	ID            string                `yaml:"id"`
	Name          string                `yaml:"name"`
	Series        string                `yaml:"series"`
	Location      Location              `yaml:"location"`
	Faction       Faction               `yaml:"faction"`
	JumpJets      int                   `yaml:"jump_jets"`
	HardPoints    map[HardPointType]int `yaml:"hardpoints"`
	FixedItemIDs  []string              `yaml:"fixed_items"`
	ToggleableIDs []string              `yaml:"toggleable"`

	// Resolved by Registry.Resolve.
	FixedItems  []*Item `yaml:"-"`
	Toggleables []*Item `yaml:"-"`
}

// String returns the display name.
func (p *OmniPod) String() string {
	return p.Name
}

// HardPointCount returns the number of hardpoints of type t on the pod.
func (p *OmniPod) HardPointCount(t HardPointType) int {
	return p.HardPoints[t]
}

// CanToggle reports whether item is one of the pod's toggleable parts.
func (p *OmniPod) CanToggle(item *Item) bool {
	for _, t := range p.Toggleables {
		if t == item {
			return true
		}
	}
	return false
}

// Validate checks the OmniPod invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (p *OmniPod) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if p.Series == "" {
		errs = append(errs, errors.New("series must not be empty"))
	}
	if !p.Location.Valid() {
		errs = append(errs, fmt.Errorf("location %q is not valid", p.Location))
	}
	if p.JumpJets < 0 {
		errs = append(errs, errors.New("jump_jets must be >= 0"))
	}
	for t, n := range p.HardPoints {
		if !validHardPoints[t] || t == HardPointNone {
			errs = append(errs, fmt.Errorf("hardpoint type %q is not valid", t))
		}
		if n < 0 {
			errs = append(errs, errors.New("hardpoint count must be >= 0"))
		}
	}
	for _, id := range p.ToggleableIDs {
		if id != LowerArmActuatorID && id != HandActuatorID {
			errs = append(errs, fmt.Errorf("toggleable %q must be %s or %s", id, LowerArmActuatorID, HandActuatorID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("omnipod validation failed: %v", errs)
	}
	return nil
}

type omniPodFile struct {
	OmniPods []*OmniPod `yaml:"omnipods"`
}

// LoadOmniPods reads every YAML file in dir and returns the validated pods.
//
// Precondition: dir is a readable directory path.
func LoadOmniPods(dir string) ([]*OmniPod, error) {
	var out []*OmniPod
	err := forEachYAML(dir, func(path string, data []byte) error {
		var f omniPodFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("LoadOmniPods: cannot parse file %q: %w", path, err)
		}
		for _, p := range f.OmniPods {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("LoadOmniPods: invalid omnipod %q in %q: %w", p.ID, path, err)
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
