package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Registry holds all loaded items, chassis, omnipods and upgrades indexed by ID.
// After Resolve succeeds every cross reference points at a registered entry
// and the registry must be treated as read-only.
type Registry struct {
	items    map[string]*Item
	chassis  map[string]*Chassis
	pods     map[string]*OmniPod
	upgrades map[string]*Upgrade
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		items:    make(map[string]*Item),
		chassis:  make(map[string]*Chassis),
		pods:     make(map[string]*OmniPod),
		upgrades: make(map[string]*Upgrade),
	}
}

// RegisterItem adds it to the registry.
//
// Precondition:  it must not be nil.
// Postcondition: Item(it.ID) returns (it, true); returns error if it.ID already registered.
func (r *Registry) RegisterItem(it *Item) error {
	if _, exists := r.items[it.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterItem: item ID %q already registered", it.ID)
	}
	r.items[it.ID] = it
	return nil
}

// RegisterChassis adds c to the registry.
//
// Precondition:  c must not be nil.
// Postcondition: Chassis(c.ID) returns (c, true); returns error if c.ID already registered.
func (r *Registry) RegisterChassis(c *Chassis) error {
	if _, exists := r.chassis[c.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterChassis: chassis ID %q already registered", c.ID)
	}
	r.chassis[c.ID] = c
	return nil
}

// RegisterOmniPod adds p to the registry.
//
// Precondition:  p must not be nil.
// Postcondition: OmniPod(p.ID) returns (p, true); returns error if p.ID already registered.
func (r *Registry) RegisterOmniPod(p *OmniPod) error {
	if _, exists := r.pods[p.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterOmniPod: omnipod ID %q already registered", p.ID)
	}
	r.pods[p.ID] = p
	return nil
}

// RegisterUpgrade adds u to the registry.
//
// Precondition:  u must not be nil.
// Postcondition: Upgrade(u.ID) returns (u, true); returns error if u.ID already registered.
func (r *Registry) RegisterUpgrade(u *Upgrade) error {
	if _, exists := r.upgrades[u.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterUpgrade: upgrade ID %q already registered", u.ID)
	}
	r.upgrades[u.ID] = u
	return nil
}

// Item returns the Item for the given id and whether it was found.
func (r *Registry) Item(id string) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Chassis returns the Chassis for the given id and whether it was found.
func (r *Registry) Chassis(id string) (*Chassis, bool) {
	c, ok := r.chassis[id]
	return c, ok
}

// OmniPod returns the OmniPod for the given id and whether it was found.
func (r *Registry) OmniPod(id string) (*OmniPod, bool) {
	p, ok := r.pods[id]
	return p, ok
}

// Upgrade returns the Upgrade for the given id and whether it was found.
func (r *Registry) Upgrade(id string) (*Upgrade, bool) {
	u, ok := r.upgrades[id]
	return u, ok
}

// AllChassis returns every registered chassis sorted by ID.
func (r *Registry) AllChassis() []*Chassis {
	out := make([]*Chassis, 0, len(r.chassis))
	for _, c := range r.chassis {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllItems returns every registered item sorted by ID.
func (r *Registry) AllItems() []*Item {
	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PodsFor returns the pods of series that fit loc, sorted by ID.
func (r *Registry) PodsFor(series string, loc Location) []*OmniPod {
	var out []*OmniPod
	for _, p := range r.pods {
		if p.Series == series && p.Location == loc {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve links every id reference (fixed items, engine side items, pod
// toggleables, default pods and upgrades, upgrade heat sinks) to its
// registered entry.
//
// Postcondition: returns nil iff every reference resolved.
func (r *Registry) Resolve() error {
	for _, it := range r.items {
		if it.SideItemID == "" {
			continue
		}
		side, ok := r.items[it.SideItemID]
		if !ok {
			return fmt.Errorf("item %q: side_item %q not found", it.ID, it.SideItemID)
		}
		it.SideItem = side
	}
	for _, c := range r.chassis {
		for _, cd := range c.Components {
			fixed, err := r.lookupItems(cd.FixedItemIDs)
			if err != nil {
				return fmt.Errorf("chassis %q %s: %w", c.ID, cd.Location, err)
			}
			cd.FixedItems = fixed
		}
		for loc, podID := range c.DefaultPodIDs {
			p, ok := r.pods[podID]
			if !ok {
				return fmt.Errorf("chassis %q: default pod %q not found", c.ID, podID)
			}
			if p.Series != c.Series || p.Location != loc {
				return fmt.Errorf("chassis %q: default pod %q does not fit %s", c.ID, podID, loc)
			}
		}
		if c.IsOmni() {
			for _, loc := range locations {
				if _, ok := c.DefaultPodIDs[loc]; !ok {
					return fmt.Errorf("chassis %q: no default pod for %s", c.ID, loc)
				}
			}
		}
		if _, err := r.DefaultUpgrades(c); err != nil {
			return err
		}
	}
	for _, p := range r.pods {
		fixed, err := r.lookupItems(p.FixedItemIDs)
		if err != nil {
			return fmt.Errorf("omnipod %q: %w", p.ID, err)
		}
		p.FixedItems = fixed
		toggles, err := r.lookupItems(p.ToggleableIDs)
		if err != nil {
			return fmt.Errorf("omnipod %q: %w", p.ID, err)
		}
		p.Toggleables = toggles
	}
	for _, u := range r.upgrades {
		if u.Type != UpgradeHeatSink {
			continue
		}
		hs, ok := r.items[u.HeatSinkID]
		if !ok || !hs.IsHeatSink() {
			return fmt.Errorf("upgrade %q: heat sink %q not found", u.ID, u.HeatSinkID)
		}
		u.HeatSink = hs
	}
	return nil
}

// UpgradeSet is one upgrade of each family.
type UpgradeSet struct {
	Structure *Upgrade
	Armor     *Upgrade
	HeatSink  *Upgrade
	Guidance  *Upgrade
}

// DefaultUpgrades resolves the upgrade ids declared on c.
//
// Postcondition: on success every field of the returned set is non-nil and of the matching type.
func (r *Registry) DefaultUpgrades(c *Chassis) (UpgradeSet, error) {
	var set UpgradeSet
	pairs := []struct {
		id   string
		typ  UpgradeType
		dest **Upgrade
	}{
		{c.DefaultUpgrades.Structure, UpgradeStructure, &set.Structure},
		{c.DefaultUpgrades.Armor, UpgradeArmor, &set.Armor},
		{c.DefaultUpgrades.HeatSink, UpgradeHeatSink, &set.HeatSink},
		{c.DefaultUpgrades.Guidance, UpgradeGuidance, &set.Guidance},
	}
	for _, p := range pairs {
		u, ok := r.upgrades[p.id]
		if !ok {
			return UpgradeSet{}, fmt.Errorf("chassis %q: %s upgrade %q not found", c.ID, p.typ, p.id)
		}
		if u.Type != p.typ {
			return UpgradeSet{}, fmt.Errorf("chassis %q: upgrade %q is %s, want %s", c.ID, p.id, u.Type, p.typ)
		}
		*p.dest = u
	}
	return set, nil
}

// DefaultPods returns the default pod of each location of an omni chassis.
//
// Precondition: Resolve has succeeded.
func (r *Registry) DefaultPods(c *Chassis) []*OmniPod {
	var out []*OmniPod
	for _, loc := range locations {
		if p, ok := r.pods[c.DefaultPodIDs[loc]]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (r *Registry) lookupItems(ids []string) ([]*Item, error) {
	out := make([]*Item, 0, len(ids))
	for _, id := range ids {
		it, ok := r.items[id]
		if !ok {
			return nil, fmt.Errorf("item %q not found", id)
		}
		out = append(out, it)
	}
	return out, nil
}

// LoadDir loads a complete catalog from dir, which must contain the
// subdirectories items, chassis, omnipods and upgrades, and resolves it.
//
// Precondition: dir is a readable catalog root.
// Postcondition: returns a resolved Registry or the first encountered error.
func LoadDir(dir string) (*Registry, error) {
	r := NewRegistry()

	items, err := LoadItems(filepath.Join(dir, "items"))
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	for _, it := range items {
		if err := r.RegisterItem(it); err != nil {
			return nil, err
		}
	}

	chassis, err := LoadChassis(filepath.Join(dir, "chassis"))
	if err != nil {
		return nil, fmt.Errorf("loading chassis: %w", err)
	}
	for _, c := range chassis {
		if err := r.RegisterChassis(c); err != nil {
			return nil, err
		}
	}

	pods, err := LoadOmniPods(filepath.Join(dir, "omnipods"))
	if err != nil {
		return nil, fmt.Errorf("loading omnipods: %w", err)
	}
	for _, p := range pods {
		if err := r.RegisterOmniPod(p); err != nil {
			return nil, err
		}
	}

	upgrades, err := LoadUpgrades(filepath.Join(dir, "upgrades"))
	if err != nil {
		return nil, fmt.Errorf("loading upgrades: %w", err)
	}
	for _, u := range upgrades {
		if err := r.RegisterUpgrade(u); err != nil {
			return nil, err
		}
	}

	if err := r.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving catalog: %w", err)
	}
	return r, nil
}
