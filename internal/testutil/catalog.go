// Package testutil provides test fixtures: a small resolved catalog with one
// standard and one omni chassis, and loadouts built on them.
package testutil

import (
	"testing"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
)

// Fixture ids.
const (
	StandardChassisID = "test-standard"
	OmniChassisID     = "test-omni"
	OmniSeries        = "test-wolf"
)

func items() []*catalog.Item {
	internal := func(id, name string, slots int, tons float64) *catalog.Item {
		return &catalog.Item{ID: id, Name: name, Kind: catalog.KindInternal, Slots: slots, Tons: tons}
	}
	return []*catalog.Item{
		{ID: "laser", Name: "Laser", Kind: catalog.KindWeapon, Slots: 1, Tons: 1, HardPoint: catalog.HardPointEnergy},
		{ID: "big-laser", Name: "Big Laser", Kind: catalog.KindWeapon, Slots: 2, Tons: 5, HardPoint: catalog.HardPointEnergy},
		{ID: "five-slot-gun", Name: "Five Slot Gun", Kind: catalog.KindWeapon, Slots: 5, Tons: 5, HardPoint: catalog.HardPointBallistic},
		{ID: "ac-20", Name: "AC/20", Kind: catalog.KindWeapon, Slots: 8, Tons: 14, HardPoint: catalog.HardPointBallistic, LargeBore: true},
		{ID: "lrm", Name: "LRM", Kind: catalog.KindWeapon, Slots: 2, Tons: 5, HardPoint: catalog.HardPointMissile, Guided: true},
		{ID: "clan-laser", Name: "Clan Laser", Kind: catalog.KindWeapon, Slots: 1, Tons: 1, HardPoint: catalog.HardPointEnergy, Faction: catalog.FactionClan},
		{ID: "ams", Name: "AMS", Kind: catalog.KindWeapon, Slots: 1, Tons: 0.5, HardPoint: catalog.HardPointAMS},
		{ID: "ecm", Name: "ECM", Kind: catalog.KindWeapon, Slots: 2, Tons: 1.5, HardPoint: catalog.HardPointECM,
			Locations: []catalog.Location{catalog.LocationLeftTorso, catalog.LocationRightTorso}},
		{ID: "ammo", Name: "Ammo", Kind: catalog.KindAmmunition, Slots: 1, Tons: 1},
		{ID: "heat-sink", Name: "Heat Sink", Kind: catalog.KindHeatSink, Slots: 1, Tons: 1},
		{ID: "double-heat-sink", Name: "Double Heat Sink", Kind: catalog.KindHeatSink, Slots: 3, Tons: 1, Faction: catalog.FactionInnerSphere},
		{ID: "clan-double-heat-sink", Name: "Clan Double Heat Sink", Kind: catalog.KindHeatSink, Slots: 2, Tons: 1, Faction: catalog.FactionClan},
		{ID: "jump-jet", Name: "Jump Jet", Kind: catalog.KindJumpJet, Slots: 1, Tons: 1},
		{ID: "case", Name: "CASE", Kind: catalog.KindInternal, Slots: 1, Tons: 0.5, CASE: true, Faction: catalog.FactionInnerSphere},
		{ID: "compact-engine", Name: "Compact Engine 300", Kind: catalog.KindEngine, Tons: 10,
			Rating: 300, EngineType: catalog.EngineStandard, HousedHeatSinks: 6, Locations: []catalog.Location{catalog.LocationCenterTorso}},
		{ID: "std-engine", Name: "STD Engine 250", Kind: catalog.KindEngine, Slots: 6, Tons: 12.5,
			Rating: 250, EngineType: catalog.EngineStandard, HousedHeatSinks: 2, Locations: []catalog.Location{catalog.LocationCenterTorso}},
		{ID: "xl-engine", Name: "XL Engine 300", Kind: catalog.KindEngine, Slots: 6, Tons: 9.5, Faction: catalog.FactionInnerSphere,
			Rating: 300, EngineType: catalog.EngineXL, HousedHeatSinks: 2, SideItemID: "xl-side", Locations: []catalog.Location{catalog.LocationCenterTorso}},
		{ID: "big-engine", Name: "STD Engine 500", Kind: catalog.KindEngine, Slots: 6, Tons: 20,
			Rating: 500, EngineType: catalog.EngineStandard, Locations: []catalog.Location{catalog.LocationCenterTorso}},
		{ID: "clan-xl-engine", Name: "Clan XL Engine 375", Kind: catalog.KindEngine, Slots: 6, Tons: 10, Faction: catalog.FactionClan,
			Rating: 375, EngineType: catalog.EngineXL, HousedHeatSinks: 5, SideItemID: "clan-xl-side", Locations: []catalog.Location{catalog.LocationCenterTorso}},
		internal("xl-side", "XL Engine Side", 3, 0),
		internal("clan-xl-side", "Clan XL Engine Side", 2, 0),
		internal("cockpit", "Cockpit", 1, 3),
		internal("shoulder", "Shoulder", 1, 0),
		internal("upper-arm-actuator", "Upper Arm Actuator", 1, 0),
		internal(catalog.LowerArmActuatorID, "Lower Arm Actuator", 1, 0),
		internal(catalog.HandActuatorID, "Hand Actuator", 1, 0),
	}
}

func upgrades() []*catalog.Upgrade {
	return []*catalog.Upgrade{
		{ID: "std-structure", Name: "Standard Structure", Type: catalog.UpgradeStructure, MassFraction: 0.1},
		{ID: "endo-steel", Name: "Endo Steel", Type: catalog.UpgradeStructure, MassFraction: 0.05, DynamicSlots: 14, Faction: catalog.FactionInnerSphere},
		{ID: "clan-endo-steel", Name: "Clan Endo Steel", Type: catalog.UpgradeStructure, MassFraction: 0.05, DynamicSlots: 7, Faction: catalog.FactionClan},
		{ID: "std-armor", Name: "Standard Armor", Type: catalog.UpgradeArmor, PointsPerTon: 32},
		{ID: "ferro-fibrous", Name: "Ferro Fibrous", Type: catalog.UpgradeArmor, PointsPerTon: 35.84, DynamicSlots: 14, Faction: catalog.FactionInnerSphere},
		{ID: "clan-ferro-fibrous", Name: "Clan Ferro Fibrous", Type: catalog.UpgradeArmor, PointsPerTon: 38.4, DynamicSlots: 7, Faction: catalog.FactionClan},
		{ID: "single-heat-sinks", Name: "Single Heat Sinks", Type: catalog.UpgradeHeatSink, HeatSinkID: "heat-sink"},
		{ID: "double-heat-sinks", Name: "Double Heat Sinks", Type: catalog.UpgradeHeatSink, HeatSinkID: "double-heat-sink", Faction: catalog.FactionInnerSphere},
		{ID: "clan-double-heat-sinks", Name: "Clan Double Heat Sinks", Type: catalog.UpgradeHeatSink, HeatSinkID: "clan-double-heat-sink", Faction: catalog.FactionClan},
		{ID: "std-guidance", Name: "Standard Guidance", Type: catalog.UpgradeGuidance},
		{ID: "artemis", Name: "Artemis IV", Type: catalog.UpgradeGuidance, ExtraSlots: 1, ExtraTons: 1},
	}
}

// hitPoints gives arms and side torsos an armor maximum of 40.
var hitPoints = map[catalog.Location]int{
	catalog.LocationHead:        10,
	catalog.LocationCenterTorso: 30,
	catalog.LocationLeftTorso:   20,
	catalog.LocationRightTorso:  20,
	catalog.LocationLeftArm:     20,
	catalog.LocationRightArm:    20,
	catalog.LocationLeftLeg:     20,
	catalog.LocationRightLeg:    20,
}

func slots(loc catalog.Location) int {
	if loc == catalog.LocationHead {
		return 6
	}
	return 12
}

func standardChassis() *catalog.Chassis {
	hp := map[catalog.Location]map[catalog.HardPointType]int{
		catalog.LocationRightArm:    {catalog.HardPointEnergy: 2, catalog.HardPointBallistic: 1, catalog.HardPointMissile: 1},
		catalog.LocationLeftArm:     {catalog.HardPointEnergy: 2},
		catalog.LocationRightTorso:  {catalog.HardPointBallistic: 2, catalog.HardPointECM: 1},
		catalog.LocationLeftTorso:   {catalog.HardPointMissile: 2, catalog.HardPointAMS: 1},
		catalog.LocationCenterTorso: {catalog.HardPointEnergy: 1},
		catalog.LocationHead:        {catalog.HardPointEnergy: 1},
	}
	c := &catalog.Chassis{
		ID: StandardChassisID, Name: "Test Standard", Series: "test-standard", Tonnage: 70,
		Faction: catalog.FactionInnerSphere, Variant: catalog.VariantStandard,
		MaxJumpJets: 4, EngineMin: 100, EngineMax: 400,
		DefaultUpgrades: catalog.DefaultUpgrades{
			Structure: "std-structure", Armor: "std-armor", HeatSink: "single-heat-sinks", Guidance: "std-guidance",
		},
	}
	for _, loc := range catalog.Locations() {
		cd := &catalog.ComponentDef{Location: loc, Slots: slots(loc), HitPoints: hitPoints[loc], HardPoints: hp[loc]}
		if loc == catalog.LocationHead {
			cd.FixedItemIDs = []string{"cockpit"}
		}
		c.Components = append(c.Components, cd)
	}
	return c
}

func omniChassis() *catalog.Chassis {
	c := &catalog.Chassis{
		ID: OmniChassisID, Name: "Test Omni", Series: OmniSeries, Tonnage: 75,
		Faction: catalog.FactionClan, Variant: catalog.VariantOmni,
		DefaultPodIDs: make(map[catalog.Location]string),
		DefaultUpgrades: catalog.DefaultUpgrades{
			Structure: "clan-endo-steel", Armor: "clan-ferro-fibrous", HeatSink: "clan-double-heat-sinks", Guidance: "std-guidance",
		},
	}
	for _, loc := range catalog.Locations() {
		cd := &catalog.ComponentDef{Location: loc, Slots: slots(loc), HitPoints: hitPoints[loc]}
		switch loc {
		case catalog.LocationHead:
			cd.FixedItemIDs = []string{"cockpit"}
		case catalog.LocationCenterTorso:
			cd.FixedItemIDs = []string{"clan-xl-engine"}
		case catalog.LocationLeftTorso, catalog.LocationRightTorso:
			cd.FixedItemIDs = []string{"clan-xl-side"}
			cd.DynamicStructureSlots, cd.DynamicArmorSlots = 1, 2
		case catalog.LocationLeftArm, catalog.LocationRightArm:
			cd.FixedItemIDs = []string{"shoulder", "upper-arm-actuator"}
			cd.DynamicStructureSlots = 1
		case catalog.LocationLeftLeg, catalog.LocationRightLeg:
			cd.DynamicStructureSlots, cd.DynamicArmorSlots = 1, 1
		}
		c.Components = append(c.Components, cd)
		c.DefaultPodIDs[loc] = "wolf-prime-" + string(loc)
	}
	c.Component(catalog.LocationCenterTorso).DynamicArmorSlots = 1
	c.Component(catalog.LocationHead).DynamicStructureSlots = 1
	return c
}

func omniPods() []*catalog.OmniPod {
	arms := []string{catalog.LowerArmActuatorID, catalog.HandActuatorID}
	prime := map[catalog.Location]*catalog.OmniPod{
		catalog.LocationRightArm:    {HardPoints: map[catalog.HardPointType]int{catalog.HardPointEnergy: 2}, ToggleableIDs: arms},
		catalog.LocationLeftArm:     {HardPoints: map[catalog.HardPointType]int{catalog.HardPointEnergy: 2}, ToggleableIDs: arms},
		catalog.LocationRightTorso:  {HardPoints: map[catalog.HardPointType]int{catalog.HardPointMissile: 1}},
		catalog.LocationLeftTorso:   {HardPoints: map[catalog.HardPointType]int{catalog.HardPointMissile: 1}},
		catalog.LocationCenterTorso: {HardPoints: map[catalog.HardPointType]int{catalog.HardPointEnergy: 1}},
		catalog.LocationHead:        {},
		catalog.LocationRightLeg:    {JumpJets: 1},
		catalog.LocationLeftLeg:     {JumpJets: 1},
	}
	var out []*catalog.OmniPod
	for _, loc := range catalog.Locations() {
		p := prime[loc]
		p.ID = "wolf-prime-" + string(loc)
		p.Name = "Prime " + loc.String()
		p.Series = OmniSeries
		p.Location = loc
		out = append(out, p)
	}
	return append(out,
		&catalog.OmniPod{ID: "wolf-b-right_arm", Name: "B Right Arm", Series: OmniSeries, Location: catalog.LocationRightArm,
			HardPoints: map[catalog.HardPointType]int{catalog.HardPointBallistic: 1, catalog.HardPointEnergy: 1}, ToggleableIDs: arms},
		&catalog.OmniPod{ID: "wolf-c-left_arm", Name: "C Left Arm", Series: OmniSeries, Location: catalog.LocationLeftArm,
			HardPoints: map[catalog.HardPointType]int{catalog.HardPointEnergy: 1}, ToggleableIDs: []string{catalog.LowerArmActuatorID}},
		&catalog.OmniPod{ID: "wolf-s-right_leg", Name: "S Right Leg", Series: OmniSeries, Location: catalog.LocationRightLeg},
		&catalog.OmniPod{ID: "wolf-s-center_torso", Name: "S Center Torso", Series: OmniSeries, Location: catalog.LocationCenterTorso,
			HardPoints: map[catalog.HardPointType]int{catalog.HardPointEnergy: 2}, JumpJets: 2},
	)
}

// NewCatalog returns a resolved registry holding the fixture data.
//
// Postcondition: the registry resolves; the test fails otherwise.
func NewCatalog(t testing.TB) *catalog.Registry {
	t.Helper()
	reg := catalog.NewRegistry()
	for _, it := range items() {
		if err := it.Validate(); err != nil {
			t.Fatalf("fixture item %q: %v", it.ID, err)
		}
		if err := reg.RegisterItem(it); err != nil {
			t.Fatalf("registering item: %v", err)
		}
	}
	for _, u := range upgrades() {
		if err := reg.RegisterUpgrade(u); err != nil {
			t.Fatalf("registering upgrade: %v", err)
		}
	}
	for _, p := range omniPods() {
		if err := reg.RegisterOmniPod(p); err != nil {
			t.Fatalf("registering omnipod: %v", err)
		}
	}
	for _, c := range []*catalog.Chassis{standardChassis(), omniChassis()} {
		if err := c.Validate(); err != nil {
			t.Fatalf("fixture chassis %q: %v", c.ID, err)
		}
		if err := reg.RegisterChassis(c); err != nil {
			t.Fatalf("registering chassis: %v", err)
		}
	}
	if err := reg.Resolve(); err != nil {
		t.Fatalf("resolving fixture catalog: %v", err)
	}
	return reg
}

// Item returns the fixture item with the given id.
func Item(t testing.TB, reg *catalog.Registry, id string) *catalog.Item {
	t.Helper()
	it, ok := reg.Item(id)
	if !ok {
		t.Fatalf("fixture item %q not found", id)
	}
	return it
}

// Pod returns the fixture omnipod with the given id.
func Pod(t testing.TB, reg *catalog.Registry, id string) *catalog.OmniPod {
	t.Helper()
	p, ok := reg.OmniPod(id)
	if !ok {
		t.Fatalf("fixture omnipod %q not found", id)
	}
	return p
}

// Upgrade returns the fixture upgrade with the given id.
func Upgrade(t testing.TB, reg *catalog.Registry, id string) *catalog.Upgrade {
	t.Helper()
	u, ok := reg.Upgrade(id)
	if !ok {
		t.Fatalf("fixture upgrade %q not found", id)
	}
	return u
}

// NewStandardLoadout returns the fixture catalog and an empty loadout on the standard chassis.
func NewStandardLoadout(t testing.TB) (*catalog.Registry, *loadout.Loadout) {
	t.Helper()
	reg := NewCatalog(t)
	l, err := loadout.NewFromCatalog(reg, StandardChassisID)
	if err != nil {
		t.Fatalf("building standard loadout: %v", err)
	}
	return reg, l
}

// NewOmniLoadout returns the fixture catalog and an empty loadout on the omni chassis with prime pods.
func NewOmniLoadout(t testing.TB) (*catalog.Registry, *loadout.Loadout) {
	t.Helper()
	reg := NewCatalog(t)
	l, err := loadout.NewFromCatalog(reg, OmniChassisID)
	if err != nil {
		t.Fatalf("building omni loadout: %v", err)
	}
	return reg, l
}
