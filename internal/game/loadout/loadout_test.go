package loadout_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/testutil"
)

func fill(c *loadout.ConfiguredComponent, item *catalog.Item, n int) {
	for i := 0; i < n; i++ {
		c.AddItem(item)
	}
}

func TestNew_EmptyStandardLoadout(t *testing.T) {
	_, l := testutil.NewStandardLoadout(t)

	assert.NotEqual(t, uuid.Nil, l.ID())
	assert.Equal(t, "Test Standard", l.Name())
	require.Len(t, l.Components(), catalog.LocationCount)
	for i, c := range l.Components() {
		assert.Equal(t, catalog.Locations()[i], c.Location())
		assert.Equal(t, loadout.KindStandard, c.Kind())
		assert.Zero(t, c.ArmorTotal())
		assert.True(t, c.HasAutomaticArmor())
		assert.Empty(t, c.Items())
	}
	assert.InDelta(t, 10.0, l.Mass(), 1e-9, "structure plus cockpit")
	assert.InDelta(t, 60.0, l.FreeMass(), 1e-9)
	assert.Equal(t, 89, l.NumCriticalSlotsFree())
	assert.Equal(t, 4, l.JumpJetsMax())
	assert.Nil(t, l.Engine())
}

func TestNew_EmptyOmniLoadout(t *testing.T) {
	reg, l := testutil.NewOmniLoadout(t)

	for _, c := range l.Components() {
		require.NotNil(t, c.OmniPod(), c.Location())
		assert.Equal(t, "wolf-prime-"+string(c.Location()), c.OmniPod().ID)
	}
	assert.Equal(t, 0, l.DynamicSlots())
	assert.Equal(t, 2, l.JumpJetsMax())
	assert.Equal(t, testutil.Item(t, reg, "clan-xl-engine"), l.Engine())
	assert.Equal(t, 33, l.NumCriticalSlotsUsed())
	assert.Equal(t, 57, l.NumCriticalSlotsFree())
	assert.InDelta(t, 16.75, l.Mass(), 1e-9)
}

func TestNew_Errors(t *testing.T) {
	reg := testutil.NewCatalog(t)
	std, _ := reg.Chassis(testutil.StandardChassisID)
	omni, _ := reg.Chassis(testutil.OmniChassisID)
	ups, err := reg.DefaultUpgrades(std)
	require.NoError(t, err)

	_, err = loadout.New(nil, ups)
	assert.Error(t, err)

	partial := ups
	partial.Guidance = nil
	_, err = loadout.New(std, partial)
	assert.Error(t, err)

	omniUps, err := reg.DefaultUpgrades(omni)
	require.NoError(t, err)
	_, err = loadout.New(omni, omniUps)
	assert.Error(t, err, "omni chassis needs a pod on every location")

	_, err = loadout.NewFromCatalog(reg, "no-such-chassis")
	assert.Error(t, err)
}

func TestNew_WithOptions(t *testing.T) {
	reg := testutil.NewCatalog(t)
	l, err := loadout.NewFromCatalog(reg, testutil.OmniChassisID,
		loadout.WithName("Striker"),
		loadout.WithOmniPods(testutil.Pod(t, reg, "wolf-b-right_arm")),
	)
	require.NoError(t, err)
	assert.Equal(t, "Striker", l.Name())
	assert.Equal(t, "wolf-b-right_arm", l.Component(catalog.LocationRightArm).OmniPod().ID)
	assert.Equal(t, "wolf-prime-left_arm", l.Component(catalog.LocationLeftArm).OmniPod().ID)
}

func TestCanEquipDirectly_Rejections(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)

	assert.Equal(t, loadout.IncompatibleFaction, l.CanEquipDirectly(testutil.Item(t, reg, "clan-laser")).Type)
	assert.Equal(t, loadout.IncompatibleUpgrades, l.CanEquipDirectly(testutil.Item(t, reg, "double-heat-sink")).Type)
	assert.Equal(t, loadout.EngineRatingOutOfRange, l.CanEquipDirectly(testutil.Item(t, reg, "big-engine")).Type)
	assert.True(t, l.CanEquipDirectly(testutil.Item(t, reg, "heat-sink")).OK())

	l.Component(catalog.LocationCenterTorso).AddItem(testutil.Item(t, reg, "std-engine"))
	assert.Equal(t, loadout.EngineAlreadyEquipped, l.CanEquipDirectly(testutil.Item(t, reg, "xl-engine")).Type)
}

func TestCanEquipDirectly_OmniRejectsEngines(t *testing.T) {
	reg, l := testutil.NewOmniLoadout(t)
	assert.Equal(t, loadout.NotSupported, l.CanEquipDirectly(testutil.Item(t, reg, "clan-xl-engine")).Type)
	assert.True(t, l.CanEquipDirectly(testutil.Item(t, reg, "clan-double-heat-sink")).OK())
}

func TestCanEquipDirectly_JumpJetCapacity(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	jj := testutil.Item(t, reg, "jump-jet")
	fill(l.Component(catalog.LocationLeftLeg), jj, 4)

	assert.Equal(t, 4, l.JumpJetsEquipped())
	assert.Equal(t, loadout.JumpJetCapacityReached, l.CanEquipDirectly(jj).Type)
}

func TestCanEquipDirectly_TooHeavy(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	fill(l.Component(catalog.LocationCenterTorso), testutil.Item(t, reg, "ac-20"), 4)

	assert.InDelta(t, 4.0, l.FreeMass(), 1e-9)
	assert.Equal(t, loadout.TooHeavy, l.CanEquipDirectly(testutil.Item(t, reg, "five-slot-gun")).Type)
	assert.True(t, l.CanEquipDirectly(testutil.Item(t, reg, "laser")).OK())
}

func TestCanEquip_XLEngineNeedsSideTorsoRoom(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	lt := l.Component(catalog.LocationLeftTorso)
	fill(lt, testutil.Item(t, reg, "ammo"), 10)
	ct := l.Component(catalog.LocationCenterTorso)

	res := l.CanEquip(testutil.Item(t, reg, "xl-engine"), ct)
	assert.Equal(t, loadout.NotEnoughSlotsForXLSide, res.Type)
	assert.Equal(t, catalog.LocationLeftTorso, res.Location)

	assert.True(t, l.CanEquip(testutil.Item(t, reg, "std-engine"), ct).OK())
}

func TestCanEquip_GlobalSlots(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	l.SetUpgrades(loadout.Upgrades{
		Structure: testutil.Upgrade(t, reg, "endo-steel"),
		Armor:     testutil.Upgrade(t, reg, "ferro-fibrous"),
		HeatSink:  testutil.Upgrade(t, reg, "single-heat-sinks"),
		Guidance:  testutil.Upgrade(t, reg, "std-guidance"),
	})
	assert.Equal(t, 28, l.DynamicSlots())
	assert.Equal(t, 61, l.NumCriticalSlotsFree())

	ammo := testutil.Item(t, reg, "ammo")
	for _, loc := range []catalog.Location{catalog.LocationLeftArm, catalog.LocationLeftLeg, catalog.LocationRightLeg, catalog.LocationLeftTorso, catalog.LocationRightTorso} {
		fill(l.Component(loc), ammo, 12)
	}
	fill(l.Component(catalog.LocationCenterTorso), ammo, 1)
	require.Equal(t, 0, l.NumCriticalSlotsFree())

	ra := l.Component(catalog.LocationRightArm)
	laser := testutil.Item(t, reg, "laser")
	require.True(t, ra.CanEquip(laser).OK(), "local check passes")
	res := l.CanEquip(laser, ra)
	assert.Equal(t, loadout.NotEnoughSlots, res.Type)
	assert.Empty(t, res.Location)
}

func TestGuidanceUpgradeAddsSlotsAndTons(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	lrm := testutil.Item(t, reg, "lrm")
	laser := testutil.Item(t, reg, "laser")
	lt := l.Component(catalog.LocationLeftTorso)

	assert.Equal(t, 2, lt.ItemSlots(lrm))
	ups := l.Upgrades()
	ups.Guidance = testutil.Upgrade(t, reg, "artemis")
	l.SetUpgrades(ups)

	assert.Equal(t, 3, lt.ItemSlots(lrm))
	assert.InDelta(t, 6.0, l.ItemTons(lrm), 1e-9)
	assert.Equal(t, 1, lt.ItemSlots(laser))
	assert.InDelta(t, 1.0, l.ItemTons(laser), 1e-9)
}

func TestArmorMass(t *testing.T) {
	_, l := testutil.NewStandardLoadout(t)
	require.NoError(t, l.Component(catalog.LocationCenterTorso).SetArmor(catalog.SideFront, 32, true))
	require.NoError(t, l.Component(catalog.LocationRightArm).SetArmor(catalog.SideOnly, 16, true))

	assert.Equal(t, 48, l.ArmorTotal())
	assert.InDelta(t, 1.5, l.ArmorMass(), 1e-9)
	assert.InDelta(t, 11.5, l.Mass(), 1e-9)
}

func TestCopyIsDeep(t *testing.T) {
	reg, l := testutil.NewOmniLoadout(t)
	laser := testutil.Item(t, reg, "clan-laser")
	l.Component(catalog.LocationRightArm).AddItem(laser)
	require.NoError(t, l.Component(catalog.LocationCenterTorso).SetArmor(catalog.SideFront, 20, true))

	cp := l.Copy()
	assert.NotEqual(t, l.ID(), cp.ID())
	assert.Same(t, cp, cp.Component(catalog.LocationRightArm).Loadout())
	assert.Equal(t, l.Component(catalog.LocationRightArm).Items(), cp.Component(catalog.LocationRightArm).Items())

	cp.Component(catalog.LocationRightArm).RemoveItem(laser)
	cp.Component(catalog.LocationRightArm).SetToggleState(testutil.Item(t, reg, catalog.HandActuatorID), false)
	require.NoError(t, cp.Component(catalog.LocationCenterTorso).SetArmor(catalog.SideFront, 0, true))

	assert.Equal(t, []*catalog.Item{laser}, l.Component(catalog.LocationRightArm).Items())
	assert.True(t, l.Component(catalog.LocationRightArm).ToggleStates()[catalog.HandActuatorID])
	armor, err := l.Component(catalog.LocationCenterTorso).Armor(catalog.SideFront)
	require.NoError(t, err)
	assert.Equal(t, 20, armor)
}

func TestItemsAndHeatSinkCount(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	hs := testutil.Item(t, reg, "heat-sink")
	fill(l.Component(catalog.LocationLeftLeg), hs, 2)
	fill(l.Component(catalog.LocationRightLeg), hs, 1)

	assert.Equal(t, 3, l.HeatSinksCount())
	assert.Len(t, l.Items(), 4, "three heat sinks and the cockpit")
}

func TestEquipResultError(t *testing.T) {
	reg := testutil.NewCatalog(t)
	res := loadout.EquipResult{Type: loadout.NoFreeHardPoints, Location: catalog.LocationRightArm, Item: testutil.Item(t, reg, "laser")}
	assert.Contains(t, res.Error(), "Laser")
	assert.Contains(t, res.Error(), "no free hardpoints")
	assert.ErrorIs(t, res, loadout.ErrEquipRejected)
	assert.Nil(t, loadout.EquipResult{}.Err())
}
