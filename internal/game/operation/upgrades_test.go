package operation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
	"github.com/cory-johannsen/mechlab/internal/game/operation"
	"github.com/cory-johannsen/mechlab/internal/testutil"
)

func TestSetUpgrades_Structure(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, rec := newBus()
	before := snapshot(l)
	endo := testutil.Upgrade(t, reg, "endo-steel")

	op := operation.NewSetUpgrades(bus, l, loadout.Upgrades{Structure: endo})
	assert.Equal(t, "set upgrades Endo Steel", op.Describe())
	mustApply(t, op)
	assert.Same(t, endo, l.Upgrades().Structure)
	assert.Equal(t, "std-armor", l.Upgrades().Armor.ID, "nil fields keep the current selection")
	assert.Equal(t, 14, l.DynamicSlots())
	assert.InDelta(t, 3.5, l.StructureMass(), 1e-9)
	require.Len(t, rec.msgs, 1)
	assert.IsType(t, message.UpgradesMessage{}, rec.msgs[0])

	require.NoError(t, op.Undo())
	assert.Equal(t, before, snapshot(l))
	assert.Len(t, rec.msgs, 2)
}

func TestSetUpgrades_Rejections(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, rec := newBus()
	before := snapshot(l)

	cases := []struct {
		name string
		want loadout.Upgrades
	}{
		{"wrong faction", loadout.Upgrades{Structure: testutil.Upgrade(t, reg, "clan-endo-steel")}},
		{"wrong type", loadout.Upgrades{Structure: testutil.Upgrade(t, reg, "std-armor")}},
		{"wrong type guidance", loadout.Upgrades{Guidance: testutil.Upgrade(t, reg, "double-heat-sinks")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, operation.NewSetUpgrades(bus, l, tc.want).Apply(), loadout.ErrEquipRejected)
		})
	}
	assert.Equal(t, before, snapshot(l))
	assert.Empty(t, rec.msgs)
}

func TestSetUpgrades_HeatSinkTypeNeedsNoHeatSinks(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	dhs := loadout.Upgrades{HeatSink: testutil.Upgrade(t, reg, "double-heat-sinks")}
	add := operation.NewAddItem(bus, l.Component(catalog.LocationLeftLeg), testutil.Item(t, reg, "heat-sink"))
	mustApply(t, add)

	assert.ErrorIs(t, operation.NewSetUpgrades(bus, l, dhs).Apply(), loadout.ErrEquipRejected)

	require.NoError(t, add.Undo())
	mustApply(t, operation.NewSetUpgrades(bus, l, dhs))
	assert.True(t, l.CanEquipDirectly(testutil.Item(t, reg, "double-heat-sink")).OK())
}

func TestSetUpgrades_OmniKeepsStructureAndArmor(t *testing.T) {
	reg, l := testutil.NewOmniLoadout(t)
	bus, _ := newBus()

	err := operation.NewSetUpgrades(bus, l, loadout.Upgrades{Structure: testutil.Upgrade(t, reg, "std-structure")}).Apply()
	assert.ErrorIs(t, err, loadout.ErrEquipRejected)
	err = operation.NewSetUpgrades(bus, l, loadout.Upgrades{Armor: testutil.Upgrade(t, reg, "std-armor")}).Apply()
	assert.ErrorIs(t, err, loadout.ErrEquipRejected)

	mustApply(t, operation.NewSetUpgrades(bus, l, loadout.Upgrades{Guidance: testutil.Upgrade(t, reg, "artemis")}))
	assert.Equal(t, "artemis", l.Upgrades().Guidance.ID)
}

func TestSetUpgrades_TooHeavy(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	ac20 := testutil.Item(t, reg, "ac-20")
	lrm := testutil.Item(t, reg, "lrm")
	for _, loc := range []catalog.Location{catalog.LocationRightTorso, catalog.LocationLeftArm, catalog.LocationLeftLeg} {
		l.Component(loc).AddItem(ac20)
	}
	l.Component(catalog.LocationLeftTorso).AddItem(lrm)
	l.Component(catalog.LocationLeftTorso).AddItem(lrm)
	l.Component(catalog.LocationRightArm).AddItem(lrm)
	l.Component(catalog.LocationRightLeg).AddItem(testutil.Item(t, reg, "ammo"))
	l.Component(catalog.LocationRightLeg).AddItem(testutil.Item(t, reg, "ammo"))
	require.InDelta(t, 1.0, l.FreeMass(), 1e-9)
	before := snapshot(l)

	err := operation.NewSetUpgrades(bus, l, loadout.Upgrades{Guidance: testutil.Upgrade(t, reg, "artemis")}).Apply()
	assert.ErrorIs(t, err, loadout.ErrEquipRejected)
	assert.Contains(t, err.Error(), loadout.TooHeavy.String())
	assert.Equal(t, before, snapshot(l))
}

func TestSetUpgrades_NotEnoughGlobalSlots(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	side := testutil.Item(t, reg, "xl-side")
	for _, loc := range []catalog.Location{
		catalog.LocationLeftArm, catalog.LocationRightArm, catalog.LocationLeftLeg,
		catalog.LocationRightLeg, catalog.LocationLeftTorso, catalog.LocationRightTorso,
	} {
		for i := 0; i < 4; i++ {
			l.Component(loc).AddItem(side)
		}
	}
	l.Component(catalog.LocationCenterTorso).AddItem(side)
	l.Component(catalog.LocationCenterTorso).AddItem(side)
	require.Equal(t, 11, l.NumCriticalSlotsFree())

	err := operation.NewSetUpgrades(bus, l, loadout.Upgrades{Structure: testutil.Upgrade(t, reg, "endo-steel")}).Apply()
	assert.ErrorIs(t, err, loadout.ErrEquipRejected)
	assert.Contains(t, err.Error(), loadout.NotEnoughSlots.String())
	assert.Equal(t, "std-structure", l.Upgrades().Structure.ID)
}

func TestSetUpgrades_GuidanceOverflowsComponent(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	lt := l.Component(catalog.LocationLeftTorso)
	for i := 0; i < 6; i++ {
		lt.AddItem(testutil.Item(t, reg, "lrm"))
	}
	require.Zero(t, lt.SlotsFree())

	err := operation.NewSetUpgrades(bus, l, loadout.Upgrades{Guidance: testutil.Upgrade(t, reg, "artemis")}).Apply()
	assert.ErrorIs(t, err, loadout.ErrEquipRejected)
	assert.Contains(t, err.Error(), "Left Torso")
	assert.Equal(t, "std-guidance", l.Upgrades().Guidance.ID)
}
