package operation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
	"github.com/cory-johannsen/mechlab/internal/game/operation"
	"github.com/cory-johannsen/mechlab/internal/testutil"
)

func TestStack_EmptyHistory(t *testing.T) {
	s := operation.NewStack(5, nil)
	assert.ErrorIs(t, s.Undo(), operation.ErrNothingToUndo)
	assert.ErrorIs(t, s.Redo(), operation.ErrNothingToRedo)
	assert.Nil(t, s.NextUndo())
	assert.Nil(t, s.NextRedo())
	assert.Zero(t, s.Len())
}

func TestStack_UndoRedo(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	ra := l.Component(catalog.LocationRightArm)
	laser := testutil.Item(t, reg, "laser")
	s := operation.NewStack(10, nil)

	empty := snapshot(l)
	add := operation.NewAddItem(bus, ra, laser)
	require.NoError(t, s.PushAndApply(add))
	one := snapshot(l)
	require.NoError(t, s.PushAndApply(operation.NewAddItem(bus, ra, laser)))
	two := snapshot(l)

	require.NoError(t, s.Undo())
	assert.Equal(t, one, snapshot(l))
	require.NoError(t, s.Undo())
	assert.Equal(t, empty, snapshot(l))
	assert.ErrorIs(t, s.Undo(), operation.ErrNothingToUndo)
	assert.Same(t, add, s.NextRedo())

	require.NoError(t, s.Redo())
	require.NoError(t, s.Redo())
	assert.Equal(t, two, snapshot(l))
	assert.ErrorIs(t, s.Redo(), operation.ErrNothingToRedo)
}

func TestStack_PushDiscardsRedoHistory(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	ra := l.Component(catalog.LocationRightArm)
	s := operation.NewStack(10, nil)

	require.NoError(t, s.PushAndApply(operation.NewAddItem(bus, ra, testutil.Item(t, reg, "laser"))))
	require.NoError(t, s.PushAndApply(operation.NewAddItem(bus, ra, testutil.Item(t, reg, "lrm"))))
	require.NoError(t, s.Undo())
	require.NotNil(t, s.NextRedo())

	require.NoError(t, s.PushAndApply(operation.NewAddItem(bus, ra, testutil.Item(t, reg, "five-slot-gun"))))
	assert.Nil(t, s.NextRedo())
	assert.Equal(t, 2, s.Len())
}

func TestStack_DepthLimit(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	hs := testutil.Item(t, reg, "heat-sink")
	s := operation.NewStack(2, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.PushAndApply(operation.NewAddItem(bus, l.Component(catalog.LocationLeftLeg), hs)))
	}
	assert.Equal(t, 2, s.Len())
	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())
	assert.ErrorIs(t, s.Undo(), operation.ErrNothingToUndo)
	assert.Len(t, l.Component(catalog.LocationLeftLeg).Items(), 1, "the oldest entry fell off the history")
}

func TestStack_RejectedPushLeavesHistory(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	core, logs := observer.New(zap.InfoLevel)
	s := operation.NewStack(10, zap.New(core))

	err := s.PushAndApply(operation.NewAddItem(bus, l.Component(catalog.LocationLeftLeg), testutil.Item(t, reg, "laser")))
	assert.ErrorIs(t, err, loadout.ErrEquipRejected)
	assert.Zero(t, s.Len())
	require.Equal(t, 1, logs.FilterMessage("operation rejected").Len())
}

func TestStack_FailedCoalesceRestoresTop(t *testing.T) {
	_, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	lt := l.Component(catalog.LocationLeftTorso)
	s := operation.NewStack(10, nil)

	require.NoError(t, s.PushAndApply(operation.NewSetArmor(bus, lt, catalog.SideFront, 30, true)))
	err := s.PushAndApply(operation.NewSetArmor(bus, lt, catalog.SideFront, 50, true))
	assert.ErrorIs(t, err, loadout.ErrArmorOutOfRange)
	assert.Equal(t, 30, armorOf(t, lt, catalog.SideFront))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Undo())
	assert.Zero(t, armorOf(t, lt, catalog.SideFront))
}

func TestStack_RejectedRedoStaysAvailable(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	ra := l.Component(catalog.LocationRightArm)
	laser := testutil.Item(t, reg, "laser")
	s := operation.NewStack(10, nil)

	require.NoError(t, s.PushAndApply(operation.NewAddItem(bus, ra, laser)))
	require.NoError(t, s.Undo())
	ra.AddItem(laser)
	ra.AddItem(laser)

	err := s.Redo()
	assert.ErrorIs(t, err, loadout.ErrEquipRejected)
	assert.NotNil(t, s.NextRedo())

	ra.RemoveItem(laser)
	require.NoError(t, s.Redo())
}

func TestStack_Clear(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	bus, _ := newBus()
	s := operation.NewStack(10, nil)
	require.NoError(t, s.PushAndApply(operation.NewAddItem(bus, l.Component(catalog.LocationRightArm), testutil.Item(t, reg, "laser"))))

	s.Clear()
	assert.Zero(t, s.Len())
	assert.ErrorIs(t, s.Undo(), operation.ErrNothingToUndo)
	assert.Len(t, l.Component(catalog.LocationRightArm).Items(), 1)
}

// drawOperation picks a random operation against the current state of l.
func drawOperation(rt *rapid.T, reg *catalog.Registry, bus *message.Bus, l *loadout.Loadout) operation.Operation {
	locs := catalog.Locations()
	c := l.Component(rapid.SampledFrom(locs).Draw(rt, "location"))
	switch rapid.IntRange(0, 5).Draw(rt, "kind") {
	case 0, 1:
		var equippable []*catalog.Item
		for _, it := range reg.AllItems() {
			if it.IsUserRemovable() {
				equippable = append(equippable, it)
			}
		}
		return operation.NewAddItem(bus, c, rapid.SampledFrom(equippable).Draw(rt, "item"))
	case 2:
		items := c.Items()
		if len(items) == 0 {
			return operation.NewStripComponent(bus, c)
		}
		return operation.NewRemoveItem(bus, c, rapid.SampledFrom(items).Draw(rt, "removed"))
	case 3:
		side := rapid.SampledFrom(c.Sides()).Draw(rt, "side")
		amount := rapid.IntRange(0, c.Def().ArmorMax()).Draw(rt, "amount")
		return operation.NewSetArmor(bus, c, side, amount, rapid.Bool().Draw(rt, "manual"))
	case 4:
		structure := rapid.SampledFrom([]string{"std-structure", "endo-steel"}).Draw(rt, "structure")
		guidance := rapid.SampledFrom([]string{"std-guidance", "artemis"}).Draw(rt, "guidance")
		s, _ := reg.Upgrade(structure)
		g, _ := reg.Upgrade(guidance)
		return operation.NewSetUpgrades(bus, l, loadout.Upgrades{Structure: s, Guidance: g})
	default:
		return operation.NewStripComponent(bus, c)
	}
}

func checkInvariants(rt *rapid.T, l *loadout.Loadout) {
	if l.FreeMass() < -1e-6 {
		rt.Fatalf("overweight: free mass %f", l.FreeMass())
	}
	if l.NumCriticalSlotsFree() < 0 {
		rt.Fatalf("global slots overflow: %d", l.NumCriticalSlotsFree())
	}
	if l.JumpJetsEquipped() > l.JumpJetsMax() {
		rt.Fatalf("jump jets %d above capacity %d", l.JumpJetsEquipped(), l.JumpJetsMax())
	}
	for _, c := range l.Components() {
		if c.SlotsFree() < 0 {
			rt.Fatalf("%s slots overflow: %d", c, c.SlotsFree())
		}
		if c.ArmorTotal() > c.Def().ArmorMax() {
			rt.Fatalf("%s armor %d above %d", c, c.ArmorTotal(), c.Def().ArmorMax())
		}
	}
}

func TestPropertyStack_UndoAllRestoresInitialState(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg, l := testutil.NewStandardLoadout(t)
		bus := message.NewBus(nil)
		s := operation.NewStack(0, nil)
		initial := snapshot(l)

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			before := snapshot(l)
			err := s.PushAndApply(drawOperation(rt, reg, bus, l))
			if err != nil {
				if !assert.ObjectsAreEqual(before, snapshot(l)) {
					rt.Fatalf("rejected operation changed the loadout: %v", err)
				}
			}
			checkInvariants(rt, l)
		}
		final := snapshot(l)

		for {
			err := s.Undo()
			if errors.Is(err, operation.ErrNothingToUndo) {
				break
			}
			if err != nil {
				rt.Fatalf("undo: %v", err)
			}
		}
		if !assert.ObjectsAreEqual(initial, snapshot(l)) {
			rt.Fatalf("undo all did not restore the initial loadout")
		}

		for s.NextRedo() != nil {
			if err := s.Redo(); err != nil {
				rt.Fatalf("redo: %v", err)
			}
		}
		if !assert.ObjectsAreEqual(final, snapshot(l)) {
			rt.Fatalf("redo all did not restore the final loadout")
		}
	})
}

func TestPropertyOmniPodSwapRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg, l := testutil.NewOmniLoadout(t)
		bus := message.NewBus(nil)
		s := operation.NewStack(0, nil)

		jj := testutil.Item(t, reg, "jump-jet")
		laser := testutil.Item(t, reg, "clan-laser")
		for _, loc := range catalog.Locations() {
			c := l.Component(loc)
			if rapid.Bool().Draw(rt, "jump jet "+string(loc)) {
				_ = s.PushAndApply(operation.NewAddItem(bus, c, jj))
			}
			if rapid.Bool().Draw(rt, "laser "+string(loc)) {
				_ = s.PushAndApply(operation.NewAddItem(bus, c, laser))
			}
		}
		before := snapshot(l)

		loc := rapid.SampledFrom(catalog.Locations()).Draw(rt, "pod location")
		pods := reg.PodsFor(testutil.OmniSeries, loc)
		pod := rapid.SampledFrom(pods).Draw(rt, "pod")
		op, err := operation.NewChangeOmniPod(bus, l.Component(loc), pod)
		if err != nil {
			rt.Fatalf("building pod swap: %v", err)
		}
		if err := s.PushAndApply(op); err != nil {
			rt.Fatalf("pod swap rejected: %v", err)
		}
		if !l.Component(loc).HasAutomaticArmor() || len(l.Component(loc).Items()) != 0 {
			rt.Fatalf("swapped component not cleared")
		}
		checkInvariants(rt, l)

		if err := s.Undo(); err != nil {
			rt.Fatalf("undo: %v", err)
		}
		if !assert.ObjectsAreEqual(before, snapshot(l)) {
			rt.Fatalf("undoing the pod swap did not restore the loadout")
		}
	})
}
