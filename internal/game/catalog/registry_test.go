package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
)

func baseUpgrades() []*catalog.Upgrade {
	return []*catalog.Upgrade{
		{ID: "std-structure", Name: "Standard Structure", Type: catalog.UpgradeStructure, MassFraction: 0.1},
		{ID: "std-armor", Name: "Standard Armor", Type: catalog.UpgradeArmor, PointsPerTon: 32},
		{ID: "single-heat-sinks", Name: "Single Heat Sinks", Type: catalog.UpgradeHeatSink, HeatSinkID: "heat-sink"},
		{ID: "std-guidance", Name: "Standard Guidance", Type: catalog.UpgradeGuidance},
	}
}

// newRegistry registers a skeleton chassis with default upgrades plus extra items.
func newRegistry(t *testing.T, extra ...*catalog.Item) (*catalog.Registry, *catalog.Chassis) {
	t.Helper()
	reg := catalog.NewRegistry()
	items := append([]*catalog.Item{{ID: "heat-sink", Name: "Heat Sink", Kind: catalog.KindHeatSink, Slots: 1, Tons: 1}}, extra...)
	for _, it := range items {
		require.NoError(t, reg.RegisterItem(it))
	}
	for _, u := range baseUpgrades() {
		require.NoError(t, reg.RegisterUpgrade(u))
	}
	c := skeleton()
	c.DefaultUpgrades = catalog.DefaultUpgrades{
		Structure: "std-structure", Armor: "std-armor", HeatSink: "single-heat-sinks", Guidance: "std-guidance",
	}
	require.NoError(t, reg.RegisterChassis(c))
	return reg, c
}

func TestRegistry_Duplicates(t *testing.T) {
	reg, c := newRegistry(t)

	err := reg.RegisterItem(&catalog.Item{ID: "heat-sink"})
	assert.ErrorContains(t, err, `item ID "heat-sink" already registered`)
	assert.ErrorContains(t, reg.RegisterChassis(c), "already registered")
	assert.ErrorContains(t, reg.RegisterUpgrade(&catalog.Upgrade{ID: "std-armor"}), "already registered")

	require.NoError(t, reg.RegisterOmniPod(&catalog.OmniPod{ID: "pod"}))
	assert.ErrorContains(t, reg.RegisterOmniPod(&catalog.OmniPod{ID: "pod"}), "already registered")
}

func TestRegistry_ResolveLinksReferences(t *testing.T) {
	side := &catalog.Item{ID: "xl-side", Name: "XL Side", Kind: catalog.KindInternal, Slots: 3}
	engine := &catalog.Item{ID: "xl", Name: "XL", Kind: catalog.KindEngine, Rating: 300, EngineType: catalog.EngineXL, SideItemID: "xl-side"}
	cockpit := &catalog.Item{ID: "cockpit", Name: "Cockpit", Kind: catalog.KindInternal, Slots: 1, Tons: 3}
	reg, c := newRegistry(t, side, engine, cockpit)
	c.Component(catalog.LocationHead).FixedItemIDs = []string{"cockpit"}

	require.NoError(t, reg.Resolve())
	assert.Same(t, side, engine.SideItem)
	assert.Equal(t, []*catalog.Item{cockpit}, c.Component(catalog.LocationHead).FixedItems)

	u, ok := reg.Upgrade("single-heat-sinks")
	require.True(t, ok)
	require.NotNil(t, u.HeatSink)
	assert.Equal(t, "heat-sink", u.HeatSink.ID)

	set, err := reg.DefaultUpgrades(c)
	require.NoError(t, err)
	assert.Equal(t, "std-structure", set.Structure.ID)
	assert.Equal(t, "std-guidance", set.Guidance.ID)
}

func TestRegistry_ResolveFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalog.Registry, *catalog.Chassis)
		want   string
	}{
		{"missing side item", func(r *catalog.Registry, _ *catalog.Chassis) {
			_ = r.RegisterItem(&catalog.Item{ID: "xl", Kind: catalog.KindEngine, SideItemID: "nowhere"})
		}, `side_item "nowhere" not found`},
		{"missing fixed item", func(_ *catalog.Registry, c *catalog.Chassis) {
			c.Component(catalog.LocationHead).FixedItemIDs = []string{"cockpit"}
		}, `item "cockpit" not found`},
		{"missing default upgrade", func(_ *catalog.Registry, c *catalog.Chassis) {
			c.DefaultUpgrades.Armor = "ferro-fibrous"
		}, `armor upgrade "ferro-fibrous" not found`},
		{"mistyped default upgrade", func(_ *catalog.Registry, c *catalog.Chassis) {
			c.DefaultUpgrades.Armor = "std-structure"
		}, "is structure, want armor"},
		{"omni without pods", func(_ *catalog.Registry, c *catalog.Chassis) {
			c.Variant = catalog.VariantOmni
		}, "no default pod for"},
		{"pod of wrong series", func(r *catalog.Registry, c *catalog.Chassis) {
			_ = r.RegisterOmniPod(&catalog.OmniPod{ID: "other-ra", Series: "other", Location: catalog.LocationRightArm})
			c.DefaultPodIDs = map[catalog.Location]string{catalog.LocationRightArm: "other-ra"}
		}, `default pod "other-ra" does not fit`},
		{"missing toggleable", func(r *catalog.Registry, _ *catalog.Chassis) {
			_ = r.RegisterOmniPod(&catalog.OmniPod{ID: "pod", Series: "hunchback", Location: catalog.LocationLeftArm,
				ToggleableIDs: []string{catalog.HandActuatorID}})
		}, `omnipod "pod"`},
		{"heat sink upgrade without item", func(r *catalog.Registry, _ *catalog.Chassis) {
			_ = r.RegisterUpgrade(&catalog.Upgrade{ID: "dhs", Type: catalog.UpgradeHeatSink, HeatSinkID: "double-heat-sink"})
		}, `heat sink "double-heat-sink" not found`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, c := newRegistry(t)
			tt.mutate(reg, c)
			err := reg.Resolve()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistry_ListsAreSorted(t *testing.T) {
	reg, _ := newRegistry(t,
		&catalog.Item{ID: "zeus-gun", Name: "Z", Kind: catalog.KindWeapon},
		&catalog.Item{ID: "ac-2", Name: "A", Kind: catalog.KindWeapon},
	)
	for _, id := range []string{"wolf-b", "wolf-a"} {
		require.NoError(t, reg.RegisterOmniPod(&catalog.OmniPod{ID: id, Series: "wolf", Location: catalog.LocationLeftArm}))
	}
	require.NoError(t, reg.RegisterOmniPod(&catalog.OmniPod{ID: "wolf-c", Series: "wolf", Location: catalog.LocationRightArm}))

	items := reg.AllItems()
	require.Len(t, items, 3)
	assert.Equal(t, "ac-2", items[0].ID)
	assert.Equal(t, "zeus-gun", items[2].ID)

	pods := reg.PodsFor("wolf", catalog.LocationLeftArm)
	require.Len(t, pods, 2)
	assert.Equal(t, "wolf-a", pods[0].ID)
	assert.Empty(t, reg.PodsFor("fox", catalog.LocationLeftArm))
}

func TestLoadDir_MissingSubdirectory(t *testing.T) {
	_, err := catalog.LoadDir(filepath.Join(t.TempDir(), "nothing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading items")
}
