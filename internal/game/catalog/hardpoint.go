package catalog

// HardPointType is the mounting category an item requires.
type HardPointType string

const (
	// HardPointNone marks items that need no hardpoint.
	HardPointNone HardPointType = "none"
	// HardPointEnergy mounts lasers and PPCs.
	HardPointEnergy HardPointType = "energy"
	// HardPointBallistic mounts autocannons and gauss rifles.
	HardPointBallistic HardPointType = "ballistic"
	// HardPointMissile mounts missile launchers.
	HardPointMissile HardPointType = "missile"
	// HardPointAMS mounts anti-missile systems.
	HardPointAMS HardPointType = "ams"
	// HardPointECM mounts electronic countermeasures.
	HardPointECM HardPointType = "ecm"
)

var validHardPoints = map[HardPointType]bool{
	HardPointNone:      true,
	HardPointEnergy:    true,
	HardPointBallistic: true,
	HardPointMissile:   true,
	HardPointAMS:       true,
	HardPointECM:       true,
}

// HardPointTypes returns every hardpoint type that consumes a mount, in display order.
func HardPointTypes() []HardPointType {
	return []HardPointType{HardPointEnergy, HardPointBallistic, HardPointMissile, HardPointAMS, HardPointECM}
}

// orNone normalises the zero value to HardPointNone.
func (h HardPointType) orNone() HardPointType {
	if h == "" {
		return HardPointNone
	}
	return h
}

// Faction is the technology base an item, upgrade or chassis belongs to.
type Faction string

const (
	// FactionAny is usable by every chassis.
	FactionAny Faction = "any"
	// FactionInnerSphere is Inner Sphere technology.
	FactionInnerSphere Faction = "innersphere"
	// FactionClan is Clan technology.
	FactionClan Faction = "clan"
)

var validFactions = map[Faction]bool{
	FactionAny:         true,
	FactionInnerSphere: true,
	FactionClan:        true,
}

func (f Faction) orAny() Faction {
	if f == "" {
		return FactionAny
	}
	return f
}

// IsCompatible reports whether equipment of faction f may be mounted on a
// chassis of faction chassis.
func (f Faction) IsCompatible(chassis Faction) bool {
	f = f.orAny()
	chassis = chassis.orAny()
	return f == FactionAny || chassis == FactionAny || f == chassis
}
