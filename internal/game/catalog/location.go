package catalog

import (
	"fmt"
	"strings"
)

// Location identifies a fixed body position on a chassis.
type Location string

const (
	// LocationHead is the cockpit location.
	LocationHead Location = "head"
	// LocationLeftArm is the left arm.
	LocationLeftArm Location = "left_arm"
	// LocationLeftTorso is the left side torso.
	LocationLeftTorso Location = "left_torso"
	// LocationCenterTorso is the center torso; engines live here.
	LocationCenterTorso Location = "center_torso"
	// LocationRightTorso is the right side torso.
	LocationRightTorso Location = "right_torso"
	// LocationLeftLeg is the left leg.
	LocationLeftLeg Location = "left_leg"
	// LocationRightLeg is the right leg.
	LocationRightLeg Location = "right_leg"
	// LocationRightArm is the right arm.
	LocationRightArm Location = "right_arm"
)

// locations is the canonical display order of all chassis locations.
var locations = []Location{
	LocationRightArm,
	LocationRightTorso,
	LocationRightLeg,
	LocationHead,
	LocationCenterTorso,
	LocationLeftTorso,
	LocationLeftLeg,
	LocationLeftArm,
}

var locationDisplayNames = map[Location]string{
	LocationHead:        "Head",
	LocationLeftArm:     "Left Arm",
	LocationLeftTorso:   "Left Torso",
	LocationCenterTorso: "Center Torso",
	LocationRightTorso:  "Right Torso",
	LocationLeftLeg:     "Left Leg",
	LocationRightLeg:    "Right Leg",
	LocationRightArm:    "Right Arm",
}

var locationShortNames = map[string]Location{
	"hd": LocationHead,
	"la": LocationLeftArm,
	"lt": LocationLeftTorso,
	"ct": LocationCenterTorso,
	"rt": LocationRightTorso,
	"ll": LocationLeftLeg,
	"rl": LocationRightLeg,
	"ra": LocationRightArm,
}

// Locations returns every location in canonical order.
//
// Postcondition: the returned slice is a fresh copy of length LocationCount.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations)
	return out
}

// LocationCount is the number of locations on every chassis.
const LocationCount = 8

// Index returns the position of l in Locations(), or -1 for an unknown location.
func (l Location) Index() int {
	for i, loc := range locations {
		if loc == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of the eight chassis locations.
func (l Location) Valid() bool {
	return l.Index() >= 0
}

// String returns the human-readable name of the location.
func (l Location) String() string {
	if name, ok := locationDisplayNames[l]; ok {
		return name
	}
	return string(l)
}

// IsTwoSided reports whether the location carries separate front and back armor.
func (l Location) IsTwoSided() bool {
	switch l {
	case LocationLeftTorso, LocationCenterTorso, LocationRightTorso:
		return true
	}
	return false
}

// IsSideTorso reports whether l is the left or right torso.
func (l Location) IsSideTorso() bool {
	return l == LocationLeftTorso || l == LocationRightTorso
}

// Opposite returns the left/right mirror of l.
//
// Postcondition: ok is false for the head and center torso.
func (l Location) Opposite() (Location, bool) {
	switch l {
	case LocationLeftArm:
		return LocationRightArm, true
	case LocationRightArm:
		return LocationLeftArm, true
	case LocationLeftTorso:
		return LocationRightTorso, true
	case LocationRightTorso:
		return LocationLeftTorso, true
	case LocationLeftLeg:
		return LocationRightLeg, true
	case LocationRightLeg:
		return LocationLeftLeg, true
	}
	return "", false
}

// Sides returns the armor sides present on the location.
func (l Location) Sides() []ArmorSide {
	if l.IsTwoSided() {
		return []ArmorSide{SideFront, SideBack}
	}
	return []ArmorSide{SideOnly}
}

// ParseLocation accepts a canonical location id ("left_torso") or its
// two-letter abbreviation ("lt"), case-insensitively.
func ParseLocation(s string) (Location, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if loc, ok := locationShortNames[s]; ok {
		return loc, nil
	}
	loc := Location(s)
	if !loc.Valid() {
		return "", fmt.Errorf("unknown location %q", s)
	}
	return loc, nil
}

// ArmorSide identifies which face of a location an armor value applies to.
type ArmorSide string

const (
	// SideOnly is the single armor value of a one-sided location.
	SideOnly ArmorSide = "only"
	// SideFront is the front armor of a torso location.
	SideFront ArmorSide = "front"
	// SideBack is the rear armor of a torso location.
	SideBack ArmorSide = "back"
)

// Other returns the opposing face for front/back; SideOnly maps to itself.
func (s ArmorSide) Other() ArmorSide {
	switch s {
	case SideFront:
		return SideBack
	case SideBack:
		return SideFront
	}
	return s
}

// ParseArmorSide accepts "only", "front" or "back" (or f/b), case-insensitively.
func ParseArmorSide(s string) (ArmorSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "only", "o":
		return SideOnly, nil
	case "front", "f":
		return SideFront, nil
	case "back", "rear", "b":
		return SideBack, nil
	}
	return "", fmt.Errorf("unknown armor side %q", s)
}
