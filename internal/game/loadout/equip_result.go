package loadout

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
)

// ResultType enumerates why an equip check passed or failed.
type ResultType int

// ResultType constants.
const (
	Success ResultType = iota
	NotSupported
	IncompatibleFaction
	IncompatibleUpgrades
	NoFreeHardPoints
	NotEnoughSlots
	NotEnoughSlotsForXLSide
	TooHeavy
	JumpJetCapacityReached
	EngineAlreadyEquipped
	EngineRatingOutOfRange
	ComponentAlreadyHasCase
	LargeBoreWeaponActuatorConflict
)

var resultMessages = map[ResultType]string{
	Success:                         "success",
	NotSupported:                    "not supported",
	IncompatibleFaction:             "incompatible technology base",
	IncompatibleUpgrades:            "incompatible with selected upgrades",
	NoFreeHardPoints:                "no free hardpoints",
	NotEnoughSlots:                  "not enough free slots",
	NotEnoughSlotsForXLSide:         "not enough free slots in side torso for engine",
	TooHeavy:                        "too heavy",
	JumpJetCapacityReached:          "jump jet capacity reached",
	EngineAlreadyEquipped:           "an engine is already equipped",
	EngineRatingOutOfRange:          "engine rating out of range for chassis",
	ComponentAlreadyHasCase:         "component already has CASE",
	LargeBoreWeaponActuatorConflict: "large bore weapon conflicts with lower arm or hand actuator",
}

// String returns a short human-readable description.
func (t ResultType) String() string {
	if msg, ok := resultMessages[t]; ok {
		return msg
	}
	return fmt.Sprintf("result(%d)", int(t))
}

// EquipResult is the outcome of a legality check. A non-Success result is
// usable as an error that unwraps to ErrEquipRejected.
type EquipResult struct {
	Type ResultType
	// Location is set when the failure is specific to one component.
	Location catalog.Location
	Item     *catalog.Item
}

// OK reports whether the check passed.
func (r EquipResult) OK() bool {
	return r.Type == Success
}

// Err returns nil for a successful result and the result itself otherwise.
func (r EquipResult) Err() error {
	if r.OK() {
		return nil
	}
	return r
}

// Error implements error.
func (r EquipResult) Error() string {
	var name string
	if r.Item != nil {
		name = r.Item.Name
	}
	if r.Location != "" {
		return fmt.Sprintf("cannot equip %s in %s: %s", name, r.Location, r.Type)
	}
	return fmt.Sprintf("cannot equip %s: %s", name, r.Type)
}

// Unwrap makes errors.Is(result, ErrEquipRejected) hold.
func (r EquipResult) Unwrap() error {
	return ErrEquipRejected
}

func ok() EquipResult {
	return EquipResult{Type: Success}
}

func reject(t ResultType, loc catalog.Location, item *catalog.Item) EquipResult {
	return EquipResult{Type: t, Location: loc, Item: item}
}
