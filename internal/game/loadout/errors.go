package loadout

import "errors"

// Error kinds surfaced by components and operations. Callers match them with errors.Is.
var (
	// ErrEquipRejected is returned when a local or global legality check fails.
	ErrEquipRejected = errors.New("equip rejected")
	// ErrArmorOutOfRange is returned when requested armor exceeds the skeleton or side-shared maximum.
	ErrArmorOutOfRange = errors.New("armor out of range")
	// ErrInsufficientTonnage is returned when armor would exceed the chassis tonnage
	// even after freeing automatic armor elsewhere.
	ErrInsufficientTonnage = errors.New("insufficient tonnage")
	// ErrInvalidOperationState is returned when an operation is undone before it was applied,
	// or applied twice.
	ErrInvalidOperationState = errors.New("invalid operation state")
	// ErrUnknownArmorSide is returned when a location is queried for a side it does not have.
	ErrUnknownArmorSide = errors.New("unknown armor side")
	// ErrItemNotPresent is returned when removing an item that is not equipped or not removable.
	ErrItemNotPresent = errors.New("item not present")
)
