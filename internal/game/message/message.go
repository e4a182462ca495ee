// Package message carries change notifications from operations to observers.
package message

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
)

// Message is a change notification posted on a Bus.
type Message interface {
	// LoadoutID identifies the loadout the message concerns; uuid.Nil when unset.
	LoadoutID() uuid.UUID
	// IsForMe reports whether the message concerns l.
	IsForMe(l *loadout.Loadout) bool
	// AffectsHeatOrDamage reports whether metrics depending on heat or damage must be recomputed.
	AffectsHeatOrDamage() bool
}

// Type identifies what changed on a component.
type Type int

// Type constants.
const (
	ItemAdded Type = iota
	ItemRemoved
	ItemsChanged
	ArmorChanged
	ArmorDistributionUpdateRequest
	OmniPodChanged
)

var typeNames = map[Type]string{
	ItemAdded:                      "ItemAdded",
	ItemRemoved:                    "ItemRemoved",
	ItemsChanged:                   "ItemsChanged",
	ArmorChanged:                   "ArmorChanged",
	ArmorDistributionUpdateRequest: "ArmorDistributionUpdateRequest",
	OmniPodChanged:                 "OmniPodChanged",
}

// String returns the type name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func idOf(l *loadout.Loadout) uuid.UUID {
	if l == nil {
		return uuid.Nil
	}
	return l.ID()
}

func concerns(id uuid.UUID, l *loadout.Loadout) bool {
	return l != nil && id != uuid.Nil && id == l.ID()
}

// ComponentMessage reports a change to one component.
type ComponentMessage struct {
	Loadout   *loadout.Loadout
	Component *loadout.ConfiguredComponent
	Type      Type
	// Item is set for ItemAdded and ItemRemoved.
	Item *catalog.Item
	// Automatic is set for ArmorChanged when the armor is under automatic distribution.
	Automatic bool
}

// LoadoutID implements Message.
func (m ComponentMessage) LoadoutID() uuid.UUID { return idOf(m.Loadout) }

// IsForMe implements Message.
func (m ComponentMessage) IsForMe(l *loadout.Loadout) bool { return concerns(m.LoadoutID(), l) }

// AffectsHeatOrDamage implements Message.
func (m ComponentMessage) AffectsHeatOrDamage() bool {
	switch m.Type {
	case ItemAdded, ItemRemoved:
		return m.Item != nil && m.Item.AffectsHeatOrDamage()
	case ItemsChanged, OmniPodChanged:
		return true
	}
	return false
}

// String returns a compact description for logs.
func (m ComponentMessage) String() string {
	s := fmt.Sprintf("%s %s", m.Type, m.Component)
	if m.Item != nil {
		s += " " + m.Item.Name
	}
	if m.Type == ArmorChanged && m.Automatic {
		s += " (automatic)"
	}
	return s
}

// UpgradesMessage reports a change of the upgrade selection.
type UpgradesMessage struct {
	Loadout *loadout.Loadout
}

// LoadoutID implements Message.
func (m UpgradesMessage) LoadoutID() uuid.UUID { return idOf(m.Loadout) }

// IsForMe implements Message.
func (m UpgradesMessage) IsForMe(l *loadout.Loadout) bool { return concerns(m.LoadoutID(), l) }

func (m UpgradesMessage) String() string { return "UpgradesChanged" }

// AffectsHeatOrDamage implements Message. Guidance changes alter missile
// behaviour, so upgrade changes always ask for a recompute.
func (m UpgradesMessage) AffectsHeatOrDamage() bool { return true }

// Severity grades a NotificationMessage.
type Severity int

// Severity constants.
const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// NotificationMessage is an advisory for the user. It never signals failure.
type NotificationMessage struct {
	Loadout  *loadout.Loadout
	Severity Severity
	Text     string
}

// LoadoutID implements Message.
func (m NotificationMessage) LoadoutID() uuid.UUID { return idOf(m.Loadout) }

// IsForMe implements Message.
func (m NotificationMessage) IsForMe(l *loadout.Loadout) bool { return concerns(m.LoadoutID(), l) }

// AffectsHeatOrDamage implements Message.
func (m NotificationMessage) AffectsHeatOrDamage() bool { return false }

func (m NotificationMessage) String() string { return "Notification: " + m.Text }
