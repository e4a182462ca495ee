package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
)

// HandleShow processes the "show" command. Without arguments it prints the
// loadout summary followed by every location; with a location it prints
// only that location.
//
// Precondition: e must not be nil.
// Postcondition: Returns a multi-line report with no trailing newline.
func HandleShow(e *Editor, p ParseResult) string {
	if len(p.Words) > 1 {
		return "Usage: show [location]"
	}
	if len(p.Words) == 1 {
		c, err := e.component(p.Words[0])
		if err != nil {
			return sentence(err.Error())
		}
		return strings.TrimRight(renderComponent(c), "\n")
	}

	l := e.loadout
	var sb strings.Builder
	sb.WriteString(renderSummary(l))
	for _, c := range l.Components() {
		sb.WriteString("\n")
		sb.WriteString(renderComponent(c))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderSummary(l *loadout.Loadout) string {
	ch := l.Chassis()
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %s (%s, %dt) ===\n", l.Name(), ch.Name, ch.Tonnage)
	fmt.Fprintf(&sb, "  Mass:       %.2f / %d (%.2f free)\n", l.Mass(), ch.Tonnage, l.FreeMass())
	fmt.Fprintf(&sb, "  Slots:      %d used, %d free\n", l.NumCriticalSlotsUsed(), l.NumCriticalSlotsFree())
	fmt.Fprintf(&sb, "  Armor:      %d / %d (%.2ft)\n", l.ArmorTotal(), ch.ArmorMax(), l.ArmorMass())
	fmt.Fprintf(&sb, "  Jump jets:  %d / %d\n", l.JumpJetsEquipped(), l.JumpJetsMax())
	fmt.Fprintf(&sb, "  Heat sinks: %d\n", l.HeatSinksCount())
	engine := "none"
	if eng := l.Engine(); eng != nil {
		engine = eng.Name
	}
	fmt.Fprintf(&sb, "  Engine:     %s\n", engine)
	u := l.Upgrades()
	fmt.Fprintf(&sb, "  Upgrades:   %s, %s, %s, %s\n", u.Structure.Name, u.Armor.Name, u.HeatSink.Name, u.Guidance.Name)
	return sb.String()
}

func renderComponent(c *loadout.ConfiguredComponent) string {
	var sb strings.Builder
	sb.WriteString(c.String())
	if pod := c.OmniPod(); pod != nil {
		fmt.Fprintf(&sb, " [%s]", pod.ID)
	}
	sb.WriteString(":\n")

	armor := make([]string, 0, 2)
	for _, side := range c.Sides() {
		pts, _ := c.Armor(side)
		limit, _ := c.ArmorMax(side)
		if side == catalog.SideOnly {
			armor = append(armor, fmt.Sprintf("%d/%d", pts, limit))
		} else {
			armor = append(armor, fmt.Sprintf("%s %d/%d", side, pts, limit))
		}
	}
	auto := ""
	if c.HasAutomaticArmor() {
		auto = " (auto)"
	}
	fmt.Fprintf(&sb, "  Armor: %s%s\n", strings.Join(armor, ", "), auto)
	fmt.Fprintf(&sb, "  Slots: %d used, %d free\n", c.SlotsUsed(), c.SlotsFree())

	hps := make([]string, 0, len(catalog.HardPointTypes()))
	for _, t := range catalog.HardPointTypes() {
		if n := c.HardPointCount(t); n > 0 {
			hps = append(hps, fmt.Sprintf("%s %d/%d", t, c.HardPointsUsed(t), n))
		}
	}
	if len(hps) > 0 {
		fmt.Fprintf(&sb, "  Hardpoints: %s\n", strings.Join(hps, ", "))
	}

	for _, it := range c.FixedItems() {
		if !it.IsToggleable() {
			fmt.Fprintf(&sb, "  = %s\n", it.Name)
		}
	}
	for _, it := range c.Items() {
		fmt.Fprintf(&sb, "  - %s\n", it.Name)
	}
	if pod := c.OmniPod(); pod != nil {
		fixed := c.FixedItems()
		for _, it := range pod.Toggleables {
			state := "off"
			switch {
			case c.ToggleState(it) && slices.Contains(fixed, it):
				state = "on"
			case c.ToggleState(it):
				state = "displaced"
			}
			fmt.Fprintf(&sb, "  * %s (%s)\n", it.Name, state)
		}
	}
	return sb.String()
}

// HandleItems processes the "items" command: it lists every item the loadout's
// chassis could mount, optionally filtered by kind.
func HandleItems(e *Editor, args []string) string {
	if len(args) > 1 {
		return "Usage: items [kind]"
	}
	var kind catalog.Kind
	if len(args) == 1 {
		kind = catalog.Kind(strings.ToLower(args[0]))
	}
	faction := e.loadout.Chassis().Faction

	var sb strings.Builder
	for _, it := range e.catalog.AllItems() {
		if !it.IsUserRemovable() || !it.Faction.IsCompatible(faction) {
			continue
		}
		if kind != "" && it.Kind != kind {
			continue
		}
		fmt.Fprintf(&sb, "  %-24s %-28s %-10s %2d slots %6.2ft\n", it.ID, it.Name, it.Kind, it.Slots, it.Tons)
	}
	if sb.Len() == 0 {
		if kind != "" {
			return fmt.Sprintf("No %s items available.", kind)
		}
		return "No items available."
	}
	return strings.TrimRight(sb.String(), "\n")
}

// HandlePods processes the "pods" command: it lists the omnipods of the
// chassis series that fit a location.
func HandlePods(e *Editor, p ParseResult) string {
	if len(p.Words) != 1 {
		return "Usage: pods <location>"
	}
	ch := e.loadout.Chassis()
	if !ch.IsOmni() {
		return fmt.Sprintf("%s is not an omni chassis.", ch.Name)
	}
	loc, err := p.Words[0].Location()
	if err != nil {
		return sentence(err.Error())
	}
	pods := e.catalog.PodsFor(ch.Series, loc)
	if len(pods) == 0 {
		return fmt.Sprintf("No omnipods for %s.", loc)
	}
	current := e.loadout.Component(loc).OmniPod()

	var sb strings.Builder
	for _, pod := range pods {
		marker := ""
		if current != nil && current.ID == pod.ID {
			marker = " [mounted]"
		}
		hps := make([]string, 0, len(pod.HardPoints))
		for _, t := range catalog.HardPointTypes() {
			if n := pod.HardPointCount(t); n > 0 {
				hps = append(hps, fmt.Sprintf("%s %d", t, n))
			}
		}
		if pod.JumpJets > 0 {
			hps = append(hps, fmt.Sprintf("jump jets %d", pod.JumpJets))
		}
		fmt.Fprintf(&sb, "  %-28s %s%s\n", pod.ID, strings.Join(hps, ", "), marker)
	}
	return strings.TrimRight(sb.String(), "\n")
}
