package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/operation"
)

// HandleUpgrades processes the "upgrades" command. Without arguments it lists
// the current selection; otherwise each argument names an upgrade that
// replaces the current one of its family.
//
// Precondition: e must not be nil.
// Postcondition: all named upgrades change together or not at all.
func HandleUpgrades(e *Editor, args []string) string {
	if len(args) == 0 {
		return formatUpgrades(e.loadout.Upgrades())
	}
	var want loadout.Upgrades
	for _, id := range args {
		u, ok := e.catalog.Upgrade(strings.ToLower(id))
		if !ok {
			return fmt.Sprintf("Unknown upgrade %q.", id)
		}
		switch u.Type {
		case catalog.UpgradeStructure:
			want.Structure = u
		case catalog.UpgradeArmor:
			want.Armor = u
		case catalog.UpgradeHeatSink:
			want.HeatSink = u
		case catalog.UpgradeGuidance:
			want.Guidance = u
		}
	}
	return e.push(operation.NewSetUpgrades(e.bus, e.loadout, want))
}

func formatUpgrades(u loadout.Upgrades) string {
	var sb strings.Builder
	sb.WriteString("=== Upgrades ===\n")
	fmt.Fprintf(&sb, "  %-11s %s\n", "Structure:", u.Structure.Name)
	fmt.Fprintf(&sb, "  %-11s %s\n", "Armor:", u.Armor.Name)
	fmt.Fprintf(&sb, "  %-11s %s\n", "Heat sinks:", u.HeatSink.Name)
	fmt.Fprintf(&sb, "  %-11s %s", "Guidance:", u.Guidance.Name)
	return sb.String()
}
