package command

import (
	"fmt"
	"sort"
	"strings"
)

// categoryOrder is the order categories appear in help output.
var categoryOrder = []string{
	CategoryEquipment,
	CategoryArmor,
	CategoryOmni,
	CategoryHistory,
	CategoryInfo,
	CategorySystem,
}

// HandleHelp lists every command grouped by category.
//
// Precondition: reg must not be nil.
func HandleHelp(reg *Registry) string {
	byCat := reg.CommandsByCategory()
	var sb strings.Builder
	for _, cat := range categoryOrder {
		cmds := byCat[cat]
		if len(cmds) == 0 {
			continue
		}
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		fmt.Fprintf(&sb, "%s:\n", strings.ToUpper(cat[:1])+cat[1:])
		for _, cmd := range cmds {
			name := cmd.Name
			if len(cmd.Aliases) > 0 {
				name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			fmt.Fprintf(&sb, "  %-22s %s\n", name, cmd.Help)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
