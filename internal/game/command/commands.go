// Package command provides the editor command registry, parser, and the
// handlers that turn text commands into loadout operations.
package command

// Categories for organizing commands.
const (
	CategoryEquipment = "equipment"
	CategoryArmor     = "armor"
	CategoryOmni      = "omni"
	CategoryHistory   = "history"
	CategoryInfo      = "info"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to editor handlers.
const (
	HandlerAdd      = "add"
	HandlerRemove   = "remove"
	HandlerStrip    = "strip"
	HandlerArmor    = "armor"
	HandlerArmorSym = "armor-sym"
	HandlerPod      = "pod"
	HandlerToggle   = "toggle"
	HandlerUpgrades = "upgrades"
	HandlerUndo     = "undo"
	HandlerRedo     = "redo"
	HandlerShow     = "show"
	HandlerItems    = "items"
	HandlerPods     = "pods"
	HandlerRename   = "rename"
	HandlerHelp     = "help"
	HandlerQuit     = "quit"
)

// Command defines a user-invocable editor command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to users.
	Help string
	// Category groups the command in help output.
	Category string
	// Handler maps to the editor handler.
	Handler string
}

// BuiltinCommands returns all built-in editor commands.
func BuiltinCommands() []Command {
	return []Command{
		// Equipment commands
		{Name: "add", Aliases: []string{"a", "equip"}, Help: "Equip an item (add <item_id> <location>)", Category: CategoryEquipment, Handler: HandlerAdd},
		{Name: "remove", Aliases: []string{"rm", "unequip"}, Help: "Remove an item (remove <item_id> <location>)", Category: CategoryEquipment, Handler: HandlerRemove},
		{Name: "strip", Aliases: nil, Help: "Remove all items and armor from a location (strip <location>)", Category: CategoryEquipment, Handler: HandlerStrip},
		{Name: "upgrades", Aliases: []string{"up"}, Help: "Show or change upgrades (upgrades [upgrade_id...])", Category: CategoryEquipment, Handler: HandlerUpgrades},

		// Armor commands
		{Name: "armor", Aliases: []string{"ar"}, Help: "Set armor (armor <location> [front|back] <points>)", Category: CategoryArmor, Handler: HandlerArmor},
		{Name: "armor-sym", Aliases: []string{"sym"}, Help: "Set armor on a location and its mirror (armor-sym <location> [front|back] <points>)", Category: CategoryArmor, Handler: HandlerArmorSym},

		// Omni commands
		{Name: "pod", Aliases: nil, Help: "Mount an omnipod (pod <location> <pod_id>)", Category: CategoryOmni, Handler: HandlerPod},
		{Name: "toggle", Aliases: []string{"tg"}, Help: "Switch an actuator (toggle <location> <lower|hand> <on|off>)", Category: CategoryOmni, Handler: HandlerToggle},

		// History commands
		{Name: "undo", Aliases: []string{"u", "z"}, Help: "Undo the last change", Category: CategoryHistory, Handler: HandlerUndo},
		{Name: "redo", Aliases: []string{"y"}, Help: "Redo the last undone change", Category: CategoryHistory, Handler: HandlerRedo},

		// Info commands
		{Name: "show", Aliases: []string{"ls", "stats"}, Help: "Show the loadout or one location (show [location])", Category: CategoryInfo, Handler: HandlerShow},
		{Name: "items", Aliases: []string{"catalog"}, Help: "List catalog items (items [kind])", Category: CategoryInfo, Handler: HandlerItems},
		{Name: "pods", Aliases: nil, Help: "List omnipods for a location (pods <location>)", Category: CategoryInfo, Handler: HandlerPods},

		// System commands
		{Name: "rename", Aliases: nil, Help: "Rename the loadout (rename <name>)", Category: CategorySystem, Handler: HandlerRename},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Leave the editor", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsMutatingCommand reports whether the handler changes the loadout through the history.
func IsMutatingCommand(handler string) bool {
	switch handler {
	case HandlerAdd, HandlerRemove, HandlerStrip, HandlerArmor, HandlerArmorSym,
		HandlerPod, HandlerToggle, HandlerUpgrades:
		return true
	default:
		return false
	}
}
