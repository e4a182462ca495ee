package command

import (
	"fmt"
	"slices"
	"strings"
)

// Registry resolves typed command words to editor commands. A word resolves
// by canonical name, by alias, or as a prefix shared by exactly one command.
type Registry struct {
	commands map[string]*Command // canonical name → command
	names    map[string]string   // canonical name or alias → canonical name
	sorted   []string            // every key of names, ascending
}

// NewRegistry creates a Registry populated with cmds.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error naming the first collision.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		names:    make(map[string]string),
	}
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Name == "" {
			return nil, fmt.Errorf("command %d has no name", i)
		}
		if owner, exists := r.names[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q already used by %q", cmd.Name, owner)
		}
		r.commands[cmd.Name] = cmd
		r.names[cmd.Name] = cmd.Name
		for _, alias := range cmd.Aliases {
			if owner, exists := r.names[alias]; exists {
				return nil, fmt.Errorf("alias %q of %q already used by %q", alias, cmd.Name, owner)
			}
			r.names[alias] = cmd.Name
		}
	}
	for word := range r.names {
		r.sorted = append(r.sorted, word)
	}
	slices.Sort(r.sorted)
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: panics only if BuiltinCommands contains a collision.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name, alias, or unambiguous prefix.
//
// Postcondition: Returns (command, true) if exactly one command matches.
func (r *Registry) Resolve(input string) (*Command, bool) {
	if name, ok := r.names[input]; ok {
		return r.commands[name], true
	}
	matches := r.Candidates(input)
	if len(matches) != 1 {
		return nil, false
	}
	return r.commands[matches[0]], true
}

// Candidates returns the canonical names of the commands whose name or alias
// starts with prefix, ascending and without duplicates.
func (r *Registry) Candidates(prefix string) []string {
	if prefix == "" {
		return nil
	}
	i, _ := slices.BinarySearch(r.sorted, prefix)
	var out []string
	for ; i < len(r.sorted) && strings.HasPrefix(r.sorted[i], prefix); i++ {
		name := r.names[r.sorted[i]]
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	slices.SortFunc(result, func(a, b *Command) int { return strings.Compare(a.Name, b.Name) })
	return result
}

// CommandsByCategory returns commands grouped by category, each group sorted by name.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}
