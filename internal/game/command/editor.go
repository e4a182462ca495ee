package command

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
	"github.com/cory-johannsen/mechlab/internal/game/operation"
)

// Editor is an interactive editing session on one loadout. Every change goes
// through the operation stack; advisories posted on the bus are logged and
// shown after the command that caused them.
type Editor struct {
	catalog  *catalog.Registry
	loadout  *loadout.Loadout
	stack    *operation.Stack
	bus      *message.Bus
	commands *Registry
	logger   *zap.Logger

	pending []message.NotificationMessage
	detach  func()
}

// NewEditor creates an Editor and attaches it to bus.
//
// Precondition: cat, l, stack and bus must be non-nil; l must be built from cat.
// Postcondition: a nil logger is replaced with a no-op logger. Close detaches the editor.
func NewEditor(cat *catalog.Registry, l *loadout.Loadout, stack *operation.Stack, bus *message.Bus, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Editor{
		catalog:  cat,
		loadout:  l,
		stack:    stack,
		bus:      bus,
		commands: DefaultRegistry(),
		logger:   logger,
	}
	e.detach = bus.Attach(message.ListenerFunc(e.receive))
	return e
}

// Close detaches the editor from its bus.
func (e *Editor) Close() {
	e.detach()
}

// Loadout returns the loadout being edited.
func (e *Editor) Loadout() *loadout.Loadout { return e.loadout }

// Commands returns the command registry used to resolve input.
func (e *Editor) Commands() *Registry { return e.commands }

func (e *Editor) receive(msg message.Message) {
	n, ok := msg.(message.NotificationMessage)
	if !ok || !n.IsForMe(e.loadout) {
		return
	}
	if n.Severity == message.SeverityWarning {
		e.logger.Warn("loadout advisory",
			zap.String("loadout", e.loadout.Name()),
			zap.String("advisory", n.Text),
		)
	} else {
		e.logger.Info("loadout advisory",
			zap.String("loadout", e.loadout.Name()),
			zap.String("advisory", n.Text),
		)
	}
	e.pending = append(e.pending, n)
}

// Execute runs one line of input.
//
// Postcondition: returns the text to show the user and whether the session should end.
func (e *Editor) Execute(line string) (string, bool) {
	parsed := Parse(line)
	if parsed.Command == "" {
		return "", false
	}
	cmd, ok := e.commands.Resolve(parsed.Command)
	if !ok {
		if names := e.commands.Candidates(parsed.Command); len(names) > 1 {
			return fmt.Sprintf("Ambiguous command %q: %s.", parsed.Command, strings.Join(names, ", ")), false
		}
		return fmt.Sprintf("Unknown command %q. Type 'help' for a list of commands.", parsed.Command), false
	}
	e.logger.Debug("executing command",
		zap.String("command", cmd.Name),
		zap.Strings("args", parsed.Args),
	)

	e.pending = nil
	var out string
	switch cmd.Handler {
	case HandlerAdd:
		out = HandleAdd(e, parsed)
	case HandlerRemove:
		out = HandleRemove(e, parsed)
	case HandlerStrip:
		out = HandleStrip(e, parsed)
	case HandlerArmor:
		out = HandleArmor(e, parsed, false)
	case HandlerArmorSym:
		out = HandleArmor(e, parsed, true)
	case HandlerPod:
		out = HandlePod(e, parsed)
	case HandlerToggle:
		out = HandleToggle(e, parsed)
	case HandlerUpgrades:
		out = HandleUpgrades(e, parsed.Args)
	case HandlerUndo:
		out = HandleUndo(e)
	case HandlerRedo:
		out = HandleRedo(e)
	case HandlerShow:
		out = HandleShow(e, parsed)
	case HandlerItems:
		out = HandleItems(e, parsed.Args)
	case HandlerPods:
		out = HandlePods(e, parsed)
	case HandlerRename:
		out = HandleRename(e, parsed.RawArgs)
	case HandlerHelp:
		out = HandleHelp(e.commands)
	case HandlerQuit:
		return "Goodbye.", true
	default:
		return fmt.Sprintf("Command %q has no handler.", cmd.Name), false
	}

	for _, n := range e.pending {
		out += "\nWarning: " + n.Text
	}
	e.pending = nil
	return out, false
}

// push applies op through the history and reports the outcome.
func (e *Editor) push(op operation.Operation) string {
	if err := e.stack.PushAndApply(op); err != nil {
		return rejection(err)
	}
	return sentence(op.Describe())
}

func (e *Editor) component(a Arg) (*loadout.ConfiguredComponent, error) {
	loc, err := a.Location()
	if err != nil {
		return nil, err
	}
	return e.loadout.Component(loc), nil
}

func (e *Editor) item(a Arg) (*catalog.Item, error) {
	if it, ok := e.catalog.Item(a.ID()); ok {
		return it, nil
	}
	return nil, fmt.Errorf("unknown item %q", a.Text)
}

// rejection formats an operation error for the user.
func rejection(err error) string {
	var res loadout.EquipResult
	switch {
	case errors.As(err, &res):
		return "Rejected: " + res.Error() + "."
	case errors.Is(err, loadout.ErrArmorOutOfRange),
		errors.Is(err, loadout.ErrInsufficientTonnage),
		errors.Is(err, loadout.ErrItemNotPresent),
		errors.Is(err, loadout.ErrUnknownArmorSide),
		errors.Is(err, loadout.ErrEquipRejected):
		return "Rejected: " + err.Error() + "."
	default:
		return "Error: " + err.Error() + "."
	}
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
