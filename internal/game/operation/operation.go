// Package operation implements every sanctioned mutation of a loadout as a
// reversible command, and the Stack that records them for undo and redo.
package operation

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/loadout"
)

// Operation is a reversible mutation.
//
// Apply re-validates against the current state and either mutates and posts
// messages or returns an error leaving the state untouched. Undo reverts the
// mutation of the preceding successful Apply.
type Operation interface {
	// Describe returns a short human-readable summary.
	Describe() string
	Apply() error
	Undo() error
	// CanCoalesce reports whether op may replace this operation in the history.
	CanCoalesce(op Operation) bool
}

// state tracks whether an operation is currently applied.
type state struct {
	applied bool
}

func (s *state) beginApply(desc string) error {
	if s.applied {
		return fmt.Errorf("%s: apply while applied: %w", desc, loadout.ErrInvalidOperationState)
	}
	return nil
}

func (s *state) beginUndo(desc string) error {
	if !s.applied {
		return fmt.Errorf("%s: undo before apply: %w", desc, loadout.ErrInvalidOperationState)
	}
	return nil
}

// Composite applies an ordered sequence of operations as one unit. If a
// child fails, the children already applied are undone in reverse order
// before the error is returned.
type Composite struct {
	state
	description string
	ops         []Operation
}

// NewComposite returns a Composite over ops.
func NewComposite(description string, ops ...Operation) *Composite {
	return &Composite{description: description, ops: ops}
}

// Add appends op; only valid before the first Apply.
func (c *Composite) Add(op Operation) {
	c.ops = append(c.ops, op)
}

// Operations returns the children in application order.
func (c *Composite) Operations() []Operation {
	return append([]Operation(nil), c.ops...)
}

// Describe implements Operation.
func (c *Composite) Describe() string { return c.description }

// Apply implements Operation.
func (c *Composite) Apply() error {
	if err := c.beginApply(c.description); err != nil {
		return err
	}
	for i, op := range c.ops {
		if err := op.Apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if uerr := c.ops[j].Undo(); uerr != nil {
					return fmt.Errorf("%s: %w (unwinding %s: %v)", c.description, err, c.ops[j].Describe(), uerr)
				}
			}
			return fmt.Errorf("%s: %w", c.description, err)
		}
	}
	c.applied = true
	return nil
}

// Undo implements Operation.
func (c *Composite) Undo() error {
	if err := c.beginUndo(c.description); err != nil {
		return err
	}
	for i := len(c.ops) - 1; i >= 0; i-- {
		if err := c.ops[i].Undo(); err != nil {
			return fmt.Errorf("%s: %w", c.description, err)
		}
	}
	c.applied = false
	return nil
}

// CanCoalesce implements Operation. Plain composites never coalesce.
func (c *Composite) CanCoalesce(Operation) bool { return false }
