package operation

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrNothingToUndo is returned by Stack.Undo when there is no applied entry.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Stack.Redo when there is no undone entry.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Stack is the linear undo/redo history of a loadout and the only path
// through which it is mutated.
//
// Entries at or below the cursor are applied; entries above it are undone
// and available for redo.
type Stack struct {
	logger  *zap.Logger
	depth   int
	ops     []Operation
	current int
}

// NewStack returns an empty Stack keeping at most depth entries.
//
// Precondition: depth > 0; a smaller value keeps an unbounded history.
// Postcondition: a nil logger is replaced with a no-op logger.
func NewStack(depth int, logger *zap.Logger) *Stack {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stack{logger: logger, depth: depth, current: -1}
}

// PushAndApply applies op and records it. Redo history is discarded.
//
// If the entry on top of the history can coalesce op, that entry is undone
// and op takes its place, so a single undo returns to the state before the
// first of the merged operations.
//
// Postcondition: on error the loadout and the history are unchanged.
func (s *Stack) PushAndApply(op Operation) error {
	if top := s.NextUndo(); top != nil && top.CanCoalesce(op) {
		return s.coalesce(top, op)
	}
	if err := op.Apply(); err != nil {
		s.logger.Info("operation rejected",
			zap.String("operation", op.Describe()),
			zap.Error(err),
		)
		return err
	}
	s.ops = append(s.ops[:s.current+1], op)
	if s.depth > 0 && len(s.ops) > s.depth {
		s.ops = s.ops[len(s.ops)-s.depth:]
	}
	s.current = len(s.ops) - 1
	s.logger.Debug("operation applied",
		zap.String("operation", op.Describe()),
		zap.Int("history", len(s.ops)),
	)
	return nil
}

func (s *Stack) coalesce(top, op Operation) error {
	if err := top.Undo(); err != nil {
		return err
	}
	if err := op.Apply(); err != nil {
		if rerr := top.Apply(); rerr != nil {
			s.logger.Error("restoring coalesced operation failed",
				zap.String("operation", top.Describe()),
				zap.Error(rerr),
			)
		}
		s.logger.Info("operation rejected",
			zap.String("operation", op.Describe()),
			zap.Error(err),
		)
		return err
	}
	s.ops = append(s.ops[:s.current], op)
	s.logger.Debug("operation coalesced",
		zap.String("operation", op.Describe()),
		zap.String("replaced", top.Describe()),
	)
	return nil
}

// Undo reverts the most recent applied entry.
func (s *Stack) Undo() error {
	op := s.NextUndo()
	if op == nil {
		return ErrNothingToUndo
	}
	if err := op.Undo(); err != nil {
		return err
	}
	s.current--
	s.logger.Debug("operation undone", zap.String("operation", op.Describe()))
	return nil
}

// Redo re-applies the most recently undone entry. A redo that no longer
// validates is returned as an error and stays available.
func (s *Stack) Redo() error {
	op := s.NextRedo()
	if op == nil {
		return ErrNothingToRedo
	}
	if err := op.Apply(); err != nil {
		s.logger.Info("redo rejected",
			zap.String("operation", op.Describe()),
			zap.Error(err),
		)
		return err
	}
	s.current++
	s.logger.Debug("operation redone", zap.String("operation", op.Describe()))
	return nil
}

// NextUndo returns the entry Undo would revert, or nil.
func (s *Stack) NextUndo() Operation {
	if s.current < 0 {
		return nil
	}
	return s.ops[s.current]
}

// NextRedo returns the entry Redo would re-apply, or nil.
func (s *Stack) NextRedo() Operation {
	if s.current+1 >= len(s.ops) {
		return nil
	}
	return s.ops[s.current+1]
}

// Len returns the number of recorded entries, applied and undone.
func (s *Stack) Len() int { return len(s.ops) }

// Clear forgets the whole history without touching the loadout.
func (s *Stack) Clear() {
	s.ops = nil
	s.current = -1
}
