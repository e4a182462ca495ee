package server

import (
	"bufio"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mechlab/internal/game/command"
)

// Console feeds lines from a reader to an editor and writes each reply.
type Console struct {
	editor  *command.Editor
	in      io.Reader
	out     io.Writer
	prompt  string
	logger  *zap.Logger
	stopped atomic.Bool
	lines   atomic.Int64
}

// NewConsole creates a Console that prompts with "> ".
//
// Precondition: editor, in and out must be non-nil.
func NewConsole(editor *command.Editor, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{editor: editor, in: in, out: out, prompt: "> ", logger: logger}
}

// Start runs the read loop until the editor asks to quit, the input ends, or
// Stop is called.
//
// Postcondition: end of input and quit both return nil.
func (c *Console) Start() error {
	scanner := bufio.NewScanner(c.in)
	for !c.stopped.Load() {
		fmt.Fprint(c.out, c.prompt)
		if !scanner.Scan() || c.stopped.Load() {
			break
		}
		c.lines.Add(1)
		reply, quit := c.editor.Execute(scanner.Text())
		if reply != "" {
			fmt.Fprintln(c.out, reply)
		}
		if quit {
			break
		}
	}
	c.logger.Debug("console finished", zap.Int64("lines", c.lines.Load()))
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// Stop asks Start to return. A Start blocked waiting for input notices the
// request only once the next line arrives or the input ends; the line read
// at that point is dropped unhandled.
func (c *Console) Stop() {
	c.stopped.Store(true)
}

// Lines returns the number of input lines handled so far.
func (c *Console) Lines() int64 { return c.lines.Load() }
