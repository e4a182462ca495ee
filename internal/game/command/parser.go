package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
)

// Arg is one argument word with each reading an editor command may ask of it.
type Arg struct {
	// Text is the word as typed.
	Text string

	loc    catalog.Location
	locErr error
	side   catalog.ArmorSide
	sideOK bool
	points int
	num    bool
	on     bool
	toggle bool
}

// Location returns the location the word names, by id or short name.
func (a Arg) Location() (catalog.Location, error) { return a.loc, a.locErr }

// IsSide reports whether the word names an armor side.
func (a Arg) IsSide() bool { return a.sideOK }

// Side returns the armor side the word names.
func (a Arg) Side() (catalog.ArmorSide, error) {
	if !a.sideOK {
		return "", fmt.Errorf("unknown armor side %q", a.Text)
	}
	return a.side, nil
}

// Points returns the word as a whole number of armor points.
func (a Arg) Points() (int, error) {
	if !a.num {
		return 0, fmt.Errorf("armor points must be a number, got %q", a.Text)
	}
	return a.points, nil
}

// Switch returns the word as an on/off state.
func (a Arg) Switch() (bool, bool) { return a.on, a.toggle }

// ID returns the word lowercased, as catalog ids are written.
func (a Arg) ID() string { return strings.ToLower(a.Text) }

func newArg(word string) Arg {
	a := Arg{Text: word}
	a.loc, a.locErr = catalog.ParseLocation(word)
	if side, err := catalog.ParseArmorSide(word); err == nil {
		a.side, a.sideOK = side, true
	}
	if n, err := strconv.Atoi(word); err == nil {
		a.points, a.num = n, true
	}
	switch strings.ToLower(word) {
	case "on":
		a.on, a.toggle = true, true
	case "off":
		a.toggle = true
	}
	return a
}

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// Words are Args with their location, side, points and switch readings.
	Words []Arg
	// RawArgs is the text after the command with inner spacing kept, for names.
	RawArgs string
}

// Parse splits a line into a command word and its arguments, reading every
// argument once as a location, armor side, point count and on/off switch.
//
// Postcondition: an empty or blank line yields an empty Command;
// len(Words) == len(Args).
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}
	word := strings.Fields(line)[0]
	p := ParseResult{
		Command: strings.ToLower(word),
		RawArgs: strings.TrimSpace(line[len(word):]),
	}
	if p.RawArgs == "" {
		return p
	}
	p.Args = strings.Fields(p.RawArgs)
	p.Words = make([]Arg, len(p.Args))
	for i, w := range p.Args {
		p.Words[i] = newArg(w)
	}
	return p
}
