package operation

import (
	"fmt"

	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
)

// StripComponent removes every equipped item from a component and sets all of
// its armor to zero.
type StripComponent struct {
	*Composite
	component *loadout.ConfiguredComponent
}

// NewStripComponent builds the strip of c against its current contents.
func NewStripComponent(bus *message.Bus, c *loadout.ConfiguredComponent) *StripComponent {
	op := &StripComponent{
		Composite: NewComposite(fmt.Sprintf("strip %s", c)),
		component: c,
	}
	for _, r := range removeEquipped(bus, c) {
		op.Add(r)
	}
	for _, side := range c.Sides() {
		op.Add(NewSetArmor(bus, c, side, 0, true))
	}
	return op
}

// Component returns the stripped component.
func (op *StripComponent) Component() *loadout.ConfiguredComponent { return op.component }
