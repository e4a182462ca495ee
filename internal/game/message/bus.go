package message

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Listener receives messages posted on a Bus.
//
// Receive runs synchronously inside Post. It may read loadout state and may
// push new operations, but must not mutate components directly.
type Listener interface {
	Receive(msg Message)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(msg Message)

// Receive implements Listener.
func (f ListenerFunc) Receive(msg Message) { f(msg) }

type subscription struct {
	id       uint64
	listener Listener
}

// Bus delivers messages synchronously to attached listeners in attach order.
// A nil *Bus accepts posts and drops them.
type Bus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID uint64
	logger *zap.Logger
}

// NewBus returns an empty Bus.
//
// Postcondition: a nil logger is replaced with a no-op logger.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{logger: logger}
}

// Attach registers l and returns a function that detaches it. Calling the
// returned function more than once is harmless.
//
// Precondition: l must not be nil.
func (b *Bus) Attach(l Listener) (detach func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, listener: l})
	return func() { b.detach(id) }
}

func (b *Bus) detach(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached listeners.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Post delivers msg to every listener attached when Post was called.
// Listeners attached or detached during delivery take effect for the next post.
func (b *Bus) Post(msg Message) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.Unlock()

	b.logger.Debug("posting message",
		zap.String("message", describe(msg)),
		zap.Stringer("loadout", msg.LoadoutID()),
		zap.Int("listeners", len(subs)),
	)
	for _, s := range subs {
		s.listener.Receive(msg)
	}
}

func describe(msg Message) string {
	if s, ok := msg.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", msg)
}
