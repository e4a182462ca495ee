package message_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/message"
	"github.com/cory-johannsen/mechlab/internal/testutil"
)

type mockListener struct {
	mock.Mock
}

func (m *mockListener) Receive(msg message.Message) {
	m.Called(msg)
}

func TestBus_DeliversInAttachOrder(t *testing.T) {
	bus := message.NewBus(nil)
	var got []string
	bus.Attach(message.ListenerFunc(func(message.Message) { got = append(got, "first") }))
	bus.Attach(message.ListenerFunc(func(message.Message) { got = append(got, "second") }))

	bus.Post(message.NotificationMessage{Text: "hello"})
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBus_MockListenerReceivesMessage(t *testing.T) {
	_, l := testutil.NewStandardLoadout(t)
	bus := message.NewBus(zap.NewNop())
	want := message.ComponentMessage{
		Loadout:   l,
		Component: l.Component(catalog.LocationRightArm),
		Type:      message.ArmorChanged,
	}

	m := &mockListener{}
	m.On("Receive", want).Once()
	bus.Attach(m)

	bus.Post(want)
	m.AssertExpectations(t)
}

func TestBus_Detach(t *testing.T) {
	bus := message.NewBus(nil)
	n := 0
	detach := bus.Attach(message.ListenerFunc(func(message.Message) { n++ }))
	require.Equal(t, 1, bus.Len())

	bus.Post(message.NotificationMessage{})
	detach()
	detach()
	bus.Post(message.NotificationMessage{})

	assert.Equal(t, 1, n)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_AttachDuringDeliveryTakesEffectNextPost(t *testing.T) {
	bus := message.NewBus(nil)
	late := 0
	bus.Attach(message.ListenerFunc(func(message.Message) {
		bus.Attach(message.ListenerFunc(func(message.Message) { late++ }))
	}))

	bus.Post(message.NotificationMessage{})
	assert.Equal(t, 0, late)
	bus.Post(message.NotificationMessage{})
	assert.Equal(t, 1, late)
}

func TestBus_NilBusDropsPosts(t *testing.T) {
	var bus *message.Bus
	assert.NotPanics(t, func() { bus.Post(message.NotificationMessage{}) })
	assert.Equal(t, 0, bus.Len())
}

func TestBus_LogsPostsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	bus := message.NewBus(zap.New(core))
	_, l := testutil.NewStandardLoadout(t)
	bus.Post(message.NotificationMessage{Loadout: l, Text: "add CASE"})

	entries := logs.FilterMessage("posting message").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Notification: add CASE", entries[0].ContextMap()["message"])
	assert.Equal(t, l.ID().String(), entries[0].ContextMap()["loadout"])
}

func TestMessage_IsForMe(t *testing.T) {
	_, a := testutil.NewStandardLoadout(t)
	b := a.Copy()
	msgs := []message.Message{
		message.ComponentMessage{Loadout: a, Component: a.Component(catalog.LocationHead), Type: message.ItemsChanged},
		message.UpgradesMessage{Loadout: a},
		message.NotificationMessage{Loadout: a},
	}
	for _, m := range msgs {
		assert.Equal(t, a.ID(), m.LoadoutID())
		assert.True(t, m.IsForMe(a))
		assert.False(t, m.IsForMe(b))
		assert.False(t, m.IsForMe(nil))
	}

	unset := message.NotificationMessage{Text: "orphan"}
	assert.Equal(t, uuid.Nil, unset.LoadoutID())
	assert.False(t, unset.IsForMe(a))
}

func TestMessage_AffectsHeatOrDamage(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	c := l.Component(catalog.LocationRightArm)
	laser := testutil.Item(t, reg, "laser")
	jj := testutil.Item(t, reg, "jump-jet")

	cases := []struct {
		name string
		msg  message.Message
		want bool
	}{
		{"weapon added", message.ComponentMessage{Loadout: l, Component: c, Type: message.ItemAdded, Item: laser}, true},
		{"jump jet added", message.ComponentMessage{Loadout: l, Component: c, Type: message.ItemAdded, Item: jj}, false},
		{"weapon removed", message.ComponentMessage{Loadout: l, Component: c, Type: message.ItemRemoved, Item: laser}, true},
		{"items changed", message.ComponentMessage{Loadout: l, Component: c, Type: message.ItemsChanged}, true},
		{"pod changed", message.ComponentMessage{Loadout: l, Component: c, Type: message.OmniPodChanged}, true},
		{"armor changed", message.ComponentMessage{Loadout: l, Component: c, Type: message.ArmorChanged}, false},
		{"upgrades", message.UpgradesMessage{Loadout: l}, true},
		{"notification", message.NotificationMessage{Loadout: l}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.msg.AffectsHeatOrDamage())
		})
	}
}

func TestComponentMessage_String(t *testing.T) {
	reg, l := testutil.NewStandardLoadout(t)
	c := l.Component(catalog.LocationRightArm)

	assert.Equal(t, "ItemAdded Right Arm Laser",
		message.ComponentMessage{Loadout: l, Component: c, Type: message.ItemAdded, Item: testutil.Item(t, reg, "laser")}.String())
	assert.Equal(t, "ArmorChanged Right Arm (automatic)",
		message.ComponentMessage{Loadout: l, Component: c, Type: message.ArmorChanged, Automatic: true}.String())
	assert.Equal(t, "Type(99)", message.Type(99).String())
}

func TestPropertyBus_EveryAttachedListenerSeesEveryPost(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		listeners := rapid.IntRange(0, 8).Draw(rt, "listeners")
		posts := rapid.IntRange(0, 8).Draw(rt, "posts")

		bus := message.NewBus(nil)
		counts := make([]int, listeners)
		for i := range counts {
			i := i
			bus.Attach(message.ListenerFunc(func(message.Message) { counts[i]++ }))
		}
		for i := 0; i < posts; i++ {
			bus.Post(message.NotificationMessage{})
		}
		for i, n := range counts {
			if n != posts {
				rt.Fatalf("listener %d saw %d posts, want %d", i, n, posts)
			}
		}
	})
}
