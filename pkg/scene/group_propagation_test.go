package scene_test

import (
	"errors"
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/registry"
	"github.com/aretw0/tableau/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const press = domain.PointerDown

// syncedGroup builds a group with n synced children.
func syncedGroup(reg *scene.Registry, n int) *scene.Group {
	g := stack(reg, 0, 0, make([]int, n)...)
	g.SetObjectsSynced(true)
	return g
}

func TestPropagation_InsertScenario(t *testing.T) {
	reg := scene.NewRegistry()
	g := syncedGroup(reg, 3)
	c0, c1, c2 := g.Child(0), g.Child(1), g.Child(2)

	var events []scene.ObjectActionInserted
	g.OnObjectActionInserted(func(ev scene.ObjectActionInserted) { events = append(events, ev) })

	a := wait(t, reg, 100)
	c1.InsertAction(press, 0, a)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, 1, ev.ChildIndex)
	assert.Equal(t, press, ev.Channel)
	assert.Same(t, a, ev.Action)
	require.NotNil(t, ev.Pool)

	central := ev.Pool.ActionOwnedBy(g.ID())
	require.NotNil(t, central)
	assert.Same(t, central, a.Resource())
	assert.Equal(t, []*scene.Action{central}, g.CentralActions())

	for _, c := range []*scene.Node{c0, c2} {
		actions := c.Actions(press)
		require.Len(t, actions, 1, c.Name())
		cp := actions[0]
		assert.NotSame(t, a, cp)
		assert.True(t, cp.OwnedBy(c.ID()))
		assert.Same(t, central, cp.Resource())
		assert.Equal(t, 100, timeOf(cp))
		assert.Same(t, cp, ev.Pool.ActionOwnedBy(c.ID()))
	}
	assert.Equal(t, 4, ev.Pool.Len())
	assert.Len(t, c1.Actions(press), 1)
}

func TestPropagation_FanOutCount(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		reg := scene.NewRegistry()
		g := syncedGroup(reg, n)
		before := reg.Len()

		g.Child(0).AppendAction(press, wait(t, reg, 1))

		// One original, one central and n-1 copies.
		assert.Equal(t, before+1+1+(n-1), reg.Len())
		central := g.CentralActions()[0]
		assert.Len(t, central.Clones(), n)
	}
}

func TestPropagation_NoLoop(t *testing.T) {
	reg := scene.NewRegistry()
	g := syncedGroup(reg, 3)
	c2 := g.Child(2)

	emitted := 0
	g.OnObjectActionInserted(func(ev scene.ObjectActionInserted) {
		emitted++
		if emitted == 1 {
			// A listener reacting to the fan-out by editing another child.
			c2.AppendAction(press, wait(t, reg, 7))
		}
	})

	g.Child(0).AppendAction(press, wait(t, reg, 1))

	assert.Equal(t, 1, emitted)
	assert.Len(t, g.Child(1).Actions(press), 1, "nested edit must not fan out")
	assert.Len(t, c2.Actions(press), 2)
	assert.Len(t, g.CentralActions(), 1)
}

func TestPropagation_Remove(t *testing.T) {
	reg := scene.NewRegistry()
	g := syncedGroup(reg, 3)
	g.Child(1).AppendAction(press, wait(t, reg, 1))
	pool := g.Pools()[0]

	var events []scene.ObjectActionRemoved
	g.OnObjectActionRemoved(func(ev scene.ObjectActionRemoved) { events = append(events, ev) })

	g.Child(0).RemoveActionAt(press, 0, true)

	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].ChildIndex)
	for _, c := range g.Children() {
		assert.Empty(t, c.Actions(press), c.Name())
	}
	assert.Empty(t, g.CentralActions())
	assert.True(t, pool.Disposed())
	assert.Empty(t, g.Pools())
}

func TestPropagation_Move(t *testing.T) {
	reg := scene.NewRegistry()
	g := syncedGroup(reg, 3)
	g.Child(0).AppendAction(press, wait(t, reg, 1))
	g.Child(0).AppendAction(press, wait(t, reg, 2))

	var events []scene.ObjectActionMoved
	g.OnObjectActionMoved(func(ev scene.ObjectActionMoved) { events = append(events, ev) })

	c1 := g.Child(1)
	c1.MoveAction(press, c1.ActionAt(press, 1), 0)

	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Index)
	for _, c := range g.Children() {
		require.Len(t, c.Actions(press), 2)
		assert.Equal(t, 2, timeOf(c.ActionAt(press, 0)), c.Name())
		assert.Equal(t, 1, timeOf(c.ActionAt(press, 1)), c.Name())
	}
}

func TestPropagation_UnsyncedGroup(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 0, 0, 10, 10)

	var events []scene.ObjectActionInserted
	g.OnObjectActionInserted(func(ev scene.ObjectActionInserted) { events = append(events, ev) })

	g.Child(1).AppendAction(press, wait(t, reg, 1))

	require.Len(t, events, 1, "the group still reports the edit")
	assert.Nil(t, events[0].Pool)
	assert.Empty(t, g.Child(0).Actions(press))
	assert.Empty(t, g.Pools())
}

func TestPropagation_SyncFlagFollowsGroup(t *testing.T) {
	reg := scene.NewRegistry()
	g := syncedGroup(reg, 2)
	g.Child(0).AppendAction(press, wait(t, reg, 1))
	cp := g.Child(1).ActionAt(press, 0)
	require.True(t, cp.IsSynced())

	g.SetObjectsSynced(false)
	assert.False(t, cp.IsSynced())
	assert.Len(t, g.Child(1).Actions(press), 1, "turning sync off keeps copied state")
}

type mockFactory struct {
	mock.Mock
}

func (m *mockFactory) NewAction(desc domain.Description) (domain.ActionBody, error) {
	args := m.Called(desc)
	body, _ := args.Get(0).(domain.ActionBody)
	return body, args.Error(1)
}

func TestPropagation_FactoryFailureAbandonsEvent(t *testing.T) {
	factory := &mockFactory{}
	factory.On("NewAction", mock.Anything).Return(&registry.Wait{Time: 5}, nil).Once()
	factory.On("NewAction", mock.Anything).Return(nil, errors.New("factory down"))

	reg := scene.NewRegistry(scene.WithFactory(factory))
	g := syncedGroup(reg, 3)

	var events []scene.ObjectActionInserted
	g.OnObjectActionInserted(func(ev scene.ObjectActionInserted) { events = append(events, ev) })

	a := reg.WrapAction(&registry.Wait{Time: 5}, 0)
	before := reg.Len()
	g.Child(1).AppendAction(press, a)

	assert.Empty(t, events)
	assert.Empty(t, g.Child(0).Actions(press))
	assert.Empty(t, g.Child(2).Actions(press))
	assert.Nil(t, a.Resource())
	assert.Empty(t, g.Pools())
	assert.Empty(t, g.CentralActions())
	assert.Equal(t, before, reg.Len(), "nothing built for the abandoned event survives")
	factory.AssertNumberOfCalls(t, "NewAction", 2)
}

func TestPropagation_CloneGroupReplay(t *testing.T) {
	reg := scene.NewRegistry()
	lib := reg.Library()

	res := syncedGroup(reg, 2)
	res.SetName("menu")
	require.NoError(t, lib.Add(res.Node))

	node, err := lib.Instantiate("menu", domain.Description{"name": "menu1"})
	require.NoError(t, err)
	clone := node.AsGroup()
	require.NotNil(t, clone)
	require.Equal(t, 2, clone.Len())
	assert.True(t, clone.ObjectsSynced())
	assert.Same(t, res.Node, clone.Resource())

	res.Child(0).AppendAction(press, wait(t, reg, 9))

	resCentral := res.CentralActions()[0]
	require.Len(t, clone.CentralActions(), 1)
	cloneCentral := clone.CentralActions()[0]
	assert.Same(t, resCentral, cloneCentral.Resource())
	for _, c := range clone.Children() {
		require.Len(t, c.Actions(press), 1, c.Name())
		assert.Same(t, cloneCentral, c.ActionAt(press, 0).Resource())
		assert.Equal(t, 9, timeOf(c.ActionAt(press, 0)))
	}

	// Removal flows back from the clone to the resource group.
	clone.Child(0).RemoveActionAt(press, 0, true)
	for _, g := range []*scene.Group{res, clone} {
		for _, c := range g.Children() {
			assert.Empty(t, c.Actions(press), c.Name())
		}
	}
}

func TestPropagation_UnsyncedCloneGroupReplaysPerChild(t *testing.T) {
	reg := scene.NewRegistry()
	lib := reg.Library()

	res := stack(reg, 0, 0, 10, 10)
	res.SetName("list")
	require.NoError(t, lib.Add(res.Node))
	node, err := lib.Instantiate("list", nil)
	require.NoError(t, err)
	clone := node.AsGroup()

	src := wait(t, reg, 4)
	res.Child(1).AppendAction(press, src)

	assert.Empty(t, clone.Child(0).Actions(press))
	require.Len(t, clone.Child(1).Actions(press), 1)
	assert.Same(t, src, clone.Child(1).ActionAt(press, 0).Resource())

	res.Child(1).RemoveAction(press, src, true)
	assert.Empty(t, clone.Child(1).Actions(press))
}

func TestPropagation_ReloadKeepsOneCentralPerAction(t *testing.T) {
	reg := scene.NewRegistry()
	g := syncedGroup(reg, 3)
	g.Child(0).AppendAction(press, wait(t, reg, 100))
	require.Len(t, g.CentralActions(), 1)
	require.Len(t, g.Pools(), 1)

	for range 3 {
		g.Load(g.Describe())
	}

	assert.Len(t, g.Children(), 3)
	assert.Len(t, g.CentralActions(), 1)
	assert.Len(t, g.Pools(), 1)
	assert.Equal(t, 4, g.Pools()[0].Len(), "the central action plus one per child")
	for _, c := range g.Children() {
		assert.Len(t, c.Actions(press), 1)
	}
}
