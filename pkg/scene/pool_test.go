package scene_test

import (
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pooled returns a synced two-child group and the pool created by one insert.
func pooled(t *testing.T, reg *scene.Registry) (*scene.Group, *scene.ActionPool) {
	t.Helper()
	g := syncedGroup(reg, 2)
	g.Child(0).AppendAction(press, wait(t, reg, 5))
	pools := g.Pools()
	require.Len(t, pools, 1)
	return g, pools[0]
}

func TestActionPool_OneMemberPerOwner(t *testing.T) {
	reg := scene.NewRegistry()
	g, pool := pooled(t, reg)
	c0 := g.Child(0)
	old := pool.ActionOwnedBy(c0.ID())
	require.NotNil(t, old)

	replacement, err := reg.NewAction(domain.Description{"type": "Wait", "time": 9}, c0.ID())
	require.NoError(t, err)
	pool.Add(replacement)

	assert.Same(t, replacement, pool.ActionOwnedBy(c0.ID()))
	assert.False(t, pool.Contains(old))
	assert.Equal(t, 3, pool.Len())
	assert.Nil(t, pool.ActionOwnedBy(12345))
	assert.Equal(t, g.ID(), pool.Owner())
}

func TestActionPool_DestroyedMembersLeave(t *testing.T) {
	reg := scene.NewRegistry()
	g, pool := pooled(t, reg)
	c1 := g.Child(1)
	cp := c1.ActionAt(press, 0)
	require.True(t, pool.Contains(cp))

	c1.BlockSignals(true)
	c1.RemoveAction(press, cp, true)
	c1.BlockSignals(false)

	assert.False(t, pool.Contains(cp))
	assert.Equal(t, 2, pool.Len())
	assert.False(t, pool.Disposed())
}

func TestActionPool_DisposesWhenEmpty(t *testing.T) {
	reg := scene.NewRegistry()
	_, pool := pooled(t, reg)

	for _, a := range pool.Actions() {
		pool.Remove(a)
	}
	assert.True(t, pool.Disposed())
	assert.Zero(t, pool.Len())
	assert.Nil(t, pool.Actions())

	pool.Add(wait(t, reg, 1))
	assert.Zero(t, pool.Len(), "a disposed pool stays empty")
}

func TestActionPool_GroupDestroyDisposes(t *testing.T) {
	reg := scene.NewRegistry()
	g, pool := pooled(t, reg)
	g.Destroy()
	assert.True(t, pool.Disposed())
}
