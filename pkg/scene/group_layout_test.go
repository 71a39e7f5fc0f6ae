package scene_test

import (
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stack builds a group at (x, y) holding children of the given heights, all
// 100 wide.
func stack(reg *scene.Registry, x, y int, heights ...int) *scene.Group {
	g := reg.NewGroup(domain.KindObjectGroup, "stack")
	g.SetPosition(x, y)
	for i, h := range heights {
		c := box(reg, string(rune('a'+i)), 100, h)
		if i == 0 {
			g.Add(c, 0, 0)
			continue
		}
		g.Append(c, 0)
	}
	return g
}

func childRects(g *scene.Group) []domain.Rect {
	var out []domain.Rect
	for _, c := range g.Children() {
		out = append(out, c.Rect())
	}
	return out
}

func TestGroup_AddFitsContents(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 10, 20, 40, 60)

	require.Equal(t, 2, g.Len())
	assert.Equal(t, domain.Rect{X: 10, Y: 20, Width: 100, Height: 100}, g.Rect())
	assert.Equal(t, 20, g.Child(0).Y())
	assert.Equal(t, 60, g.Child(1).Y())
	assert.Same(t, g, g.Child(1).Parent())
}

func TestGroup_SpacingScenario(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 10, 20, 40, 60)

	g.SetHeight(140, false)

	assert.Equal(t, 40, g.Spacing())
	assert.Equal(t, g.Y(), g.Child(0).Y())
	assert.Equal(t, g.Y()+40+40, g.Child(1).Y())
	assert.Equal(t, 140, g.Height())
}

func TestGroup_SpacingDerivation(t *testing.T) {
	cases := []struct {
		name    string
		heights []int
		height  int
		want    int
	}{
		{"Single child", []int{50}, 200, 0},
		{"Exact fit", []int{10, 20, 30}, 60, 0},
		{"Even split", []int{10, 20, 30}, 100, 20},
		{"Integer division", []int{10, 20, 30}, 101, 20},
		{"Shorter than content clamps", []int{40, 60}, 30, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := scene.NewRegistry()
			g := stack(reg, 0, 0, tc.heights...)
			g.SetHeight(tc.height, false)
			assert.Equal(t, tc.want, g.Spacing())
		})
	}
}

func TestGroup_AlignIsIdempotent(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 5, 5, 30, 20, 50)
	g.Child(1).SetX(70)
	g.SetHeight(160, false)

	g.Align()
	first := childRects(g)
	g.Align()
	assert.Equal(t, first, childRects(g))
}

func TestGroup_HorizontalClamp(t *testing.T) {
	t.Run("Overflow is cut from the width", func(t *testing.T) {
		reg := scene.NewRegistry()
		g := stack(reg, 0, 0, 30, 30)

		wide := g.Child(1)
		wide.SetX(-10)
		wide.SetWidth(150, false)
		g.SetWidth(120, false)

		// The left edge is pulled in first, then the overflow is cut.
		assert.Equal(t, 0, wide.X())
		assert.Equal(t, g.Width(), wide.Width())
		assert.True(t, g.IsSticky(wide))
	})

	t.Run("Overflow moves a child with room on its left", func(t *testing.T) {
		reg := scene.NewRegistry()
		g := stack(reg, 0, 0, 30, 30)
		narrow := box(reg, "narrow", 40, 10)
		g.Add(narrow, 0, 60)
		require.False(t, g.IsSticky(narrow))

		narrow.SetX(80)
		g.Align()
		assert.Equal(t, 60, narrow.X())
		assert.Equal(t, 40, narrow.Width())
	})
}

func TestGroup_StickyChildrenTrackWidth(t *testing.T) {
	reg := scene.NewRegistry()
	g := reg.NewGroup(domain.KindObjectGroup, "menu")
	full := box(reg, "full", 100, 40)
	narrow := box(reg, "narrow", 50, 60)
	g.Add(full, 0, 0)
	g.Append(narrow, 0)

	require.True(t, g.IsSticky(full))
	require.False(t, g.IsSticky(narrow))

	g.SetWidth(160, false)
	assert.Equal(t, 160, full.Width())
	assert.Equal(t, 50, narrow.Width())

	g.SetWidth(130, false)
	assert.Equal(t, 130, full.Width())
	assert.Equal(t, 50, narrow.Width())
}

func TestGroup_AdaptSize(t *testing.T) {
	t.Run("Resize to contents snaps", func(t *testing.T) {
		reg := scene.NewRegistry()
		g := stack(reg, 0, 0, 40, 60)
		g.RemoveChildAt(1, true)
		assert.Equal(t, domain.Rect{Width: 100, Height: 40}, g.Rect())
	})

	t.Run("Manual size only grows", func(t *testing.T) {
		reg := scene.NewRegistry()
		g := stack(reg, 0, 0, 40, 60)
		g.SetResizeToContents(false)
		g.SetHeight(300, false)

		g.RemoveChildAt(1, true)
		assert.Equal(t, 300, g.Height())

		g.Child(0).SetHeight(500, false)
		g.AdaptLayout()
		assert.Equal(t, 500, g.Height())
	})
}

func TestGroup_ResizeClamps(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 0, 0, 40, 60)

	g.SetHeight(10, false)
	assert.Equal(t, 100, g.Height(), "height never drops below the summed children")

	g.SetAlignEnabled(false)
	g.SetWidth(20, false)
	assert.Equal(t, 100, g.Width(), "without alignment width never drops below the children's bounds")
}

func TestGroup_MoveCarriesChildren(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 0, 0, 40, 60)

	g.SetPosition(30, 50)
	assert.Equal(t, 30, g.Child(1).X())
	assert.Equal(t, 90, g.Child(1).Y())

	g.Move(0, 0)
	assert.Equal(t, 40, g.Child(1).Y())

	g.SetEditingMode(true)
	g.Move(100, 100)
	assert.Equal(t, 0, g.X(), "moving is ignored in editing mode")
}

func TestGroup_EditingMode(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 0, 0, 40, 60)
	rec := &changeRecorder{}
	g.OnChange(rec.record)

	g.SetEditingMode(true)
	g.Child(1).SetY(200)
	g.Align()
	assert.Equal(t, 200, g.Child(1).Y(), "alignment is suspended in editing mode")
	assert.Equal(t, 260, g.Height(), "geometry edits refit the group")

	g.SetEditingMode(false)
	require.NotEmpty(t, rec.events)
	last := rec.events[len(rec.events)-1]
	assert.Equal(t, "editingMode", last.Key)

	var published any
	for _, ev := range rec.events {
		if ev.Key == "editingModeData" {
			published = ev.Value
		}
	}
	require.NotNil(t, published)
	rects := published.(map[string]any)["rects"].([]any)
	assert.Equal(t, []int{0, 200, 100, 60}, rects[1])
}

func TestGroup_ChildLifecycle(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 0, 0, 40, 60)
	rec := &changeRecorder{}
	g.OnChange(rec.record)

	assert.Same(t, g.Child(1), g.ChildAt(10, 50))
	assert.Nil(t, g.ChildAt(500, 500))

	victim := g.Child(0)
	victim.Destroy()
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, -1, g.IndexOf(victim))

	g.Append(box(reg, "c", 100, 10), 0)
	rec.events = nil
	g.RemoveAll(true)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, []string{"objects"}, rec.keys(), "clearing reports a single change")
}

func TestGroup_DescribeLoad(t *testing.T) {
	reg := scene.NewRegistry()
	g := stack(reg, 0, 0, 40, 60)
	g.SetObjectsSynced(true)
	g.SetHeight(140, false)

	desc := g.Describe()
	objects, ok := desc.List("objects")
	require.True(t, ok)
	assert.Len(t, objects, 2)
	assert.Equal(t, true, desc["objectsSynced"])

	clone := reg.NewGroup(domain.KindObjectGroup, "")
	clone.Load(desc)
	assert.Equal(t, 2, clone.Len())
	assert.True(t, clone.ObjectsSynced())
	assert.Equal(t, childRects(g), childRects(clone))
	assert.Equal(t, g.Spacing(), clone.Spacing())
}
