package scene

import (
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Spacing returns the vertical gap between consecutive children.
func (g *Group) Spacing() int { return g.spacing }

// SetSpacing restacks the children with a fixed gap and refits the group.
func (g *Group) SetSpacing(spacing int) {
	spacing = max(spacing, 0)
	if spacing == g.spacing {
		return
	}
	prev := g.spacing
	g.spacing = spacing

	blocked := g.BlockSignals(true)
	g.stackChildren()
	g.adaptSize()
	g.BlockSignals(blocked)
	g.notify("spacing", spacing, prev)
}

// calcSpacing spreads the free height evenly between children. There is no
// negative spacing: a group no taller than its content gets zero.
func (g *Group) calcSpacing() int {
	if len(g.children) < 2 {
		return 0
	}
	height := g.Height()
	sum := g.childrenMinHeight()
	if height <= sum {
		return 0
	}
	return (height - sum) / (len(g.children) - 1)
}

func (g *Group) updateSpacing() {
	spacing := g.calcSpacing()
	if spacing == g.spacing {
		return
	}
	prev := g.spacing
	g.spacing = spacing
	g.notify("spacing", spacing, prev)
}

// childrenMinHeight is the summed height of every child.
func (g *Group) childrenMinHeight() int {
	h := 0
	for _, c := range g.children {
		h += c.Height()
	}
	return h
}

// childrenRect is the bounding box of every child.
func (g *Group) childrenRect() domain.Rect {
	if len(g.children) == 0 {
		return domain.Rect{}
	}
	first := g.children[0].Rect()
	left, top, right, bottom := first.Left(), first.Top(), first.Right(), first.Bottom()
	for _, c := range g.children[1:] {
		r := c.Rect()
		left = min(left, r.Left())
		top = min(top, r.Top())
		right = max(right, r.Right())
		bottom = max(bottom, r.Bottom())
	}
	// Right and bottom are inclusive edges.
	return domain.Rect{X: left, Y: top, Width: right + 1 - left, Height: bottom + 1 - top}
}

// AlignEnabled reports whether the group lays its children out.
func (g *Group) AlignEnabled() bool { return g.alignEnabled }

// SetAlignEnabled turns automatic layout on or off.
func (g *Group) SetAlignEnabled(enabled bool) {
	if g.alignEnabled == enabled {
		return
	}
	g.alignEnabled = enabled
	g.notify("alignEnabled", enabled, !enabled)
}

// ResizeToContents reports whether the group snaps to its children's bounds.
func (g *Group) ResizeToContents() bool { return g.resizeToContents }

// SetResizeToContents chooses between snapping to the children's bounds and
// only ever growing to include them.
func (g *Group) SetResizeToContents(enabled bool) {
	if g.resizeToContents == enabled {
		return
	}
	g.resizeToContents = enabled
	g.notify("resizeToContentsEnabled", enabled, !enabled)
}

// EditingMode reports whether the children are being edited individually.
func (g *Group) EditingMode() bool { return g.editingMode }

// SetEditingMode suspends layout while children are edited one by one.
// Leaving the mode refits the group and publishes the child rectangles.
func (g *Group) SetEditingMode(mode bool) {
	if g.editingMode == mode {
		return
	}
	g.editingMode = mode
	if !mode {
		blocked := g.BlockSignals(true)
		g.adaptSize()
		g.BlockSignals(blocked)
		g.notify("editingModeData", g.editingModeData(), nil)
	}
	g.notify("editingMode", mode, !mode)
}

// Align runs the layout pass: horizontal clamping, then vertical stacking.
// It does nothing while alignment is disabled, in editing mode, or when the
// pass is already running.
func (g *Group) Align() {
	if !g.alignEnabled || g.editingMode {
		return
	}
	if !g.alignGuard.tryEnter() {
		g.reg.logger.Debug("nested alignment suppressed", "group", g.name)
		return
	}
	tok := aligning{&g.alignGuard}
	defer tok.end()

	g.alignHorizontally(tok)
	g.alignVertically(tok)
	g.notify("editingModeData", g.editingModeData(), nil)

	if g.reg.hooks.OnLayout != nil {
		g.reg.hooks.OnLayout(&domain.LayoutEvent{
			Group:    g.name,
			Children: len(g.children),
			Spacing:  g.spacing,
			Bounds:   g.Rect(),
		})
	}
}

func (g *Group) alignHorizontally(aligning) {
	rect := g.Rect()
	x := g.X()

	for _, c := range g.children {
		cr := c.Rect()
		width := c.Width()

		if cr.Left() < rect.Left() {
			c.SetX(x)
			cr = c.Rect()
		} else if rect.Left() < cr.Left() && g.sticky[c.id] {
			c.SetX(x)
			c.SetWidth(g.Width(), false)
			cr = c.Rect()
		}

		if cr.Right() > rect.Right() {
			leftspace := (cr.X - rect.X) - (cr.Right() - rect.Right())
			cx := x
			if leftspace >= 0 {
				cx = x + leftspace
			} else {
				width += leftspace
			}
			c.SetX(cx)
			c.SetWidth(width, false)
			g.checkSticky(c)
		} else if cr.Right() < rect.Right() && g.sticky[c.id] {
			c.SetWidth(g.Width(), false)
		}
	}
}

func (g *Group) alignVertically(aligning) {
	g.updateSpacing()
	g.stackChildren()
}

// stackChildren lays the children out top to bottom from the group's top.
func (g *Group) stackChildren() {
	y := g.Y()
	for _, c := range g.children {
		c.SetY(y)
		y += c.Height() + g.spacing
	}
}

// AdaptLayout refits the group to its children and recomputes the spacing.
// It is a no-op during an alignment pass.
func (g *Group) AdaptLayout() {
	if g.alignGuard.active() {
		return
	}
	g.adaptSize()
	g.updateSpacing()
}

// adaptSize fits the group rectangle to its children: exactly when resizing
// to contents, otherwise only growing.
func (g *Group) adaptSize() {
	if g.alignGuard.active() || len(g.children) == 0 {
		return
	}
	cr := g.childrenRect()

	if g.resizeToContents {
		g.Node.setX(cr.X)
		g.Node.setY(cr.Y)
		g.Node.setWidth(cr.Width, false)
		g.Node.setHeight(cr.Height, false)
	} else {
		r := g.Rect()
		left, top := min(r.Left(), cr.Left()), min(r.Top(), cr.Top())
		right, bottom := max(r.Right(), cr.Right()), max(r.Bottom(), cr.Bottom())
		g.Node.setX(left)
		g.Node.setY(top)
		g.Node.setWidth(right+1-left, false)
		g.Node.setHeight(bottom+1-top, false)
	}
	g.checkStickyChildren()
}

// checkStickyChildren recomputes which children span the group's width.
func (g *Group) checkStickyChildren() {
	clear(g.sticky)
	w := g.Width()
	for _, c := range g.children {
		if c.Width() == w {
			g.sticky[c.id] = true
		}
	}
}

func (g *Group) checkSticky(c *Node) {
	if c.Width() == g.Width() {
		g.sticky[c.id] = true
	}
}

// IsSticky reports whether child tracks the group's width.
func (g *Group) IsSticky(child *Node) bool {
	return child != nil && g.sticky[child.id]
}

// SetX moves the group horizontally, carrying the children along.
func (g *Group) SetX(x int) {
	dx := x - g.X()
	for i := len(g.children) - 1; i >= 0; i-- {
		c := g.children[i]
		c.SetX(c.X() + dx)
	}
	g.Node.setX(x)
}

// SetY moves the group vertically, carrying the children along.
func (g *Group) SetY(y int) {
	dy := y - g.Y()
	for _, c := range g.children {
		c.SetY(c.Y() + dy)
	}
	g.Node.setY(y)
}

// Move drags the group and its children. It is ignored in editing mode,
// where children are dragged individually.
func (g *Group) Move(x, y int) {
	if g.editingMode {
		return
	}
	g.batch(domain.ChangePosition, g.positionValues, func() {
		dx, dy := x-g.X(), y-g.Y()
		g.Node.setX(x)
		g.Node.setY(y)
		for i := len(g.children) - 1; i >= 0; i-- {
			c := g.children[i]
			c.Move(c.X()+dx, c.Y()+dy)
		}
	})
}

func (g *Group) setPosition(x, y int) {
	dx, dy := x-g.X(), y-g.Y()
	for i := len(g.children) - 1; i >= 0; i-- {
		c := g.children[i]
		c.SetPosition(c.X()+dx, c.Y()+dy)
	}
	g.Node.setX(x)
	g.Node.setY(y)
}

// SetWidth resizes the group and re-aligns the children. With alignment
// disabled an absolute width never drops below the children's bounds.
func (g *Group) SetWidth(w int, percent bool) {
	if !percent && !g.alignEnabled {
		w = max(w, g.childrenRect().Width)
	}
	g.Node.setWidth(w, percent)
	g.Align()
}

// SetHeight resizes the group and re-aligns the children. An absolute height
// never drops below the children's summed height, or their bounds when
// alignment is disabled.
func (g *Group) SetHeight(h int, percent bool) {
	if !percent {
		minHeight := g.childrenRect().Height
		if g.alignEnabled {
			minHeight = g.childrenMinHeight()
		}
		h = max(h, minHeight)
	}
	g.Node.setHeight(h, percent)
	g.Align()
}

// RelativeRects returns each child's rectangle relative to the group.
func (g *Group) RelativeRects() []domain.Rect {
	out := make([]domain.Rect, len(g.children))
	for i, c := range g.children {
		out[i] = c.Rect().Translate(-g.X(), -g.Y())
	}
	return out
}

func (g *Group) editingModeData() map[string]any {
	rects := g.RelativeRects()
	values := make([]any, len(rects))
	for i, r := range rects {
		values[i] = r.Values()
	}
	return map[string]any{"rects": values}
}

// loadEditingModeData restores child rectangles published by a resource
// group. With synced children, children past the last rectangle take its
// size.
func (g *Group) loadEditingModeData(data domain.Description) {
	raw, ok := data["rects"].([]any)
	if !ok {
		if ints, isInts := data["rects"].([][]int); isInts {
			for _, v := range ints {
				raw = append(raw, v)
			}
		}
	}
	rects := make([]domain.Rect, 0, len(raw))
	for _, v := range raw {
		var vals []int
		if err := mapstructure.WeakDecode(v, &vals); err != nil || len(vals) != 4 {
			g.reg.logger.Debug("ignored malformed rect", "group", g.name, "value", v)
			return
		}
		rects = append(rects, domain.RectFromValues(vals))
	}

	origX, origY := g.X(), g.Y()
	g.SetEditingMode(true)
	var last *Node
	for i := 0; i < len(g.children) && i < len(rects); i++ {
		c, r := g.children[i], rects[i]
		blocked := c.BlockSignals(true)
		c.SetX(g.X() + r.X)
		c.SetY(g.Y() + r.Y)
		c.SetWidth(r.Width, false)
		c.SetHeight(r.Height, false)
		c.BlockSignals(blocked)
		last = c
	}
	if g.objectsSynced && last != nil {
		for i := len(rects); i < len(g.children); i++ {
			c := g.children[i]
			blocked := c.BlockSignals(true)
			c.SetWidth(last.Width(), false)
			c.SetHeight(last.Height(), false)
			c.BlockSignals(blocked)
		}
	}
	g.SetEditingMode(false)
	g.SetX(origX)
	g.SetY(origY)
}
