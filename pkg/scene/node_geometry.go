package scene

import (
	"reflect"

	"github.com/aretw0/tableau/pkg/domain"
)

// X returns the left edge.
func (n *Node) X() int { return n.x }

// Y returns the top edge.
func (n *Node) Y() int { return n.y }

// Width returns the outer width: content width plus horizontal padding.
func (n *Node) Width() int {
	return n.resolve(n.width, n.parentContentWidth(), n.padding.Horizontal())
}

// Height returns the outer height: content height plus vertical padding.
func (n *Node) Height() int {
	return n.resolve(n.height, n.parentContentHeight(), n.padding.Vertical())
}

// ContentWidth returns the width available to content, excluding padding.
func (n *Node) ContentWidth() int { return n.Width() - n.padding.Horizontal() }

// ContentHeight returns the height available to content, excluding padding.
func (n *Node) ContentHeight() int { return n.Height() - n.padding.Vertical() }

// PercentWidth returns the percent width, or 0 when the width is absolute.
func (n *Node) PercentWidth() int {
	if n.width.Percent {
		return n.width.Value
	}
	return 0
}

// PercentHeight returns the percent height, or 0 when the height is absolute.
func (n *Node) PercentHeight() int {
	if n.height.Percent {
		return n.height.Value
	}
	return 0
}

func (n *Node) resolve(s domain.Size, parent, pad int) int {
	v := s.Value
	if s.Percent {
		v = parent * s.Value / 100
	}
	return max(v, pad)
}

func (n *Node) parentContentWidth() int {
	if n.parent == nil {
		return 0
	}
	return n.parent.ContentWidth()
}

func (n *Node) parentContentHeight() int {
	if n.parent == nil {
		return 0
	}
	return n.parent.ContentHeight()
}

// Rect returns the outer rectangle.
func (n *Node) Rect() domain.Rect {
	return domain.Rect{X: n.x, Y: n.y, Width: n.Width(), Height: n.Height()}
}

// Contains reports whether the point falls inside the node.
func (n *Node) Contains(x, y int) bool {
	return n.Rect().Contains(x, y)
}

// SetX moves the left edge. Groups carry their children along.
func (n *Node) SetX(x int) {
	if n.group != nil {
		n.group.SetX(x)
		return
	}
	n.setX(x)
}

// SetY moves the top edge. Groups carry their children along.
func (n *Node) SetY(y int) {
	if n.group != nil {
		n.group.SetY(y)
		return
	}
	n.setY(y)
}

// SetPosition moves the node to x, y and reports a single "position"
// change carrying both coordinates.
func (n *Node) SetPosition(x, y int) {
	n.batch(domain.ChangePosition, n.positionValues, func() {
		if n.group != nil {
			n.group.setPosition(x, y)
			return
		}
		n.setX(x)
		n.setY(y)
	})
}

// Move is SetPosition as seen by interactive dragging; groups in editing
// mode ignore it.
func (n *Node) Move(x, y int) {
	if n.group != nil {
		n.group.Move(x, y)
		return
	}
	n.SetPosition(x, y)
}

func (n *Node) setX(x int) {
	if x == n.x {
		return
	}
	prev := n.x
	n.x = x
	n.notify("x", x, prev)
}

func (n *Node) setY(y int) {
	if y == n.y {
		return
	}
	prev := n.y
	n.y = y
	n.notify("y", y, prev)
}

// SetWidth sets the outer width, absolute or as a percentage of the
// parent's content width. Negative values clamp to zero and the width never
// drops below the horizontal padding.
func (n *Node) SetWidth(w int, percent bool) {
	if n.group != nil {
		n.group.SetWidth(w, percent)
		return
	}
	n.setWidth(w, percent)
}

// SetHeight is SetWidth for the vertical axis.
func (n *Node) SetHeight(h int, percent bool) {
	if n.group != nil {
		n.group.SetHeight(h, percent)
		return
	}
	n.setHeight(h, percent)
}

// SetSize sets both dimensions and reports a single "size" change.
func (n *Node) SetSize(w, h int, percent bool) {
	n.batch(domain.ChangeSize, n.sizeValues, func() {
		n.SetWidth(w, percent)
		n.SetHeight(h, percent)
	})
}

// batch runs fn with notifications blocked and reports whatever it changed
// as one compound event under key.
func (n *Node) batch(key string, snapshot func() map[string]any, fn func()) {
	prev := snapshot()
	blocked := n.BlockNotifications(true)
	fn()
	n.BlockNotifications(blocked)
	if next := snapshot(); !reflect.DeepEqual(prev, next) {
		n.notify(key, next, prev)
	}
}

func (n *Node) positionValues() map[string]any {
	return map[string]any{"x": n.x, "y": n.y}
}

func (n *Node) sizeValues() map[string]any {
	return map[string]any{"width": n.width.Encode(), "height": n.height.Encode()}
}

func (n *Node) setWidth(w int, percent bool) {
	next := domain.Size{Value: max(w, 0), Percent: percent}
	if !percent {
		next.Value = max(next.Value, n.padding.Horizontal())
	}
	if next == n.width {
		return
	}
	prev := n.width
	n.width = next
	n.notify("width", next.Encode(), prev.Encode())
}

func (n *Node) setHeight(h int, percent bool) {
	next := domain.Size{Value: max(h, 0), Percent: percent}
	if !percent {
		next.Value = max(next.Value, n.padding.Vertical())
	}
	if next == n.height {
		return
	}
	prev := n.height
	n.height = next
	n.notify("height", next.Encode(), prev.Encode())
}

// Padding returns the per-side insets.
func (n *Node) Padding() domain.Padding { return n.padding }

// SetPadding replaces the insets. The outer size grows if needed so that the
// content size never goes negative.
func (n *Node) SetPadding(p domain.Padding) {
	p = p.Clamped()
	if p == n.padding {
		return
	}
	prev := n.padding
	n.padding = p
	if !n.width.Percent && n.width.Value < p.Horizontal() {
		n.width.Value = p.Horizontal()
	}
	if !n.height.Percent && n.height.Value < p.Vertical() {
		n.height.Value = p.Vertical()
	}
	n.notify("padding", p.Map(), prev.Map())
}

// Style groups the visual attributes of a node.
type Style struct {
	Opacity           int
	BackgroundColor   domain.Color
	BackgroundOpacity int
	BackgroundImage   string
	CornerRadius      int
	BorderWidth       int
	BorderColor       *domain.Color
}

// Style returns the current visual attributes.
func (n *Node) Style() Style {
	s := Style{
		Opacity:           n.opacity,
		BackgroundColor:   n.bgColor,
		BackgroundOpacity: n.bgOpacity,
		BackgroundImage:   n.bgImage,
		CornerRadius:      n.cornerRadius,
		BorderWidth:       n.borderWidth,
	}
	if n.hasBorderColor {
		c := n.borderColor
		s.BorderColor = &c
	}
	return s
}

// SetStyle applies every attribute of s and reports a single "style" change
// holding only the attributes that moved.
func (n *Node) SetStyle(s Style) {
	prev := n.styleValues()
	blocked := n.BlockNotifications(true)
	n.SetOpacity(s.Opacity)
	n.SetBackgroundColor(s.BackgroundColor)
	n.SetBackgroundOpacity(s.BackgroundOpacity)
	n.SetBackgroundImage(s.BackgroundImage)
	n.SetCornerRadius(s.CornerRadius)
	n.SetBorderWidth(s.BorderWidth)
	if s.BorderColor != nil {
		n.SetBorderColor(*s.BorderColor)
	}
	n.BlockNotifications(blocked)

	next, old := map[string]any{}, map[string]any{}
	for k, v := range n.styleValues() {
		if !reflect.DeepEqual(prev[k], v) {
			next[k] = v
			old[k] = prev[k]
		}
	}
	if len(next) > 0 {
		n.notify(domain.ChangeStyle, next, old)
	}
}

func (n *Node) styleValues() map[string]any {
	v := map[string]any{
		"opacity":           n.opacity,
		"backgroundColor":   n.bgColor.Values(),
		"backgroundOpacity": n.bgOpacity,
		"backgroundImage":   n.bgImage,
		"cornerRadius":      n.cornerRadius,
		"borderWidth":       n.borderWidth,
	}
	if n.hasBorderColor {
		v["borderColor"] = n.borderColor.Values()
	}
	return v
}

// Opacity returns the node opacity in [0, 255].
func (n *Node) Opacity() int { return n.opacity }

// SetOpacity sets the opacity, clamped to [0, 255].
func (n *Node) SetOpacity(o int) {
	o = clampByte(o)
	if o == n.opacity {
		return
	}
	prev := n.opacity
	n.opacity = o
	n.notify("opacity", o, prev)
}

// Visible reports the visibility flag, independent from opacity.
func (n *Node) Visible() bool { return n.visible }

// SetVisible sets the visibility flag.
func (n *Node) SetVisible(v bool) {
	if v == n.visible {
		return
	}
	prev := n.visible
	n.visible = v
	n.notify("visible", v, prev)
}

// BackgroundColor returns the background colour.
func (n *Node) BackgroundColor() domain.Color { return n.bgColor }

// SetBackgroundColor sets the background colour.
func (n *Node) SetBackgroundColor(c domain.Color) {
	if c == n.bgColor {
		return
	}
	prev := n.bgColor
	n.bgColor = c
	n.notify("backgroundColor", c.Values(), prev.Values())
}

// BackgroundOpacity returns the background opacity in [0, 255].
func (n *Node) BackgroundOpacity() int { return n.bgOpacity }

// SetBackgroundOpacity sets the background opacity, clamped to [0, 255].
func (n *Node) SetBackgroundOpacity(o int) {
	o = clampByte(o)
	if o == n.bgOpacity {
		return
	}
	prev := n.bgOpacity
	n.bgOpacity = o
	n.notify("backgroundOpacity", o, prev)
}

// BackgroundImage returns the background image reference.
func (n *Node) BackgroundImage() string { return n.bgImage }

// SetBackgroundImage sets the background image reference. Empty clears it.
func (n *Node) SetBackgroundImage(ref string) {
	if ref == n.bgImage {
		return
	}
	prev := n.bgImage
	n.bgImage = ref
	n.notify("backgroundImage", ref, prev)
}

// CornerRadius returns the corner radius.
func (n *Node) CornerRadius() int { return n.cornerRadius }

// SetCornerRadius sets the corner radius, clamped to zero.
func (n *Node) SetCornerRadius(r int) {
	r = max(r, 0)
	if r == n.cornerRadius {
		return
	}
	prev := n.cornerRadius
	n.cornerRadius = r
	n.notify("cornerRadius", r, prev)
}

// BorderWidth returns the border width.
func (n *Node) BorderWidth() int { return n.borderWidth }

// SetBorderWidth sets the border width, clamped to zero.
func (n *Node) SetBorderWidth(w int) {
	w = max(w, 0)
	if w == n.borderWidth {
		return
	}
	prev := n.borderWidth
	n.borderWidth = w
	n.notify("borderWidth", w, prev)
}

// BorderColor returns the border colour and whether one was set.
func (n *Node) BorderColor() (domain.Color, bool) { return n.borderColor, n.hasBorderColor }

// SetBorderColor sets the border colour.
func (n *Node) SetBorderColor(c domain.Color) {
	if n.hasBorderColor && c == n.borderColor {
		return
	}
	var prev any
	if n.hasBorderColor {
		prev = n.borderColor.Values()
	}
	n.borderColor = c
	n.hasBorderColor = true
	n.notify("borderColor", c.Values(), prev)
}

func clampByte(v int) int {
	return min(max(v, 0), 255)
}
