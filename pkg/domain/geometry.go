package domain

// Rect is an axis aligned rectangle. Right and Bottom are inclusive edges,
// so a rectangle of width 10 starting at x=0 ends at Right() == 9.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width - 1 }
func (r Rect) Bottom() int { return r.Y + r.Height - 1 }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left() && x <= r.Right() && y >= r.Top() && y <= r.Bottom()
}

// Translate returns the rectangle moved by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Values returns the rectangle as [x, y, width, height].
func (r Rect) Values() []int {
	return []int{r.X, r.Y, r.Width, r.Height}
}

// RectFromValues is the inverse of Values. Missing entries are zero.
func RectFromValues(v []int) Rect {
	var r Rect
	fields := []*int{&r.X, &r.Y, &r.Width, &r.Height}
	for i := 0; i < len(v) && i < len(fields); i++ {
		*fields[i] = v[i]
	}
	return r
}

// Padding holds per-side insets excluded from an entity's content size.
type Padding struct {
	Top    int `json:"top" yaml:"top" mapstructure:"top"`
	Right  int `json:"right" yaml:"right" mapstructure:"right"`
	Bottom int `json:"bottom" yaml:"bottom" mapstructure:"bottom"`
	Left   int `json:"left" yaml:"left" mapstructure:"left"`
}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() int { return p.Left + p.Right }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() int { return p.Top + p.Bottom }

// Clamped returns a copy with negative insets raised to zero.
func (p Padding) Clamped() Padding {
	return Padding{
		Top:    max(p.Top, 0),
		Right:  max(p.Right, 0),
		Bottom: max(p.Bottom, 0),
		Left:   max(p.Left, 0),
	}
}

// Map returns the description form of the padding.
func (p Padding) Map() map[string]any {
	return map[string]any{
		"top":    p.Top,
		"right":  p.Right,
		"bottom": p.Bottom,
		"left":   p.Left,
	}
}
