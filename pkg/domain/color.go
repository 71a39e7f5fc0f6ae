package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA colour with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Values returns the description form [r, g, b, a].
func (c Color) Values() []int {
	return []int{int(c.R), int(c.G), int(c.B), int(c.A)}
}

// Hex renders the colour as #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor accepts either a list of 3 or 4 channel values or a hex string
// (#rgb, #rrggbb, #rrggbbaa). Channel values are clamped to [0, 255].
func ParseColor(v any) (Color, error) {
	switch t := v.(type) {
	case Color:
		return t, nil
	case string:
		return parseHexColor(t)
	case []int:
		return colorFromInts(t)
	case []any:
		ints := make([]int, 0, len(t))
		for _, e := range t {
			n, ok := toInt(e)
			if !ok {
				return Color{}, fmt.Errorf("%w: colour channel %v", ErrInvalidDescription, e)
			}
			ints = append(ints, n)
		}
		return colorFromInts(ints)
	}
	return Color{}, fmt.Errorf("%w: colour %T", ErrInvalidDescription, v)
}

func colorFromInts(v []int) (Color, error) {
	if len(v) < 3 || len(v) > 4 {
		return Color{}, fmt.Errorf("%w: colour needs 3 or 4 channels, got %d", ErrInvalidDescription, len(v))
	}
	ch := func(i int) uint8 { return uint8(min(max(v[i], 0), 255)) }
	c := Color{R: ch(0), G: ch(1), B: ch(2), A: 255}
	if len(v) == 4 {
		c.A = ch(3)
	}
	return c, nil
}

func parseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return Color{}, fmt.Errorf("%w: colour %q", ErrInvalidDescription, s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidDescription, s, err)
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}
