package domain_test

import (
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRect_InclusiveEdges(t *testing.T) {
	r := domain.Rect{X: 0, Y: 0, Width: 10, Height: 5}
	assert.Equal(t, 9, r.Right())
	assert.Equal(t, 4, r.Bottom())
	assert.True(t, r.Contains(9, 4))
	assert.False(t, r.Contains(10, 4))
	assert.False(t, r.IsEmpty())
	assert.True(t, domain.Rect{Width: 3}.IsEmpty())

	assert.Equal(t, domain.Rect{X: 2, Y: 3, Width: 10, Height: 5}, r.Translate(2, 3))
	assert.Equal(t, r, domain.RectFromValues(r.Values()))
	assert.Equal(t, domain.Rect{X: 1}, domain.RectFromValues([]int{1}))
}

func TestSize_Encoding(t *testing.T) {
	tests := []struct {
		in   any
		want domain.Size
		ok   bool
	}{
		{in: 40, want: domain.Size{Value: 40}, ok: true},
		{in: 40.0, want: domain.Size{Value: 40}, ok: true},
		{in: "50%", want: domain.Size{Value: 50, Percent: true}, ok: true},
		{in: " 25 % ", want: domain.Size{Value: 25, Percent: true}, ok: true},
		{in: "12", want: domain.Size{Value: 12}, ok: true},
		{in: "wide", ok: false},
		{in: nil, ok: false},
	}
	for _, tt := range tests {
		got, ok := domain.ParseSize(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%v", tt.in)
		}
	}
	assert.Equal(t, "50%", domain.Size{Value: 50, Percent: true}.Encode())
	assert.Equal(t, 50, domain.Size{Value: 50}.Encode())
}

func TestPadding(t *testing.T) {
	p := domain.Padding{Top: 1, Right: 2, Bottom: 3, Left: -4}
	assert.Equal(t, -2, p.Horizontal())
	assert.Equal(t, 4, p.Vertical())
	assert.Equal(t, domain.Padding{Top: 1, Right: 2, Bottom: 3}, p.Clamped())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want domain.Color
	}{
		{name: "short hex", in: "#f00", want: domain.Color{R: 255, A: 255}},
		{name: "hex", in: "#00ff00", want: domain.Color{G: 255, A: 255}},
		{name: "hex alpha", in: "0000ff80", want: domain.Color{B: 255, A: 128}},
		{name: "rgb list", in: []any{1, 2.0, 3}, want: domain.Color{R: 1, G: 2, B: 3, A: 255}},
		{name: "clamped", in: []int{300, -5, 0, 10}, want: domain.Color{R: 255, A: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseColor(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []any{"#12", "#zzzzzz", []int{1, 2}, []any{"x", 1, 2}, 7} {
		_, err := domain.ParseColor(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDescription, "%v", bad)
	}
	assert.Equal(t, "#0a0b0cff", domain.Color{R: 10, G: 11, B: 12, A: 255}.Hex())
}

func TestChannelKeys(t *testing.T) {
	for _, ch := range domain.Channels {
		got, ok := domain.ChannelForKey(ch.Key())
		assert.True(t, ok)
		assert.Equal(t, ch, got)
	}
	_, ok := domain.ChannelForKey("onClick")
	assert.False(t, ok)
	assert.True(t, domain.KindMenu.IsGroup())
	assert.False(t, domain.Kind("Sprite").Valid())
}
