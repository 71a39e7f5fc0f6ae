package domain_test

import (
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCombineHooks(t *testing.T) {
	var calls []string
	a := domain.Hooks{
		OnLayout: func(*domain.LayoutEvent) { calls = append(calls, "a") },
	}
	b := domain.Hooks{
		OnLayout:            func(*domain.LayoutEvent) { calls = append(calls, "b") },
		OnResourceDestroyed: func(*domain.ResourceEvent) { calls = append(calls, "b-res") },
	}

	h := domain.CombineHooks(a, domain.Hooks{}, b)
	h.OnLayout(&domain.LayoutEvent{})
	h.OnResourceDestroyed(&domain.ResourceEvent{})

	assert.Equal(t, []string{"a", "b", "b-res"}, calls)
	assert.Nil(t, h.OnPropagate)
}

func TestChangeEvent_Data(t *testing.T) {
	size := domain.ChangeEvent{
		Key:   domain.ChangeSize,
		Value: map[string]any{"width": 30, "height": "50%"},
	}
	assert.Equal(t, domain.Description{"width": 30, "height": "50%"}, size.Data())

	padding := domain.ChangeEvent{Key: "padding", Value: map[string]any{"top": 1}}
	assert.Equal(t, domain.Description{"padding": map[string]any{"top": 1}}, padding.Data(),
		"map values of plain keys stay nested")
}
