package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDescription_CloneIsDeep(t *testing.T) {
	d := domain.Description{
		"padding": map[string]any{"top": 1},
		"objects": []any{map[string]any{"name": "a"}},
		"color":   []int{1, 2, 3},
	}
	c := d.Clone()
	c["padding"].(map[string]any)["top"] = 9
	c["objects"].([]any)[0].(map[string]any)["name"] = "b"
	c["color"].([]int)[0] = 7

	assert.Equal(t, 1, d["padding"].(map[string]any)["top"])
	assert.Equal(t, "a", d["objects"].([]any)[0].(map[string]any)["name"])
	assert.Equal(t, 1, d["color"].([]int)[0])
	assert.Nil(t, domain.Description(nil).Clone())
}

func TestDescription_FillAndWithout(t *testing.T) {
	d := domain.Description{"x": 1}
	d.Fill(domain.Description{"x": 2, "y": 3})
	assert.Equal(t, domain.Description{"x": 1, "y": 3}, d)

	w := d.Without("x", "missing")
	assert.Equal(t, domain.Description{"y": 3}, w)
	assert.True(t, d.Has("x"), "Without leaves the receiver alone")
	assert.Equal(t, domain.Description{}, domain.Description(nil).Without("x"))
}

func TestDescription_Accessors(t *testing.T) {
	d := domain.Description{
		"type":  "Button",
		"name":  "ok",
		"f":     2.9,
		"n":     json.Number("12"),
		"bad":   "12",
		"flag":  true,
		"items": []any{map[string]any{"a": 1}, "skip"},
	}
	assert.Equal(t, domain.KindButton, d.Kind())
	assert.Equal(t, "ok", d.Name())

	n, ok := d.Int("f")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	n, ok = d.Int("n")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	_, ok = d.Int("bad")
	assert.False(t, ok)

	b, ok := d.Bool("flag")
	assert.True(t, ok)
	assert.True(t, b)

	items, ok := d.List("items")
	require.True(t, ok)
	assert.Equal(t, []domain.Description{{"a": 1}}, items)
	_, ok = d.List("flag")
	assert.False(t, ok)
}

func TestAsDescription_YAMLMaps(t *testing.T) {
	var raw any
	require.NoError(t, yaml.Unmarshal([]byte("name: door\nsize: {w: 3}\n"), &raw))
	d, ok := domain.AsDescription(raw)
	require.True(t, ok)
	assert.Equal(t, "door", d.Name())
	size, ok := d.Map("size")
	require.True(t, ok)
	n, _ := size.Int("w")
	assert.Equal(t, 3, n)

	_, ok = domain.AsDescription(42)
	assert.False(t, ok)
}
