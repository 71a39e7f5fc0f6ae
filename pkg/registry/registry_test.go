package registry_test

import (
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports/tests"
	"github.com/aretw0/tableau/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Contract(t *testing.T) {
	tests.ActionFactoryContractTest(t, registry.NewCatalog(), map[string]domain.Description{
		registry.KindDialogue:         {"type": "Dialogue", "character": "Ana", "text": "Hi"},
		registry.KindWait:             {"type": "Wait", "time": 500},
		registry.KindChangeVisibility: {"type": "ChangeVisibility", "object": "door", "visible": true},
		registry.KindPlaySound:        {"type": "PlaySound", "path": "bell.ogg", "volume": 80},
		registry.KindGotoLabel:        {"type": "GotoLabel", "label": "ending"},
		registry.KindChangeBackground: {"type": "ChangeBackground", "image": "sky.png"},
	})
}

func TestCatalog_DecodesFields(t *testing.T) {
	c := registry.NewCatalog()

	body, err := c.NewAction(domain.Description{
		"type":      "Dialogue",
		"character": "Ana",
		"text":      "Hello there",
		"append":    "true", // weakly typed input
		"mood":      "happy",
	})
	require.NoError(t, err)

	d, ok := registry.AsDialogue(body)
	require.True(t, ok)
	assert.Equal(t, "Ana", d.Character)
	assert.Equal(t, "Hello there", d.Text)
	assert.True(t, d.Append)

	// Unknown keys survive a round trip.
	assert.Equal(t, "happy", body.Describe()["mood"])
}

func TestCatalog_TransitionCapabilities(t *testing.T) {
	c := registry.NewCatalog()

	body, err := c.NewAction(domain.Description{
		"type":       "ChangeVisibility",
		"object":     "door",
		"visible":    false,
		"transition": map[string]any{"type": "Fade", "duration": 300},
	})
	require.NoError(t, err)

	cv, ok := registry.AsVisibilityChange(body)
	require.True(t, ok)

	fade, ok := cv.Fade()
	require.True(t, ok)
	assert.Equal(t, 300, fade.Duration)

	_, ok = cv.Slide()
	assert.False(t, ok)

	_, ok = registry.AsDialogue(body)
	assert.False(t, ok)
}

func TestCatalog_UnknownKinds(t *testing.T) {
	t.Run("Lenient", func(t *testing.T) {
		c := registry.NewCatalog()
		body, err := c.NewAction(domain.Description{"type": "ShakeScreen", "strength": 3})
		require.NoError(t, err)
		assert.Equal(t, "ShakeScreen", body.Kind())
		assert.Equal(t, domain.Description{"type": "ShakeScreen", "strength": 3}, body.Describe())
	})

	t.Run("Strict", func(t *testing.T) {
		c := registry.NewCatalog(registry.WithStrict(true))
		_, err := c.NewAction(domain.Description{"type": "ShakeScreen"})
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})

	t.Run("Register", func(t *testing.T) {
		c := registry.NewCatalog(registry.WithStrict(true))
		c.Register("Label", func() domain.ActionBody { return &registry.GotoLabel{} })
		assert.True(t, c.Has("Label"))
		assert.Contains(t, c.Kinds(), "Label")
	})
}
