package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tableau/internal/presentation/tui"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	b := dsl.New("p", "P", 640, 480)
	b.Resource("door", domain.KindImage).Size(50, 80).On(domain.PointerDown, dsl.Wait(10))
	intro := b.Scene("intro")
	intro.Object("door1").From("door").At(10, 20)
	menu := intro.Group("menu")
	menu.Child("new", domain.KindButton).Size(120, 30).Hidden()
	b.Scene("empty")

	p, err := b.Build()
	require.NoError(t, err)

	out := tui.Report(p)
	assert.Contains(t, out, "| door | Image | 1 | 1 |")
	assert.Contains(t, out, "# Scene `intro` (640x480)")
	assert.Contains(t, out, "| door1 | Image | 10,20 50x80 | door | 1 |")
	assert.Contains(t, out, "| ↳ new (hidden) | Button |")
	assert.Contains(t, out, "# Scene `empty` (640x480)\n\n_Empty scene._")
}

func TestReport_EmptyLibrary(t *testing.T) {
	p, err := dsl.New("p", "P", 10, 10).Build()
	require.NoError(t, err)
	assert.Contains(t, tui.Report(p), "_No resources._")
}

func TestRenderer(t *testing.T) {
	render := tui.NewRenderer("notty")
	out, err := render("# Library\n\nhello")
	require.NoError(t, err)
	assert.Contains(t, out, "Library")
	assert.Contains(t, out, "hello")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Equal(t, 7, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "|_.__/")
}
