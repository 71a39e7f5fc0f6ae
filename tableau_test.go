package tableau_test

import (
	"context"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/pkg/adapters/file"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/dsl"
	"github.com/aretw0/tableau/pkg/observability"
	"github.com/aretw0/tableau/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *domain.Document {
	b := dsl.New("novel", "Novel", 640, 480)
	b.Resource("door", domain.KindImage).Size(50, 80)
	intro := b.Scene("intro")
	intro.Object("door1").From("door").On(domain.PointerDown, dsl.Goto("hall"))
	menu := intro.Menu("menu").Align(true)
	menu.Child("new", domain.KindButton).Size(100, 20)
	return b.Document()
}

func TestNew_FileStore(t *testing.T) {
	dir := t.TempDir()
	eng, err := tableau.New(dir, tableau.WithFormat(file.YAML))
	require.NoError(t, err)
	defer eng.Close()

	assert.Equal(t, filepath.Base(dir), eng.Name)

	ctx := context.Background()
	require.NoError(t, eng.Workspace().Store().Save(ctx, "novel", sample()))
	_, err = os.Stat(filepath.Join(dir, "novel.yaml"))
	require.NoError(t, err)

	n, err := eng.Layout(ctx, "novel")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, eng.Validate(ctx, "novel"))

	out, err := eng.Graph(ctx, "novel", "intro/door1")
	require.NoError(t, err)
	assert.Contains(t, out, "intro__door1 -. clone .-> library__door")
	assert.Contains(t, out, "class intro__door1 highlight;")

	report, err := eng.Report(ctx, "novel")
	require.NoError(t, err)
	assert.Contains(t, report, "| door | Image | 1 | 0 |")
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := tableau.New("")
	assert.Error(t, err)
}

func TestNew_MissingDocument(t *testing.T) {
	eng, err := tableau.New(t.TempDir())
	require.NoError(t, err)

	_, err = eng.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	eng, err := tableau.New("studio", tableau.WithRedis(mr.Addr()))
	require.NoError(t, err)
	defer eng.Close()

	ctx := context.Background()
	_, err = eng.Workspace().Create(ctx, "novel", "Novel", 100, 100)
	require.NoError(t, err)

	ids, err := eng.Workspace().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"novel"}, ids)
	assert.True(t, mr.Exists("tableau:doc:novel"))
}

func TestNew_Encryption(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	dir := t.TempDir()
	eng, err := tableau.New(dir, tableau.WithEncryption(middleware.EncryptionConfig{ActiveKey: key}))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, eng.Workspace().Store().Save(ctx, "novel", sample()))

	raw, err := os.ReadFile(filepath.Join(dir, "novel.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "door1")

	p, err := eng.Open(ctx, "novel")
	require.NoError(t, err)
	assert.NotNil(t, p.Scene("intro").Object("door1"))
}

func TestNew_StrictCatalog(t *testing.T) {
	eng, err := tableau.New(t.TempDir(), tableau.WithStrict(true))
	require.NoError(t, err)

	doc := sample()
	objects, _ := doc.Scenes[0].List("objects")
	objects[0]["onMousePress"] = []any{map[string]any{"type": "Teleport"}}
	doc.Scenes[0]["objects"] = []any{map[string]any(objects[0]), map[string]any(objects[1])}

	ctx := context.Background()
	require.NoError(t, eng.Workspace().Store().Save(ctx, "novel", doc))
	assert.Error(t, eng.Validate(ctx, "novel"))
}

func TestEngine_MetricsAndHooks(t *testing.T) {
	m := observability.NewMetrics()
	var layouts int
	eng, err := tableau.New(t.TempDir(),
		tableau.WithMetrics(m),
		tableau.WithHooks(domain.Hooks{OnLayout: func(*domain.LayoutEvent) { layouts++ }}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, eng.Workspace().Store().Save(ctx, "novel", sample()))
	_, err = eng.Layout(ctx, "novel")
	require.NoError(t, err)

	assert.Positive(t, layouts)
	assert.Equal(t, float64(layouts), testutil.ToFloat64(m.Layouts))

	w := httptest.NewRecorder()
	eng.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tableau_group_layouts_total")
}
