package scene_test

import (
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/scene"
	"github.com/stretchr/testify/require"
)

// wait builds an unowned Wait action with the given duration.
func wait(t *testing.T, reg *scene.Registry, ms int) *scene.Action {
	t.Helper()
	a, err := reg.NewAction(domain.Description{"type": "Wait", "time": ms}, 0)
	require.NoError(t, err)
	return a
}

// box creates a plain node of the given size.
func box(reg *scene.Registry, name string, w, h int) *scene.Node {
	n := reg.NewObject(domain.KindObject, name)
	n.SetSize(w, h, false)
	return n
}

// timeOf returns the "time" field of a Wait action.
func timeOf(a *scene.Action) int {
	v, _ := a.Describe().Int("time")
	return v
}

// changeRecorder collects change events.
type changeRecorder struct {
	events []domain.ChangeEvent
}

func (r *changeRecorder) record(ev domain.ChangeEvent) {
	r.events = append(r.events, ev)
}

func (r *changeRecorder) keys() []string {
	keys := make([]string, len(r.events))
	for i, ev := range r.events {
		keys[i] = ev.Key
	}
	return keys
}
