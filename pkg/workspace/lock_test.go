package workspace

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/tableau/pkg/adapters/memory"
	"github.com/aretw0/tableau/pkg/scene"
	"github.com/stretchr/testify/assert"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	p := scene.NewProject("doc", "Doc", 320, 240)

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("doc-%d", i)
		_ = mgr.Save(ctx, id, p)
		_ = mgr.Delete(ctx, id)
		_, _ = mgr.Document(ctx, id)
	}

	assert.Empty(t, mgr.locks, "every lock entry is released once unused")
}
