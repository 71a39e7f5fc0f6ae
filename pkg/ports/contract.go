package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Document {
		return &domain.Document{
			ID:     id,
			Name:   "Contract",
			Width:  640,
			Height: 480,
			Resources: []domain.Description{
				{"name": "box", "type": "Object", "width": 100, "height": 40},
			},
			Scenes: []domain.Description{
				{"name": "intro", "objects": []any{
					map[string]any{"name": "box1", "type": "Object", "resource": "box", "x": 10},
				}},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, docID, sample(docID))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "Contract", loaded.Name)
		assert.Equal(t, 640, loaded.Width)
		require.Len(t, loaded.Resources, 1)
		assert.Equal(t, "box", loaded.Resources[0].Name())
		require.Len(t, loaded.Scenes, 1)

		// Numbers may come back as float64 after a JSON round trip.
		w, ok := loaded.Resources[0].Int("width")
		assert.True(t, ok)
		assert.Equal(t, 100, w)

		objects, ok := loaded.Scenes[0].List("objects")
		require.True(t, ok)
		require.Len(t, objects, 1)
		assert.Equal(t, "box", objects[0]["resource"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Isolation", func(t *testing.T) {
		doc := sample(docID)
		require.NoError(t, store.Save(ctx, docID, doc))
		doc.Name = "mutated after save"

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, "Contract", loaded.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, docID, sample(docID))
		require.NoError(t, err)

		err = store.Delete(ctx, docID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		_ = store.Save(ctx, id1, sample(id1))
		_ = store.Save(ctx, id2, sample(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
