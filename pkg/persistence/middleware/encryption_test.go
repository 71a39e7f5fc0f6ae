package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/tableau/pkg/adapters/memory"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/persistence/middleware"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func secretDoc() *domain.Document {
	return &domain.Document{
		ID:   "novel",
		Name: "My Secret Novel",
		Resources: []domain.Description{
			{"type": "TextBox", "name": "spoiler", "text": "the butler did it"},
		},
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := NewMockStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()

	require.NoError(t, secure.Save(ctx, "novel", secretDoc()))

	stored, err := underlying.Load(ctx, "novel")
	require.NoError(t, err)
	assert.Equal(t, "novel", stored.ID)
	assert.Empty(t, stored.Name)
	assert.Empty(t, stored.Resources)
	require.Len(t, stored.Scenes, 1)
	assert.Contains(t, stored.Scenes[0], "__encrypted__")

	loaded, err := secure.Load(ctx, "novel")
	require.NoError(t, err)
	assert.Equal(t, "My Secret Novel", loaded.Name)
	require.Len(t, loaded.Resources, 1)
	assert.Equal(t, "the butler did it", loaded.Resources[0]["text"])
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := NewMockStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	withOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, withOld.Save(ctx, "novel", secretDoc()))

	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := rotated.Load(ctx, "novel")
	require.NoError(t, err)
	assert.Equal(t, "My Secret Novel", loaded.Name)

	loaded.Name = "Re-encrypted"
	require.NoError(t, rotated.Save(ctx, "novel", loaded))

	_, err = withOld.Load(ctx, "novel")
	assert.ErrorIs(t, err, middleware.ErrUndecryptable, "the old key alone can no longer read the document")
}

func TestEncryptionMiddleware_EnvelopeBoundToID(t *testing.T) {
	underlying := NewMockStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()
	require.NoError(t, secure.Save(ctx, "novel", secretDoc()))

	stored, err := underlying.Load(ctx, "novel")
	require.NoError(t, err)
	require.NoError(t, underlying.Save(ctx, "copy", stored))

	_, err = secure.Load(ctx, "copy")
	assert.ErrorIs(t, err, middleware.ErrUndecryptable)
}

func TestEncryptionMiddleware_RejectsPlainDocuments(t *testing.T) {
	underlying := NewMockStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "plain", secretDoc()))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)

	_, err = secure.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	key := generateKey(t)
	store := middleware.Chain(memory.NewStore(), middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	ports.RunDocumentStoreContract(t, store)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    generateKey(t),
			FallbackKeys: [][]byte{[]byte("short-key")},
		})
	}, "fallback keys are validated up front")
}
