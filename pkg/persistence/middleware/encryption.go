package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

// envelopeKey is the only entry of an encrypted document's envelope scene.
const envelopeKey = "__encrypted__"

var (
	// ErrNotEncrypted is returned when a stored document carries no envelope.
	ErrNotEncrypted = errors.New("document is missing encrypted data envelope")
	// ErrUndecryptable is returned when no configured key opens an envelope,
	// including envelopes moved under another document ID.
	ErrUndecryptable = errors.New("no configured key opens the document envelope")
)

// keyring seals with the first AEAD and opens with any of them, newest first.
type keyring []cipher.AEAD

func newKeyring(config EncryptionConfig) keyring {
	keys := append([][]byte{config.ActiveKey}, config.FallbackKeys...)
	ring := make(keyring, 0, len(keys))
	for i, key := range keys {
		block, err := aes.NewCipher(key)
		if err != nil {
			panic(fmt.Sprintf("encryption key %d: %v", i, err))
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			panic(fmt.Sprintf("encryption key %d: %v", i, err))
		}
		ring = append(ring, gcm)
	}
	return ring
}

// seal returns nonce||ciphertext. The document ID is bound as additional
// data so an envelope only opens under the ID it was written for.
func (k keyring) seal(id string, plain []byte) (string, error) {
	active := k[0]
	nonce := make([]byte, active.NonceSize(), active.NonceSize()+len(plain)+active.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(active.Seal(nonce, nonce, plain, []byte(id))), nil
}

func (k keyring) open(id, encoded string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	for _, aead := range k {
		n := aead.NonceSize()
		if len(blob) < n+aead.Overhead() {
			continue
		}
		if plain, err := aead.Open(nil, blob[:n], blob[n:], []byte(id)); err == nil {
			return plain, nil
		}
	}
	return nil, ErrUndecryptable
}

type encryptionMiddleware struct {
	next ports.DocumentStore
	keys keyring
}

// NewEncryptionMiddleware creates a middleware that encrypts whole documents
// using AES-GCM. Only the ID stays readable in the underlying store.
// Every key must be 32 bytes.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	keys := newKeyring(config)
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &encryptionMiddleware{next: next, keys: keys}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, id string, doc *domain.Document) error {
	plain, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	sealed, err := m.keys.seal(id, plain)
	if err != nil {
		return fmt.Errorf("failed to encrypt document: %w", err)
	}
	envelope := &domain.Document{
		ID:     doc.ID,
		Scenes: []domain.Description{{envelopeKey: sealed}},
	}
	return m.next.Save(ctx, id, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (*domain.Document, error) {
	envelope, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var sealed string
	if len(envelope.Scenes) == 1 {
		sealed, _ = envelope.Scenes[0].String(envelopeKey)
	}
	if sealed == "" {
		// Fail secure: plain documents are not served through this store.
		return nil, fmt.Errorf("failed to load %q: %w", id, ErrNotEncrypted)
	}

	plain, err := m.keys.open(id, sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %q: %w", id, err)
	}

	var doc domain.Document
	if err := json.Unmarshal(plain, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted document: %w", err)
	}
	return &doc, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
