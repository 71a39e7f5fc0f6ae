package ports

import (
	"context"

	"github.com/aretw0/tableau/pkg/domain"
)

// DocumentStore defines the interface for persisting project documents.
type DocumentStore interface {
	// Save persists the document under the given ID.
	Save(ctx context.Context, id string, doc *domain.Document) error

	// Load retrieves the document for a given ID.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes the document for a given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored document.
	List(ctx context.Context) ([]string, error)
}
