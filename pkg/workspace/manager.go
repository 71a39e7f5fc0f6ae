package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/aretw0/tableau/pkg/scene"
)

// DefaultLockTTL bounds how long a crashed editor can hold a distributed lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates document access, ensuring safe concurrent edits.
// Unused locks are dropped once their reference count reaches zero.
type Manager struct {
	store ports.DocumentStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker    ports.DistributedLocker
	lockTTL   time.Duration
	logger    *slog.Logger
	sceneOpts []scene.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager and the projects it opens.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
		m.sceneOpts = append(m.sceneOpts, scene.WithLogger(logger))
	}
}

// WithSceneOptions passes options (factory, hooks) to every opened project.
func WithSceneOptions(opts ...scene.Option) Option {
	return func(m *Manager) {
		m.sceneOpts = append(m.sceneOpts, opts...)
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.DocumentStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock runs fn while holding the lock for the document.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"document_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Document loads the raw stored document.
func (m *Manager) Document(ctx context.Context, id string) (*domain.Document, error) {
	var doc *domain.Document
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		doc, err = m.store.Load(ctx, id)
		return err
	})
	return doc, err
}

// Open loads the document and builds its project.
func (m *Manager) Open(ctx context.Context, id string) (*scene.Project, error) {
	doc, err := m.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.open(id, doc)
}

func (m *Manager) open(id string, doc *domain.Document) (*scene.Project, error) {
	if doc.ID == "" {
		doc.ID = id
	}
	p, err := scene.Open(doc, m.sceneOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %q: %w", id, err)
	}
	return p, nil
}

// Create stores a new empty project. It fails with domain.ErrNameTaken when
// the ID is already in use.
func (m *Manager) Create(ctx context.Context, id, name string, width, height int) (*scene.Project, error) {
	var p *scene.Project
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		_, err := m.store.Load(ctx, id)
		switch {
		case err == nil:
			return fmt.Errorf("failed to create document %q: %w", id, domain.ErrNameTaken)
		case !errors.Is(err, domain.ErrDocumentNotFound):
			return fmt.Errorf("failed to check document existence: %w", err)
		}

		p = scene.NewProject(id, name, width, height, m.sceneOpts...)
		if err := m.store.Save(ctx, id, p.Document()); err != nil {
			return fmt.Errorf("failed to initialize document: %w", err)
		}
		return nil
	})
	return p, err
}

// Edit loads the project, runs fn on it and saves the result, all under the
// document's lock. Nothing is saved when fn fails.
func (m *Manager) Edit(ctx context.Context, id string, fn func(*scene.Project) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		doc, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}
		p, err := m.open(id, doc)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		if err := m.store.Save(ctx, id, p.Document()); err != nil {
			return fmt.Errorf("failed to save document %q: %w", id, err)
		}
		m.logger.Debug("document saved", "document_id", id, "scenes", len(p.Scenes()))
		return nil
	})
}

// Layout re-runs group layout across the whole project and saves it.
// It returns the number of groups laid out.
func (m *Manager) Layout(ctx context.Context, id string) (int, error) {
	var n int
	err := m.Edit(ctx, id, func(p *scene.Project) error {
		n = p.Layout()
		return nil
	})
	return n, err
}

// Save persists the project under id.
func (m *Manager) Save(ctx context.Context, id string, p *scene.Project) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Save(ctx, id, p.Document())
	})
}

// Delete removes the document from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying document store.
func (m *Manager) Store() ports.DocumentStore {
	return m.store
}
