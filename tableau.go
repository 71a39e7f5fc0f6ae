package tableau

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/aretw0/tableau/internal/presentation/graph"
	"github.com/aretw0/tableau/internal/presentation/tui"
	"github.com/aretw0/tableau/internal/validator"
	"github.com/aretw0/tableau/pkg/adapters/file"
	httpAdapter "github.com/aretw0/tableau/pkg/adapters/http"
	redisAdapter "github.com/aretw0/tableau/pkg/adapters/redis"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/observability"
	"github.com/aretw0/tableau/pkg/persistence/middleware"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/aretw0/tableau/pkg/registry"
	"github.com/aretw0/tableau/pkg/scene"
	"github.com/aretw0/tableau/pkg/workspace"
)

// Version is the release of the tableau module.
const Version = "0.4.0"

// Engine is the high-level entry point for the tableau library.
// It wires a document store, the action catalog, metrics and the workspace.
type Engine struct {
	Name string

	store       ports.DocumentStore
	locker      ports.DistributedLocker
	closer      io.Closer
	format      file.Format
	redisAddr   string
	encryption  *middleware.EncryptionConfig
	strict      bool
	hooks       domain.Hooks
	metrics     *observability.Metrics
	logger      *slog.Logger
	catalog     *registry.Catalog
	validator   *validator.Validator
	workspace   *workspace.Manager
	workspaceOp []workspace.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a document store, bypassing the default file store.
func WithStore(s ports.DocumentStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithFormat selects the on-disk format of the default file store.
func WithFormat(f file.Format) Option {
	return func(e *Engine) {
		e.format = f
	}
}

// WithRedis stores documents in Redis at addr and coordinates edits with a
// Redis lock.
func WithRedis(addr string) Option {
	return func(e *Engine) {
		e.redisAddr = addr
	}
}

// WithEncryption encrypts documents at rest with AES-GCM.
func WithEncryption(config middleware.EncryptionConfig) Option {
	return func(e *Engine) {
		e.encryption = &config
	}
}

// WithStrict rejects unknown action kinds instead of keeping them opaque.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithHooks registers observability hooks on every opened project.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics records scene activity into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkspaceOptions passes extra options to the workspace manager.
func WithWorkspaceOptions(opts ...workspace.Option) Option {
	return func(e *Engine) {
		e.workspaceOp = append(e.workspaceOp, opts...)
	}
}

// New initializes an Engine. By default documents live as JSON files under
// dir; WithStore or WithRedis replace that store, in which case dir is only
// used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{format: file.JSON}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	switch {
	case eng.store != nil:
	case eng.redisAddr != "":
		rs := redisAdapter.New(eng.redisAddr, "", 0)
		eng.store = rs
		eng.closer = rs
		if eng.locker == nil {
			eng.locker = redisAdapter.NewLocker(rs.Client(), "tableau:")
		}
	default:
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom store is provided")
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.store = file.New(abs, file.WithFormat(eng.format))
	}
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			eng.Name = filepath.Base(abs)
		}
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("project", eng.Name)
	}

	if eng.encryption != nil {
		eng.store = middleware.Chain(eng.store, middleware.NewEncryptionMiddleware(*eng.encryption))
	}

	eng.catalog = registry.NewCatalog(registry.WithStrict(eng.strict))
	eng.validator = validator.New(validator.WithFactory(eng.catalog))

	hooks := eng.hooks
	if eng.metrics != nil {
		hooks = domain.CombineHooks(eng.metrics.Hooks(), eng.hooks)
	}

	wsOpts := []workspace.Option{
		workspace.WithLogger(eng.logger),
		workspace.WithSceneOptions(scene.WithFactory(eng.catalog), scene.WithHooks(hooks)),
	}
	if eng.locker != nil {
		wsOpts = append(wsOpts, workspace.WithLocker(eng.locker))
	}
	eng.workspace = workspace.NewManager(eng.store, append(wsOpts, eng.workspaceOp...)...)

	return eng, nil
}

// Workspace returns the document manager.
func (e *Engine) Workspace() *workspace.Manager { return e.workspace }

// Catalog returns the action catalog used to build actions.
func (e *Engine) Catalog() *registry.Catalog { return e.catalog }

// Metrics returns the configured metrics, or nil.
func (e *Engine) Metrics() *observability.Metrics { return e.metrics }

// Open loads a document as a project.
func (e *Engine) Open(ctx context.Context, id string) (*scene.Project, error) {
	return e.workspace.Open(ctx, id)
}

// Layout re-runs layout on every group of the document and saves it.
func (e *Engine) Layout(ctx context.Context, id string) (int, error) {
	return e.workspace.Layout(ctx, id)
}

// Validate checks the stored document. Problems are reported as a
// *schema.AggregateError.
func (e *Engine) Validate(ctx context.Context, id string) error {
	doc, err := e.workspace.Document(ctx, id)
	if err != nil {
		return err
	}
	return e.validator.Validate(doc)
}

// Graph renders the document's resource and group structure as Mermaid.
// Highlighted paths look like "scene/object" or "library/resource".
func (e *Engine) Graph(ctx context.Context, id string, highlight ...string) (string, error) {
	p, err := e.Open(ctx, id)
	if err != nil {
		return "", err
	}
	var overlay *graph.Overlay
	if len(highlight) > 0 {
		overlay = &graph.Overlay{Highlight: highlight}
	}
	return graph.GenerateMermaid(p, overlay), nil
}

// Report renders a markdown summary of the document.
func (e *Engine) Report(ctx context.Context, id string) (string, error) {
	p, err := e.Open(ctx, id)
	if err != nil {
		return "", err
	}
	return tui.Report(p), nil
}

// Handler returns the HTTP API for the engine's documents.
func (e *Engine) Handler() http.Handler {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(e.logger),
		httpAdapter.WithValidator(e.validator),
		httpAdapter.WithVersion(Version),
	}
	if e.metrics != nil {
		opts = append(opts, httpAdapter.WithMetrics(e.metrics.Handler()))
	}
	return httpAdapter.NewHandler(e.workspace, opts...)
}

// Close releases the store's connections, if any.
func (e *Engine) Close() error {
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}
