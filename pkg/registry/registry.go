package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Constructor returns a zero-valued body pointer that the catalog decodes a
// description into.
type Constructor func() domain.ActionBody

// Catalog manages the available action kinds and implements ports.ActionFactory.
type Catalog struct {
	mu     sync.RWMutex
	kinds  map[string]Constructor
	strict bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStrict makes unknown kinds an error instead of an opaque body.
func WithStrict(strict bool) Option {
	return func(c *Catalog) {
		c.strict = strict
	}
}

// NewCatalog creates a catalog preloaded with the built-in action kinds.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		kinds: make(map[string]Constructor),
	}
	for kind, ctor := range builtins() {
		c.kinds[kind] = ctor
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds an action kind to the catalog.
// If a kind with the same name exists, it is overwritten.
func (c *Catalog) Register(kind string, ctor Constructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinds[kind] = ctor
}

// Has reports whether the kind is registered.
func (c *Catalog) Has(kind string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.kinds[kind]
	return ok
}

// Kinds returns the registered kind names in alphabetical order.
func (c *Catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NewAction looks up the description's kind and decodes it into a fresh body.
func (c *Catalog) NewAction(desc domain.Description) (domain.ActionBody, error) {
	kind, ok := desc.String("type")
	if !ok || kind == "" {
		return nil, fmt.Errorf("%w: action without type", domain.ErrInvalidDescription)
	}

	c.mu.RLock()
	ctor, ok := c.kinds[kind]
	strict := c.strict
	c.mu.RUnlock()

	if !ok {
		if strict {
			return nil, fmt.Errorf("%w: action %q", domain.ErrUnknownKind, kind)
		}
		return &Opaque{kind: kind, data: desc.Without("type").Clone()}, nil
	}

	body := ctor()
	if err := decode(desc.Without("type"), body); err != nil {
		return nil, fmt.Errorf("failed to decode %s action: %w", kind, err)
	}
	return body, nil
}

func decode(input domain.Description, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(input)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDescription, err)
	}
	return nil
}

// Opaque carries an action of a kind the catalog does not know. Its data is
// preserved verbatim so saving a project never drops information.
type Opaque struct {
	kind string
	data domain.Description
}

func (o *Opaque) Kind() string { return o.kind }

func (o *Opaque) Describe() domain.Description {
	d := o.data.Clone()
	if d == nil {
		d = domain.Description{}
	}
	d["type"] = o.kind
	return d
}
