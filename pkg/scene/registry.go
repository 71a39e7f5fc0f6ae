package scene

import (
	"log/slog"
	"sort"

	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
	actions "github.com/aretw0/tableau/pkg/registry"
)

// ID is a weak handle to a registered entity. Handles are never reused, so a
// handle to a destroyed entity simply stops resolving.
type ID uint64

// entity is anything that can take part in a resource/clone relationship.
type entity interface {
	ID() ID
	label() string
	resourceLink() *resourceLink
}

// Registry is the arena every node and action of a project lives in.
// Clone to resource edges are stored on the clone; the reverse direction is
// derived on demand by scanning the arena.
//
// A Registry and everything created from it is not safe for concurrent use.
type Registry struct {
	next     ID
	entities map[ID]entity
	factory  ports.ActionFactory
	logger   *slog.Logger
	hooks    domain.Hooks
	library  *Library
}

// NewRegistry creates an empty arena with its resource library.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entities: make(map[ID]entity),
		factory:  actions.NewCatalog(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.library = newLibrary(r)
	return r
}

// Library returns the project's resource library.
func (r *Registry) Library() *Library {
	return r.library
}

// Factory returns the action factory used for every copy made by the core.
func (r *Registry) Factory() ports.ActionFactory {
	return r.factory
}

// Logger returns the registry logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Alive reports whether the handle still resolves.
func (r *Registry) Alive(id ID) bool {
	_, ok := r.entities[id]
	return ok
}

// Node resolves a handle to a live node.
func (r *Registry) Node(id ID) *Node {
	n, _ := r.entities[id].(*Node)
	return n
}

// Action resolves a handle to a live action.
func (r *Registry) Action(id ID) *Action {
	a, _ := r.entities[id].(*Action)
	return a
}

func (r *Registry) allocate() ID {
	r.next++
	return r.next
}

func (r *Registry) add(e entity) {
	r.entities[e.ID()] = e
}

func (r *Registry) lookup(id ID) entity {
	if id == 0 {
		return nil
	}
	return r.entities[id]
}

// reaches reports whether following resource links from id arrives at
// target, id itself included.
func (r *Registry) reaches(id, target ID) bool {
	seen := make(map[ID]bool)
	for id != 0 && !seen[id] {
		if id == target {
			return true
		}
		seen[id] = true
		e := r.lookup(id)
		if e == nil {
			return false
		}
		id = e.resourceLink().resource
	}
	return false
}

// clonesOf returns every live entity whose resource is id, in creation order.
func (r *Registry) clonesOf(id ID) []entity {
	if id == 0 {
		return nil
	}
	var out []entity
	for _, e := range r.entities {
		if e.resourceLink().resource == id {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// release removes the entity from the arena and clears the resource link on
// every clone that pointed at it.
func (r *Registry) release(e entity) {
	id := e.ID()
	if _, ok := r.entities[id]; !ok {
		return
	}
	clones := r.clonesOf(id)
	delete(r.entities, id)

	for _, c := range clones {
		l := c.resourceLink()
		l.resource = 0
		l.resourceDestroyed.emit(id)
	}

	if _, isNode := e.(*Node); isNode && len(clones) > 0 {
		r.logger.Debug("resource destroyed", "resource", e.label(), "clones", len(clones))
		if r.hooks.OnResourceDestroyed != nil {
			r.hooks.OnResourceDestroyed(&domain.ResourceEvent{Resource: e.label(), Clones: len(clones)})
		}
	}
}

// resourceLink is the clone side of the resource/clone edge plus the synced flag.
type resourceLink struct {
	reg      *Registry
	resource ID
	synced   bool

	syncChanged       signal[bool]
	resourceDestroyed signal[ID]
}

func (l *resourceLink) target() entity {
	return l.reg.lookup(l.resource)
}

func (l *resourceLink) setSynced(synced bool) {
	if l.synced == synced {
		return
	}
	l.synced = synced
	l.syncChanged.emit(synced)
}
