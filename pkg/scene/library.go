package scene

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/tableau/pkg/domain"
)

// Library holds the project's resources: named template nodes that scene
// objects are cloned from.
type Library struct {
	reg       *Registry
	resources []*Node
	conns     map[ID]func()
}

func newLibrary(r *Registry) *Library {
	return &Library{reg: r, conns: make(map[ID]func())}
}

// Len returns the number of resources.
func (l *Library) Len() int { return len(l.resources) }

// Resources returns the resources in insertion order.
func (l *Library) Resources() []*Node {
	return append([]*Node(nil), l.resources...)
}

// Names returns the resource names in insertion order.
func (l *Library) Names() []string {
	names := make([]string, len(l.resources))
	for i, n := range l.resources {
		names[i] = n.name
	}
	return names
}

// Get returns the resource with the given name, or nil.
func (l *Library) Get(name string) *Node {
	for _, n := range l.resources {
		if n.name == name {
			return n
		}
	}
	return nil
}

// Add registers n as a resource. Names must be unique.
func (l *Library) Add(n *Node) error {
	if n == nil || !n.alive {
		return fmt.Errorf("failed to add resource: %w", domain.ErrInvalidDescription)
	}
	if n.name == "" {
		return fmt.Errorf("failed to add resource: missing name: %w", domain.ErrInvalidDescription)
	}
	if l.Get(n.name) != nil {
		return fmt.Errorf("failed to add resource %q: %w", n.name, domain.ErrNameTaken)
	}
	n.inLibrary = true
	l.resources = append(l.resources, n)
	l.conns[n.id] = n.destroyed.connect(l.forget)
	return nil
}

// Create builds a resource from its description and registers it.
func (l *Library) Create(desc domain.Description) (*Node, error) {
	n := l.reg.CreateObject(desc)
	if n == nil {
		return nil, fmt.Errorf("failed to create resource %q: %w", desc.Name(), domain.ErrInvalidDescription)
	}
	if err := l.Add(n); err != nil {
		n.Destroy()
		return nil, err
	}
	return n, nil
}

// Remove destroys the named resource. Its clones keep their state and lose
// the link.
func (l *Library) Remove(name string) bool {
	n := l.Get(name)
	if n == nil {
		return false
	}
	n.Destroy()
	return true
}

func (l *Library) forget(n *Node) {
	l.resources = slices.DeleteFunc(l.resources, func(r *Node) bool { return r == n })
	if disconnect, ok := l.conns[n.id]; ok {
		disconnect()
		delete(l.conns, n.id)
	}
	n.inLibrary = false
}

// UniqueName returns base, or base followed by the first free number.
func (l *Library) UniqueName(base string) string {
	return uniqueName(base, func(name string) bool { return l.Get(name) != nil })
}

// Instantiate clones the named resource. Keys in overrides win; every other
// key comes from the resource. The clone copies the resource's actions and
// stays linked to them.
func (l *Library) Instantiate(name string, overrides domain.Description) (*Node, error) {
	res := l.Get(name)
	if res == nil {
		return nil, fmt.Errorf("failed to instantiate %q: %w", name, domain.ErrResourceNotFound)
	}
	return l.reg.instantiate(res, overrides), nil
}

func (r *Registry) instantiate(res *Node, overrides domain.Description) *Node {
	desc := overrides.Clone()
	if desc == nil {
		desc = domain.Description{}
	}
	data := describeInternal(res).Without("resource", "sync")
	own := make(map[domain.Channel]bool)
	for _, ch := range domain.Channels {
		own[ch] = desc.Has(ch.Key())
		delete(data, ch.Key())
	}
	desc.Fill(data)
	delete(desc, "resource")

	n := r.NewObject(res.kind, res.name)
	n.Load(desc)
	n.SetResource(res)

	blocked := n.BlockSignals(true)
	for _, ch := range domain.Channels {
		if own[ch] {
			continue
		}
		for _, a := range res.actions.list(ch) {
			n.AppendAction(ch, a)
		}
	}
	n.BlockSignals(blocked)
	return n
}

// describeInternal is the description used to stamp out clones.
func describeInternal(n *Node) domain.Description {
	if n.group != nil {
		return n.group.describe(true)
	}
	return n.describe()
}

// Describe serializes every resource, groups last so that their children can
// refer to plain resources on load.
func (l *Library) Describe() []domain.Description {
	out := make([]domain.Description, 0, len(l.resources))
	for _, n := range l.resources {
		if n.group == nil {
			out = append(out, n.Describe())
		}
	}
	for _, n := range l.resources {
		if n.group != nil {
			out = append(out, n.Describe())
		}
	}
	return out
}

// Load creates a resource per description, plain kinds before groups. It
// keeps going past bad entries and reports them together.
func (l *Library) Load(descs []domain.Description) error {
	ordered := slices.Clone(descs)
	slices.SortStableFunc(ordered, func(a, b domain.Description) int {
		ga, gb := a.Kind().IsGroup(), b.Kind().IsGroup()
		switch {
		case ga == gb:
			return 0
		case gb:
			return -1
		default:
			return 1
		}
	})

	var errs []error
	for _, d := range ordered {
		if _, err := l.Create(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear destroys every resource.
func (l *Library) Clear() {
	for _, n := range l.Resources() {
		n.Destroy()
	}
}

// CreateObject builds a node from its description. A "resource" key naming
// a library entry instantiates that resource; otherwise "type" selects the
// kind. It returns nil when neither is usable.
func (r *Registry) CreateObject(desc domain.Description) *Node {
	if desc == nil {
		return nil
	}
	if name, ok := desc.String("resource"); ok && name != "" {
		if res := r.library.Get(name); res != nil {
			return r.instantiate(res, desc)
		}
		r.logger.Debug("unknown resource", "resource", name, "object", desc.Name())
	}
	kind := desc.Kind()
	if !kind.Valid() {
		return nil
	}
	n := r.NewObject(kind, desc.Name())
	n.Load(desc)
	return n
}

func uniqueName(base string, taken func(string) bool) string {
	if base == "" {
		base = "object"
	}
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		name := base + strconv.Itoa(i)
		if !taken(name) {
			return name
		}
	}
}
