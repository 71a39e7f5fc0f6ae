package scene

import (
	"github.com/aretw0/tableau/pkg/domain"
)

// container is whatever a node's percent sizes are relative to.
type container interface {
	ContentWidth() int
	ContentHeight() int
}

// Node is a scene entity: a rectangle with styling, per-channel action lists
// and an optional link to a resource it was cloned from.
//
// Group nodes carry their layout and propagation state in a *Group reachable
// through AsGroup; the Node methods dispatch to it where groups behave
// differently.
type Node struct {
	id     ID
	reg    *Registry
	kind   domain.Kind
	name   string
	parent container
	group  *Group
	alive  bool

	// inLibrary is set while the node is held by the resource library.
	inLibrary bool

	x, y          int
	width, height domain.Size
	padding       domain.Padding

	opacity        int
	visible        bool
	bgColor        domain.Color
	bgOpacity      int
	bgImage        string
	cornerRadius   int
	borderWidth    int
	borderColor    domain.Color
	hasBorderColor bool

	actions eventActions
	link    resourceLink

	// resourceConns disconnects the listeners attached to the current resource.
	resourceConns []func()

	signalsBlocked       bool
	notificationsBlocked bool

	changed        signal[domain.ChangeEvent]
	actionInserted signal[ActionInserted]
	actionRemoved  signal[ActionRemoved]
	actionMoved    signal[ActionMoved]
	destroyed      signal[*Node]
}

// NewObject creates a plain node of the given kind. Group kinds get their
// group state attached.
func (r *Registry) NewObject(kind domain.Kind, name string) *Node {
	if kind.IsGroup() {
		return r.NewGroup(kind, name).Node
	}
	return r.newNode(kind, name)
}

func (r *Registry) newNode(kind domain.Kind, name string) *Node {
	if !kind.Valid() {
		kind = domain.KindObject
	}
	n := &Node{
		id:        r.allocate(),
		reg:       r,
		kind:      kind,
		name:      name,
		alive:     true,
		opacity:   255,
		visible:   true,
		bgColor:   domain.Color{R: 255, G: 255, B: 255, A: 0},
		bgOpacity: 255,
	}
	n.link.reg = r
	n.link.synced = true
	n.link.resourceDestroyed.connect(func(ID) { n.disconnectResource() })
	r.add(n)
	return n
}

func (n *Node) ID() ID { return n.id }

func (n *Node) label() string { return n.name }

func (n *Node) resourceLink() *resourceLink { return &n.link }

// Kind returns the node's type tag.
func (n *Node) Kind() domain.Kind { return n.kind }

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// SetName renames the node. Empty names are refused.
func (n *Node) SetName(name string) bool {
	if name == "" || name == n.name {
		return name != ""
	}
	prev := n.name
	n.name = name
	n.notify("name", name, prev)
	return true
}

// Alive reports whether the node has not been destroyed.
func (n *Node) Alive() bool { return n.alive }

// AsGroup returns the node's group capability, or nil for plain nodes.
func (n *Node) AsGroup() *Group { return n.group }

// IsResource reports whether the node is held by the resource library,
// directly or as a child of a library group.
func (n *Node) IsResource() bool {
	if n.inLibrary {
		return true
	}
	if p := n.Parent(); p != nil {
		return p.IsResource()
	}
	return false
}

// Parent returns the group holding the node, or nil.
func (n *Node) Parent() *Group {
	g, _ := n.parent.(*Group)
	return g
}

// OnChange registers a listener for change notifications.
func (n *Node) OnChange(fn func(domain.ChangeEvent)) func() {
	return n.changed.connect(fn)
}

// OnActionInserted registers a listener for structural inserts.
func (n *Node) OnActionInserted(fn func(ActionInserted)) func() {
	return n.actionInserted.connect(fn)
}

// OnActionRemoved registers a listener for structural removals.
func (n *Node) OnActionRemoved(fn func(ActionRemoved)) func() {
	return n.actionRemoved.connect(fn)
}

// OnActionMoved registers a listener for action moves.
func (n *Node) OnActionMoved(fn func(ActionMoved)) func() {
	return n.actionMoved.connect(fn)
}

// OnDestroyed registers a listener fired once when the node is destroyed.
func (n *Node) OnDestroyed(fn func(*Node)) func() {
	return n.destroyed.connect(fn)
}

// OnSyncChanged registers a listener for the synced flag.
func (n *Node) OnSyncChanged(fn func(bool)) func() {
	return n.link.syncChanged.connect(fn)
}

// BlockSignals suppresses every signal the node emits and returns the
// previous state so callers can restore it.
func (n *Node) BlockSignals(block bool) bool {
	prev := n.signalsBlocked
	n.signalsBlocked = block
	return prev
}

// SignalsBlocked reports whether signals are suppressed.
func (n *Node) SignalsBlocked() bool { return n.signalsBlocked }

// BlockNotifications suppresses change notifications only and returns the
// previous state.
func (n *Node) BlockNotifications(block bool) bool {
	prev := n.notificationsBlocked
	n.notificationsBlocked = block
	return prev
}

// notify emits a change event unless notifications or signals are blocked.
func (n *Node) notify(key string, value, prev any) {
	if n.notificationsBlocked || n.signalsBlocked {
		return
	}
	n.changed.emit(domain.ChangeEvent{Key: key, Value: value, Previous: prev})
}

// Resource returns the node this one is a clone of, or nil.
func (n *Node) Resource() *Node {
	r, _ := n.link.target().(*Node)
	return r
}

// IsSynced reports whether resource edits reach this node.
func (n *Node) IsSynced() bool { return n.link.synced }

// SetSynced toggles propagation from the resource. Turning it off keeps
// everything already copied.
func (n *Node) SetSynced(synced bool) {
	if n.link.synced == synced {
		return
	}
	prev := n.link.synced
	n.link.setSynced(synced)
	n.notify("sync", synced, prev)
}

// Clones returns every live node whose resource is n.
func (n *Node) Clones() []*Node {
	var out []*Node
	for _, e := range n.reg.clonesOf(n.id) {
		if c, ok := e.(*Node); ok {
			out = append(out, c)
		}
	}
	return out
}

// SetResource links the node to r, detaching from the previous resource
// first. Kinds are not required to match. Passing nil, or a resource that
// already depends on n, clears the link.
func (n *Node) SetResource(r *Node) {
	if n.group != nil {
		n.group.setResource(r)
		return
	}
	n.setResource(r)
}

func (n *Node) setResource(r *Node) {
	n.disconnectResource()
	if r == nil || !r.alive {
		n.link.resource = 0
		return
	}
	if n.reg.reaches(r.id, n.id) {
		n.reg.logger.Debug("resource cycle rejected", "object", n.name, "resource", r.name)
		n.link.resource = 0
		return
	}
	n.link.resource = r.id
	n.connectToResource(r)
}

func (n *Node) connectToResource(r *Node) {
	n.resourceConns = append(n.resourceConns,
		r.actionInserted.connect(n.onResourceActionInserted),
		r.actionRemoved.connect(n.onResourceActionRemoved),
		r.actionMoved.connect(n.onResourceActionMoved),
		r.changed.connect(n.onResourceChanged),
	)
}

func (n *Node) disconnectResource() {
	for _, disconnect := range n.resourceConns {
		disconnect()
	}
	n.resourceConns = nil
}

// Destroy releases the node, its owned actions and, for groups, its children.
// Clones lose their resource link.
func (n *Node) Destroy() {
	if !n.alive {
		return
	}
	if n.group != nil {
		n.group.teardown()
	}
	n.alive = false
	n.disconnectResource()

	for _, a := range n.actions.all() {
		if a.OwnedBy(n.id) {
			a.Destroy()
		} else {
			a.released.emit(a)
		}
	}
	n.actions = eventActions{}

	n.destroyed.emit(n)
	n.reg.release(n)

	n.changed.reset()
	n.actionInserted.reset()
	n.actionRemoved.reset()
	n.actionMoved.reset()
	n.destroyed.reset()
	n.link.syncChanged.reset()
	n.link.resourceDestroyed.reset()
}
