package scene

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/domain"
)

// geometryKeys are stripped from child changes before they are mirrored to
// siblings or forwarded to clone groups; layout owns them.
var geometryKeys = []string{"x", "y", "width", "height", "relativeX", "relativeY"}

// Group is a node that owns an ordered list of children, keeps them stacked
// vertically and, when its children are synced, fans structural action edits
// made on one child out to the others.
type Group struct {
	*Node

	children   []*Node
	childConns map[ID][]func()
	sticky     map[ID]bool
	spacing    int

	alignEnabled     bool
	resizeToContents bool
	editingMode      bool
	objectsSynced    bool

	alignGuard guard
	propGuard  guard

	pools     []*ActionPool
	poolConns map[*ActionPool]func()
	central   []*Action

	// groupConns disconnects the listeners exchanged with a resource group.
	groupConns []func()

	objectActionInserted signal[ObjectActionInserted]
	objectActionRemoved  signal[ObjectActionRemoved]
	objectActionMoved    signal[ObjectActionMoved]
	objectsSyncChanged   signal[bool]
}

// NewGroup creates an empty group of the given kind. Non-group kinds fall
// back to KindObjectGroup.
func (r *Registry) NewGroup(kind domain.Kind, name string) *Group {
	if !kind.IsGroup() {
		kind = domain.KindObjectGroup
	}
	n := r.newNode(kind, name)
	g := &Group{
		Node:             n,
		childConns:       make(map[ID][]func()),
		sticky:           make(map[ID]bool),
		poolConns:        make(map[*ActionPool]func()),
		alignEnabled:     true,
		resizeToContents: true,
	}
	n.group = g
	n.link.resourceDestroyed.connect(func(ID) { g.disconnectResourceGroup() })
	return g
}

// Children returns a copy of the ordered child list.
func (g *Group) Children() []*Node {
	return append([]*Node(nil), g.children...)
}

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// Child returns the child at index, or nil.
func (g *Group) Child(index int) *Node {
	if index < 0 || index >= len(g.children) {
		return nil
	}
	return g.children[index]
}

// ChildNamed returns the first child with the given name, or nil.
func (g *Group) ChildNamed(name string) *Node {
	for _, c := range g.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ChildAt returns the topmost child containing the point, or nil.
func (g *Group) ChildAt(x, y int) *Node {
	for i := len(g.children) - 1; i >= 0; i-- {
		if g.children[i].Contains(x, y) {
			return g.children[i]
		}
	}
	return nil
}

// IndexOf returns the position of child, or -1.
func (g *Group) IndexOf(child *Node) int {
	if child == nil {
		return -1
	}
	for i, c := range g.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Add places child at x, y relative to the group's top-left corner and
// takes ownership of it. A child held by another group is moved.
func (g *Group) Add(child *Node, x, y int) {
	if child == nil || !child.alive || !g.alive || child == g.Node || g.IndexOf(child) >= 0 {
		return
	}
	if prev := child.Parent(); prev != nil {
		prev.RemoveChild(child, false)
	}
	child.SetX(g.X() + x)
	child.SetY(g.Y() + y)
	g.attach(child)
	g.adaptSize()
	g.notify("objects", g.childNames(), nil)
}

// Append adds child below the current content, one spacing away from the
// last child.
func (g *Group) Append(child *Node, x int) {
	y := g.Height()
	if len(g.children) > 0 {
		y += g.spacing
	}
	g.Add(child, x, y)
}

// attach wires child into the group without touching the layout.
func (g *Group) attach(child *Node) {
	child.parent = g
	g.childConns[child.id] = []func(){
		child.changed.connect(func(ev domain.ChangeEvent) { g.onChildChanged(child, ev) }),
		child.destroyed.connect(g.onChildDestroyed),
		child.actionInserted.connect(func(ev ActionInserted) { g.onChildActionInserted(child, ev) }),
		child.actionRemoved.connect(func(ev ActionRemoved) { g.onChildActionRemoved(child, ev) }),
		child.actionMoved.connect(func(ev ActionMoved) { g.onChildActionMoved(child, ev) }),
	}

	if len(g.children) == 0 {
		g.initChildActions(child)
	} else {
		g.correlateChild(g.children[len(g.children)-1], child)
	}
	if res := g.resourceGroup(); res != nil {
		if rc := res.Child(len(g.children)); rc != nil {
			g.correlateChild(rc, child)
		}
	}

	g.children = append(g.children, child)
}

// detach unwires the child at index and returns it.
func (g *Group) detach(index int) *Node {
	child := g.children[index]
	g.children = append(g.children[:index], g.children[index+1:]...)
	for _, disconnect := range g.childConns[child.id] {
		disconnect()
	}
	delete(g.childConns, child.id)
	delete(g.sticky, child.id)
	if child.parent == g {
		child.parent = nil
	}
	return child
}

// RemoveChildAt removes the child at index. When del is true the child is
// destroyed. Out of range is a no-op.
func (g *Group) RemoveChildAt(index int, del bool) {
	if index < 0 || index >= len(g.children) {
		return
	}
	prev := g.childNames()
	child := g.detach(index)
	g.notify("objects", g.childNames(), prev)
	if del {
		child.Destroy()
	}
	g.adaptSize()
}

// RemoveChild removes child if the group holds it.
func (g *Group) RemoveChild(child *Node, del bool) {
	g.RemoveChildAt(g.IndexOf(child), del)
}

// RemoveAll removes every child and reports it as a single change.
func (g *Group) RemoveAll(del bool) {
	if len(g.children) == 0 {
		return
	}
	prev := g.childNames()
	blocked := g.BlockSignals(true)
	for i := len(g.children) - 1; i >= 0; i-- {
		g.RemoveChildAt(i, del)
	}
	g.BlockSignals(blocked)
	g.notify("objects", []string{}, prev)
}

func (g *Group) onChildDestroyed(child *Node) {
	if i := g.IndexOf(child); i >= 0 {
		g.RemoveChildAt(i, false)
	}
}

// onChildChanged forwards a child's change to clone groups as "_object" and,
// when children are synced, loads it into every sibling.
func (g *Group) onChildChanged(child *Node, ev domain.ChangeEvent) {
	if g.alignGuard.active() {
		return
	}
	index := g.IndexOf(child)
	if index < 0 {
		return
	}

	data := ev.Data().Without(geometryKeys...)
	if len(data) > 0 {
		payload := data.Clone()
		payload["_index"] = index
		g.notify("_object", map[string]any(payload), nil)
	}
	if g.objectsSynced {
		g.loadOtherChildren(child, data)
	}

	if g.editingMode && isGeometryKey(ev.Key) {
		blocked := g.BlockSignals(true)
		g.adaptSize()
		g.BlockSignals(blocked)
	}
}

// loadChild applies data to one child, keeping its identity and position.
func (g *Group) loadChild(child *Node, data domain.Description) {
	if child == nil || len(data) == 0 {
		return
	}
	child.Load(data.Without("x", "y", "name", "sync", "resource", "relativeX", "relativeY", "_index"))
}

func (g *Group) loadOtherChildren(except *Node, data domain.Description) {
	if len(data) == 0 {
		return
	}
	data = data.Without("relativeX", "relativeY")
	for _, c := range g.Children() {
		if c != except {
			g.loadChild(c, data)
		}
	}
}

func (g *Group) childNames() []string {
	names := make([]string, len(g.children))
	for i, c := range g.children {
		names[i] = c.name
	}
	return names
}

// ObjectsSynced reports whether structural action edits on one child reach
// its siblings.
func (g *Group) ObjectsSynced() bool { return g.objectsSynced }

// SetObjectsSynced toggles sibling propagation. Actions bound to the group
// follow the new value.
func (g *Group) SetObjectsSynced(synced bool) {
	if g.objectsSynced == synced {
		return
	}
	g.objectsSynced = synced
	g.notify("objectsSynced", synced, !synced)
	g.objectsSyncChanged.emit(synced)
}

// OnObjectActionInserted registers a listener for group-level inserts.
func (g *Group) OnObjectActionInserted(fn func(ObjectActionInserted)) func() {
	return g.objectActionInserted.connect(fn)
}

// OnObjectActionRemoved registers a listener for group-level removals.
func (g *Group) OnObjectActionRemoved(fn func(ObjectActionRemoved)) func() {
	return g.objectActionRemoved.connect(fn)
}

// OnObjectActionMoved registers a listener for group-level moves.
func (g *Group) OnObjectActionMoved(fn func(ObjectActionMoved)) func() {
	return g.objectActionMoved.connect(fn)
}

// Pools returns the live action pools the group takes part in.
func (g *Group) Pools() []*ActionPool {
	out := make([]*ActionPool, 0, len(g.pools))
	for _, p := range g.pools {
		if !p.Disposed() {
			out = append(out, p)
		}
	}
	return out
}

// CentralActions returns the group-owned representatives of pooled actions.
func (g *Group) CentralActions() []*Action {
	return append([]*Action(nil), g.central...)
}

// resourceGroup returns the resource as a group, or nil.
func (g *Group) resourceGroup() *Group {
	if res := g.Resource(); res != nil {
		return res.group
	}
	return nil
}

// teardown destroys the children and releases pools and central actions.
func (g *Group) teardown() {
	g.disconnectResourceGroup()
	for i := len(g.children) - 1; i >= 0; i-- {
		g.detach(i).Destroy()
	}
	for _, a := range g.central {
		a.Destroy()
	}
	g.central = nil
	for _, p := range g.pools {
		if disconnect, ok := g.poolConns[p]; ok {
			disconnect()
		}
		if p.Owner() == g.id {
			p.Dispose()
		}
	}
	g.pools = nil
	g.poolConns = make(map[*ActionPool]func())

	g.objectActionInserted.reset()
	g.objectActionRemoved.reset()
	g.objectActionMoved.reset()
	g.objectsSyncChanged.reset()
}

func (g *Group) String() string {
	return fmt.Sprintf("%s %q (%d children)", g.kind, g.name, len(g.children))
}

func isGeometryKey(key string) bool {
	switch key {
	case "x", "y", "width", "height", domain.ChangePosition, domain.ChangeSize:
		return true
	}
	return false
}
