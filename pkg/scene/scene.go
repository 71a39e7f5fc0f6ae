package scene

import (
	"slices"

	"github.com/aretw0/tableau/pkg/domain"
)

// Scene is one stage of the story: a canvas of top-level objects. Percent
// sizes of top-level objects resolve against the scene size.
type Scene struct {
	reg    *Registry
	name   string
	width  int
	height int

	objects []*Node
	conns   map[ID]func()
}

// NewScene creates an empty scene.
func (r *Registry) NewScene(name string, width, height int) *Scene {
	return &Scene{
		reg:    r,
		name:   name,
		width:  max(width, 0),
		height: max(height, 0),
		conns:  make(map[ID]func()),
	}
}

func (s *Scene) Name() string { return s.name }

func (s *Scene) SetName(name string) {
	if name != "" {
		s.name = name
	}
}

func (s *Scene) Width() int  { return s.width }
func (s *Scene) Height() int { return s.height }

// ContentWidth is the width percent sizes resolve against.
func (s *Scene) ContentWidth() int { return s.width }

// ContentHeight is the height percent sizes resolve against.
func (s *Scene) ContentHeight() int { return s.height }

// SetSize resizes the canvas.
func (s *Scene) SetSize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
}

// Registry returns the arena the scene's objects live in.
func (s *Scene) Registry() *Registry { return s.reg }

// Len returns the number of top-level objects.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns the top-level objects in paint order.
func (s *Scene) Objects() []*Node {
	return append([]*Node(nil), s.objects...)
}

// Object returns the top-level object with the given name, or nil.
func (s *Scene) Object(name string) *Node {
	for _, n := range s.objects {
		if n.name == name {
			return n
		}
	}
	return nil
}

// ObjectAt returns the topmost object containing the point, or nil.
func (s *Scene) ObjectAt(x, y int) *Node {
	for i := len(s.objects) - 1; i >= 0; i-- {
		if s.objects[i].visible && s.objects[i].Contains(x, y) {
			return s.objects[i]
		}
	}
	return nil
}

// Groups returns every group in the scene, nested groups before the group
// holding them.
func (s *Scene) Groups() []*Group {
	var out []*Group
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.group == nil {
			return
		}
		for _, c := range n.group.children {
			walk(c)
		}
		out = append(out, n.group)
	}
	for _, n := range s.objects {
		walk(n)
	}
	return out
}

// UniqueName returns base, or base followed by the first free number.
func (s *Scene) UniqueName(base string) string {
	return uniqueName(base, func(name string) bool { return s.Object(name) != nil })
}

// AddObject takes ownership of n. A clashing name is made unique.
func (s *Scene) AddObject(n *Node) {
	if n == nil || !n.alive || slices.Contains(s.objects, n) {
		return
	}
	if prev := n.Parent(); prev != nil {
		prev.RemoveChild(n, false)
	}
	switch {
	case n.name == "":
		n.SetName(s.UniqueName(string(n.kind)))
	case s.Object(n.name) != nil:
		n.SetName(s.UniqueName(n.name))
	}
	n.parent = s
	s.objects = append(s.objects, n)
	s.conns[n.id] = n.destroyed.connect(func(n *Node) { s.RemoveObject(n, false) })
}

// NewObject creates an object of the given kind and adds it.
func (s *Scene) NewObject(kind domain.Kind, name string) *Node {
	n := s.reg.NewObject(kind, s.UniqueName(name))
	s.AddObject(n)
	return n
}

// Instantiate clones a library resource into the scene.
func (s *Scene) Instantiate(resource string, overrides domain.Description) (*Node, error) {
	n, err := s.reg.library.Instantiate(resource, overrides)
	if err != nil {
		return nil, err
	}
	s.AddObject(n)
	return n, nil
}

// RemoveObject drops n from the scene, destroying it when del is set.
func (s *Scene) RemoveObject(n *Node, del bool) {
	i := slices.Index(s.objects, n)
	if i < 0 {
		return
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	if disconnect, ok := s.conns[n.id]; ok {
		disconnect()
		delete(s.conns, n.id)
	}
	if n.parent == s {
		n.parent = nil
	}
	if del {
		n.Destroy()
	}
}

// Layout refits and re-aligns every group, innermost first, and returns how
// many groups were laid out.
func (s *Scene) Layout() int {
	groups := s.Groups()
	for _, g := range groups {
		g.AdaptLayout()
		g.Align()
	}
	return len(groups)
}

// Describe serializes the scene and its objects.
func (s *Scene) Describe() domain.Description {
	objects := make([]any, len(s.objects))
	for i, n := range s.objects {
		objects[i] = map[string]any(n.Describe())
	}
	return domain.Description{
		"name":    s.name,
		"width":   s.width,
		"height":  s.height,
		"objects": objects,
	}
}

// Load replaces the scene's objects with the ones described. Objects that
// cannot be built are skipped.
func (s *Scene) Load(desc domain.Description) {
	if name := desc.Name(); name != "" {
		s.name = name
	}
	if w, ok := desc.Int("width"); ok {
		s.width = max(w, 0)
	}
	if h, ok := desc.Int("height"); ok {
		s.height = max(h, 0)
	}
	objects, ok := desc.List("objects")
	if !ok {
		return
	}
	s.Clear()
	for _, od := range objects {
		n := s.reg.CreateObject(od)
		if n == nil {
			s.reg.logger.Debug("skipped object", "scene", s.name, "object", od.Name())
			continue
		}
		s.AddObject(n)
	}
}

// Clear destroys every object.
func (s *Scene) Clear() {
	for _, n := range s.Objects() {
		s.RemoveObject(n, true)
	}
}
