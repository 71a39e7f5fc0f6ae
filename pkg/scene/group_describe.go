package scene

import "github.com/aretw0/tableau/pkg/domain"

type groupFields struct {
	ObjectsSynced    *bool `mapstructure:"objectsSynced"`
	ResizeToContents *bool `mapstructure:"resizeToContentsEnabled"`
	AlignEnabled     *bool `mapstructure:"alignEnabled"`
	Spacing          *int  `mapstructure:"spacing"`
}

// Describe serializes the group with its children.
func (g *Group) Describe() domain.Description {
	return g.describe(false)
}

// describe adds child positions relative to the group and the spacing when
// internal is set; that form is used to stamp out clones of a resource.
func (g *Group) describe(internal bool) domain.Description {
	d := g.Node.describeOwn()

	if len(g.children) > 0 {
		objects := make([]any, len(g.children))
		for i, c := range g.children {
			cd := c.Describe()
			if internal {
				cd["relativeX"] = c.X() - g.X()
				cd["relativeY"] = c.Y() - g.Y()
			}
			objects[i] = map[string]any(cd)
		}
		d["objects"] = objects
	}
	if internal {
		d["spacing"] = g.spacing
	}
	d["alignEnabled"] = g.alignEnabled
	d["resizeToContentsEnabled"] = g.resizeToContents
	d["objectsSynced"] = g.objectsSynced

	g.filterResourceData(d)
	return d
}

// Load applies a group description: node keys first, then the group flags,
// the children, forwarded child data and published child rectangles.
func (g *Group) Load(desc domain.Description) {
	if len(desc) == 0 {
		return
	}
	blocked := g.BlockNotifications(true)

	g.Node.load(desc)

	var f groupFields
	if bad := decodeLenient(desc, &f, func() { f = groupFields{} }); len(bad) > 0 {
		g.reg.logger.Debug("ignored malformed keys", "group", g.name, "keys", bad)
	}
	if f.ObjectsSynced != nil {
		g.SetObjectsSynced(*f.ObjectsSynced)
	}
	if f.ResizeToContents != nil {
		g.SetResizeToContents(*f.ResizeToContents)
	}

	if objects, ok := desc.List("objects"); ok {
		g.RemoveAll(true)
		for _, od := range objects {
			if c := g.createChild(od); c != nil {
				g.attach(c)
			}
		}
		g.checkStickyChildren()
		g.updateSpacing()
		g.cleanupCentral()
		g.prunePools()
	}

	object, hasObject := desc.Map("_object")
	if hasObject {
		g.loadForwarded(object)
	}
	if em, ok := desc.Map("editingModeData"); ok {
		g.loadEditingModeData(em)
	}

	if f.AlignEnabled != nil {
		g.SetAlignEnabled(*f.AlignEnabled)
	}
	if f.Spacing != nil {
		g.SetSpacing(*f.Spacing)
	}

	g.BlockNotifications(blocked)
	if hasObject {
		g.notify("_object", map[string]any(object), nil)
	}
}

// createChild builds a child from its description. relativeX and relativeY
// position it against the group's corner.
func (g *Group) createChild(desc domain.Description) *Node {
	c := g.reg.CreateObject(desc)
	if c == nil {
		return nil
	}
	if rx, ok := desc.Int("relativeX"); ok {
		c.SetX(g.X() + rx)
	}
	if ry, ok := desc.Int("relativeY"); ok {
		c.SetY(g.Y() + ry)
	}
	return c
}

// loadForwarded applies a child change forwarded by the resource group.
func (g *Group) loadForwarded(object domain.Description) {
	var target *Node
	if i, ok := object.Int("_index"); ok {
		target = g.Child(i)
		g.loadChild(target, object)
	}
	if g.objectsSynced {
		g.loadOtherChildren(target, object.Without("_index"))
	}
}
