package dsl

import (
	"github.com/aretw0/tableau/pkg/domain"
)

// ObjectBuilder provides a fluent API for configuring a scene object,
// a resource or a group.
type ObjectBuilder struct {
	desc     domain.Description
	actions  map[domain.Channel][]domain.Description
	children []*ObjectBuilder
}

func newObject(name string, kind domain.Kind) *ObjectBuilder {
	return &ObjectBuilder{
		desc:    domain.Description{"name": name, "type": string(kind)},
		actions: make(map[domain.Channel][]domain.Description),
	}
}

func (o *ObjectBuilder) name() string { return o.desc.Name() }

// From makes the object a clone of the named library resource. Keys set on
// the builder override the resource's.
func (o *ObjectBuilder) From(resource string) *ObjectBuilder {
	o.desc["resource"] = resource
	return o
}

// At sets the position. Children of a group use absolute coordinates.
func (o *ObjectBuilder) At(x, y int) *ObjectBuilder {
	o.desc["x"] = x
	o.desc["y"] = y
	return o
}

// Size sets an absolute size.
func (o *ObjectBuilder) Size(width, height int) *ObjectBuilder {
	o.desc["width"] = width
	o.desc["height"] = height
	return o
}

// PercentSize sizes the object relative to its parent's content size.
func (o *ObjectBuilder) PercentSize(width, height int) *ObjectBuilder {
	o.desc["width"] = domain.Size{Value: width, Percent: true}.Encode()
	o.desc["height"] = domain.Size{Value: height, Percent: true}.Encode()
	return o
}

// Hidden marks the object invisible.
func (o *ObjectBuilder) Hidden() *ObjectBuilder {
	o.desc["visible"] = false
	return o
}

// Synced sets whether a clone follows its resource.
func (o *ObjectBuilder) Synced(synced bool) *ObjectBuilder {
	o.desc["sync"] = synced
	return o
}

// Background sets the background colour.
func (o *ObjectBuilder) Background(c domain.Color) *ObjectBuilder {
	o.desc["backgroundColor"] = c.Values()
	return o
}

// Set writes any other description key.
func (o *ObjectBuilder) Set(key string, value any) *ObjectBuilder {
	o.desc[key] = value
	return o
}

// On appends actions to a pointer channel.
func (o *ObjectBuilder) On(ch domain.Channel, actions ...domain.Description) *ObjectBuilder {
	o.actions[ch] = append(o.actions[ch], actions...)
	return o
}

// ObjectsSynced turns action and data mirroring between a group's children
// on or off.
func (o *ObjectBuilder) ObjectsSynced(synced bool) *ObjectBuilder {
	o.desc["objectsSynced"] = synced
	return o
}

// Align turns a group's automatic alignment on or off.
func (o *ObjectBuilder) Align(enabled bool) *ObjectBuilder {
	o.desc["alignEnabled"] = enabled
	return o
}

// Child adds a child to a group, or returns the existing one.
func (o *ObjectBuilder) Child(name string, kind domain.Kind) *ObjectBuilder {
	for _, c := range o.children {
		if c.name() == name {
			return c
		}
	}
	c := newObject(name, kind)
	o.children = append(o.children, c)
	return c
}

// Describe returns the object description.
func (o *ObjectBuilder) Describe() domain.Description {
	d := o.desc.Clone()
	for _, ch := range domain.Channels {
		list := o.actions[ch]
		if len(list) == 0 {
			continue
		}
		items := make([]any, len(list))
		for i, a := range list {
			items[i] = map[string]any(a.Clone())
		}
		d[ch.Key()] = items
	}
	if len(o.children) > 0 {
		objects := make([]any, len(o.children))
		for i, c := range o.children {
			objects[i] = map[string]any(c.Describe())
		}
		d["objects"] = objects
	}
	return d
}
