package dsl

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/scene"
)

// Builder assembles a project document.
type Builder struct {
	doc       domain.Document
	resources []*ObjectBuilder
	scenes    []*SceneBuilder
}

// New creates a builder for a project of the given size.
func New(id, name string, width, height int) *Builder {
	return &Builder{
		doc: domain.Document{ID: id, Name: name, Width: width, Height: height},
	}
}

// Resource adds a library resource, or returns the existing one.
func (b *Builder) Resource(name string, kind domain.Kind) *ObjectBuilder {
	for _, r := range b.resources {
		if r.name() == name {
			return r
		}
	}
	r := newObject(name, kind)
	b.resources = append(b.resources, r)
	return r
}

// Scene adds a scene, or returns the existing one.
func (b *Builder) Scene(name string) *SceneBuilder {
	for _, s := range b.scenes {
		if s.name == name {
			return s
		}
	}
	s := &SceneBuilder{name: name}
	b.scenes = append(b.scenes, s)
	return s
}

// Document returns the assembled document.
func (b *Builder) Document() *domain.Document {
	doc := b.doc
	doc.Resources = nil
	doc.Scenes = nil
	for _, r := range b.resources {
		doc.Resources = append(doc.Resources, r.Describe())
	}
	for _, s := range b.scenes {
		doc.Scenes = append(doc.Scenes, s.Describe())
	}
	return &doc
}

// Build opens the assembled document as a project.
func (b *Builder) Build(opts ...scene.Option) (*scene.Project, error) {
	p, err := scene.Open(b.Document(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build project %q: %w", b.doc.ID, err)
	}
	return p, nil
}

// SceneBuilder collects the objects of one scene.
type SceneBuilder struct {
	name    string
	size    *[2]int
	objects []*ObjectBuilder
}

// Size overrides the project size for this scene.
func (s *SceneBuilder) Size(width, height int) *SceneBuilder {
	s.size = &[2]int{width, height}
	return s
}

// Object adds a plain object, or returns the existing one.
func (s *SceneBuilder) Object(name string) *ObjectBuilder {
	return s.add(name, domain.KindObject)
}

// Group adds an object group, or returns the existing one.
func (s *SceneBuilder) Group(name string) *ObjectBuilder {
	return s.add(name, domain.KindObjectGroup)
}

// Menu adds a menu group, or returns the existing one.
func (s *SceneBuilder) Menu(name string) *ObjectBuilder {
	return s.add(name, domain.KindMenu)
}

func (s *SceneBuilder) add(name string, kind domain.Kind) *ObjectBuilder {
	for _, o := range s.objects {
		if o.name() == name {
			return o
		}
	}
	o := newObject(name, kind)
	s.objects = append(s.objects, o)
	return o
}

// Describe returns the scene description.
func (s *SceneBuilder) Describe() domain.Description {
	objects := make([]any, len(s.objects))
	for i, o := range s.objects {
		objects[i] = map[string]any(o.Describe())
	}
	d := domain.Description{"name": s.name, "objects": objects}
	if s.size != nil {
		d["width"] = s.size[0]
		d["height"] = s.size[1]
	}
	return d
}
