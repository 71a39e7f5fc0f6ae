package scene

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/domain"
)

// Project is a loaded document: its registry, resource library and scenes.
type Project struct {
	ID     string
	Name   string
	Width  int
	Height int

	reg    *Registry
	scenes []*Scene
}

// NewProject creates an empty project.
func NewProject(id, name string, width, height int, opts ...Option) *Project {
	return &Project{
		ID:     id,
		Name:   name,
		Width:  width,
		Height: height,
		reg:    NewRegistry(opts...),
	}
}

// Open builds a project from a stored document. Resources load before
// scenes so that scene objects can refer to them.
func Open(doc *domain.Document, opts ...Option) (*Project, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to open document: %w", domain.ErrInvalidDescription)
	}
	p := NewProject(doc.ID, doc.Name, doc.Width, doc.Height, opts...)
	if err := p.reg.library.Load(doc.Resources); err != nil {
		return nil, fmt.Errorf("failed to load resources of %q: %w", doc.ID, err)
	}
	for i, sd := range doc.Scenes {
		name := sd.Name()
		if name == "" {
			return nil, fmt.Errorf("failed to load scene %d of %q: missing name: %w", i, doc.ID, domain.ErrInvalidDescription)
		}
		if p.Scene(name) != nil {
			return nil, fmt.Errorf("failed to load scene %q: %w", name, domain.ErrNameTaken)
		}
		s := p.reg.NewScene(name, doc.Width, doc.Height)
		s.Load(sd)
		p.scenes = append(p.scenes, s)
	}
	return p, nil
}

// Registry returns the project's arena.
func (p *Project) Registry() *Registry { return p.reg }

// Library returns the project's resources.
func (p *Project) Library() *Library { return p.reg.library }

// Scenes returns the scenes in order.
func (p *Project) Scenes() []*Scene {
	return append([]*Scene(nil), p.scenes...)
}

// Scene returns the named scene, or nil.
func (p *Project) Scene(name string) *Scene {
	for _, s := range p.scenes {
		if s.name == name {
			return s
		}
	}
	return nil
}

// AddScene creates a scene sized like the project.
func (p *Project) AddScene(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("failed to add scene: missing name: %w", domain.ErrInvalidDescription)
	}
	if p.Scene(name) != nil {
		return nil, fmt.Errorf("failed to add scene %q: %w", name, domain.ErrNameTaken)
	}
	s := p.reg.NewScene(name, p.Width, p.Height)
	p.scenes = append(p.scenes, s)
	return s, nil
}

// RemoveScene destroys the named scene.
func (p *Project) RemoveScene(name string) bool {
	for i, s := range p.scenes {
		if s.name == name {
			s.Clear()
			p.scenes = append(p.scenes[:i], p.scenes[i+1:]...)
			return true
		}
	}
	return false
}

// Layout re-runs layout in every scene and returns how many groups were
// laid out.
func (p *Project) Layout() int {
	total := 0
	for _, s := range p.scenes {
		total += s.Layout()
	}
	return total
}

// Document serializes the project.
func (p *Project) Document() *domain.Document {
	doc := &domain.Document{
		ID:        p.ID,
		Name:      p.Name,
		Width:     p.Width,
		Height:    p.Height,
		Resources: p.reg.library.Describe(),
	}
	for _, s := range p.scenes {
		doc.Scenes = append(doc.Scenes, s.Describe())
	}
	return doc
}
