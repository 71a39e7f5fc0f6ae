package validator

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/aretw0/tableau/pkg/registry"
	"github.com/aretw0/tableau/pkg/schema"
)

// objectSchema lists the scene object keys with a checkable shape.
var objectSchema = schema.Schema{
	"name":              schema.String(),
	"type":              schema.Kind(),
	"resource":          schema.String(),
	"x":                 schema.Range(schema.Int(), 0, 1<<20),
	"y":                 schema.Range(schema.Int(), 0, 1<<20),
	"width":             schema.Size(),
	"height":            schema.Size(),
	"opacity":           schema.Range(schema.Int(), 0, 255),
	"backgroundOpacity": schema.Range(schema.Int(), 0, 255),
	"backgroundColor":   schema.Color(),
	"borderColor":       schema.Color(),
	"borderWidth":       schema.Range(schema.Int(), 0, 1<<16),
	"cornerRadius":      schema.Range(schema.Int(), 0, 1<<16),
	"visible":           schema.Bool(),
	"sync":              schema.Bool(),
}

// groupSchema adds the keys only groups carry.
var groupSchema = schema.Merge(objectSchema, schema.Schema{
	"objectsSynced":           schema.Bool(),
	"alignEnabled":            schema.Bool(),
	"resizeToContentsEnabled": schema.Bool(),
	"spacing":                 schema.Range(schema.Int(), 0, 1<<16),
})

var sceneSchema = schema.Schema{
	"name":   schema.String(),
	"width":  schema.Size(),
	"height": schema.Size(),
}

// Validator checks stored documents before they are opened.
type Validator struct {
	factory ports.ActionFactory
}

// Option configures a Validator.
type Option func(*Validator)

// WithFactory checks actions against f instead of a strict built-in catalog.
func WithFactory(f ports.ActionFactory) Option {
	return func(v *Validator) {
		if f != nil {
			v.factory = f
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{factory: registry.NewCatalog(registry.WithStrict(true))}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate reports every problem in doc as a *schema.AggregateError:
// malformed fields, duplicate names, dangling resource references and
// actions the factory cannot build.
func Validate(doc *domain.Document) error {
	return New().Validate(doc)
}

// Validate checks doc. See the package-level Validate.
func (v *Validator) Validate(doc *domain.Document) error {
	var c schema.Collector
	if doc == nil {
		c.Failf("document", "missing")
		return c.Err()
	}

	resources := make(map[string]bool)
	for i, rd := range doc.Resources {
		name := rd.Name()
		path := fmt.Sprintf("resources[%s]", label(name, i))
		if name == "" {
			c.Failf(path, "resource without name")
		} else if resources[name] {
			c.Failf(path, "duplicate resource name %q", name)
		}
		resources[name] = true
		if rd.Has("resource") {
			c.Failf(path, "a resource cannot itself be a clone")
		}
		v.object(&c, path, rd, nil)
	}

	scenes := make(map[string]bool)
	for i, sd := range doc.Scenes {
		name := sd.Name()
		path := fmt.Sprintf("scenes[%s]", label(name, i))
		c.Add(schema.ValidateAt(path, sceneSchema, sd, "name"))
		if name != "" && scenes[name] {
			c.Failf(path, "duplicate scene name %q", name)
		}
		scenes[name] = true
		v.children(&c, path, sd, resources)
	}

	return c.Err()
}

// children checks the "objects" list of a scene or group.
func (v *Validator) children(c *schema.Collector, path string, parent domain.Description, resources map[string]bool) {
	objects, ok := parent.List("objects")
	if !ok {
		if parent.Has("objects") {
			c.Failf(path, "objects must be a list")
		}
		return
	}
	seen := make(map[string]bool)
	for i, od := range objects {
		name := od.Name()
		child := fmt.Sprintf("%s.objects[%s]", path, label(name, i))
		if name != "" {
			if seen[name] {
				c.Failf(child, "duplicate object name %q", name)
			}
			seen[name] = true
		}
		v.object(c, child, od, resources)
	}
}

// object checks one object description. resources is nil while checking the
// library itself, where references are resolved lazily.
func (v *Validator) object(c *schema.Collector, path string, od domain.Description, resources map[string]bool) {
	res, hasRes := od.String("resource")
	switch {
	case hasRes && resources != nil && !resources[res]:
		c.Failf(path, "unknown resource %q", res)
	case !hasRes && !od.Has("type"):
		c.Failf(path, "object needs a type or a resource")
	}

	s := objectSchema
	if od.Kind().IsGroup() || od.Has("objects") {
		s = groupSchema
	}
	c.Add(schema.ValidateAt(path, s, od))

	for _, ch := range domain.Channels {
		actions, ok := od.List(ch.Key())
		if !ok {
			continue
		}
		for i, ad := range actions {
			if _, err := v.factory.NewAction(ad); err != nil {
				c.Add(&schema.ValidationError{
					Path:   fmt.Sprintf("%s.%s[%d]", path, ch.Key(), i),
					Reason: err.Error(),
				})
			}
		}
	}

	if od.Has("objects") {
		v.children(c, path, od, resources)
	}
}

func label(name string, index int) string {
	if name == "" {
		return fmt.Sprint(index)
	}
	return name
}
