package scene

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/domain"
)

// Action is one story operation attached to a node's channel. The kind
// specific behaviour lives in its body; the scene core only tracks identity,
// ownership and the resource link used to keep copies in step.
type Action struct {
	id    ID
	reg   *Registry
	body  domain.ActionBody
	owner ID
	link  resourceLink
	alive bool

	// released fires whenever the action leaves an owner's list or is
	// destroyed. Pools listen to it to drop their membership.
	released  signal[*Action]
	destroyed signal[*Action]
}

// NewAction builds an action from its description through the registry's
// factory. owner may be zero for an unowned action.
func (r *Registry) NewAction(desc domain.Description, owner ID) (*Action, error) {
	body, err := r.factory.NewAction(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to build action: %w", err)
	}
	return r.WrapAction(body, owner), nil
}

// WrapAction registers an already built body as an action.
func (r *Registry) WrapAction(body domain.ActionBody, owner ID) *Action {
	a := &Action{
		id:    r.allocate(),
		reg:   r,
		body:  body,
		owner: owner,
		alive: true,
	}
	a.link.reg = r
	a.link.synced = true
	r.add(a)
	return a
}

// copyAction builds an independent copy of src owned by owner.
func (r *Registry) copyAction(src *Action, owner ID) (*Action, error) {
	if src == nil {
		return nil, nil
	}
	return r.NewAction(src.Describe(), owner)
}

func (a *Action) ID() ID { return a.id }

func (a *Action) label() string { return a.body.Kind() }

func (a *Action) resourceLink() *resourceLink { return &a.link }

// Kind returns the body's kind name.
func (a *Action) Kind() string { return a.body.Kind() }

// Body returns the kind-specific payload.
func (a *Action) Body() domain.ActionBody { return a.body }

// Describe serializes the action.
func (a *Action) Describe() domain.Description {
	return a.body.Describe().Clone()
}

// Owner returns the handle of the node that created the action.
func (a *Action) Owner() ID { return a.owner }

// OwnedBy reports whether id owns the action.
func (a *Action) OwnedBy(id ID) bool { return id != 0 && a.owner == id }

// Alive reports whether the action has not been destroyed.
func (a *Action) Alive() bool { return a.alive }

// Resource returns the action this one was copied from, or nil.
func (a *Action) Resource() *Action {
	r, _ := a.link.target().(*Action)
	return r
}

// SetResource links the action to a resource action. Passing nil, or an
// action whose own resource chain leads back to a, clears it.
func (a *Action) SetResource(r *Action) {
	if r == nil || !r.alive || a.reg.reaches(r.id, a.id) {
		a.link.resource = 0
		return
	}
	a.link.resource = r.id
}

// IsSynced reports whether edits to the resource should reach this action.
func (a *Action) IsSynced() bool { return a.link.synced }

// SetSynced toggles the synced flag.
func (a *Action) SetSynced(synced bool) { a.link.setSynced(synced) }

// Clones returns every live action whose resource is a.
func (a *Action) Clones() []*Action {
	var out []*Action
	for _, e := range a.reg.clonesOf(a.id) {
		if c, ok := e.(*Action); ok {
			out = append(out, c)
		}
	}
	return out
}

// Destroy releases the action. Clones lose their resource link and every
// pool drops it.
func (a *Action) Destroy() {
	if !a.alive {
		return
	}
	a.alive = false
	a.released.emit(a)
	a.destroyed.emit(a)
	a.reg.release(a)
	a.released.reset()
	a.destroyed.reset()
	a.link.syncChanged.reset()
	a.link.resourceDestroyed.reset()
}

// bindSync makes a follow sig for as long as a is alive.
func bindSync(sig *signal[bool], a *Action) {
	key := fmt.Sprintf("action:%d", a.id)
	disconnect := sig.connectUnique(key, a.SetSynced)
	a.destroyed.connect(func(*Action) { disconnect() })
}
