package scene

import (
	"fmt"
	"sync/atomic"
)

var poolSeq atomic.Uint64

// ActionPool correlates one logical action across every child of a synced
// group, plus the central representative owned by the group itself.
// It holds at most one action per owner.
type ActionPool struct {
	seq      uint64
	owner    ID
	members  map[ID]*Action
	order    []ID
	conns    map[ID]func()
	disposed bool

	destroyed signal[*ActionPool]
}

func newActionPool(owner ID) *ActionPool {
	return &ActionPool{
		seq:     poolSeq.Add(1),
		owner:   owner,
		members: make(map[ID]*Action),
		conns:   make(map[ID]func()),
	}
}

// Owner returns the handle of the group that created the pool.
func (p *ActionPool) Owner() ID { return p.owner }

// Add registers the action under its owner. A previous action for the same
// owner is replaced.
func (p *ActionPool) Add(a *Action) {
	if p == nil || p.disposed || a == nil || !a.alive {
		return
	}
	owner := a.owner
	if prev, ok := p.members[owner]; ok {
		if prev == a {
			return
		}
		p.detach(prev)
	} else {
		p.order = append(p.order, owner)
	}
	p.members[owner] = a
	p.conns[a.id] = a.released.connectUnique(p.key(), func(a *Action) { p.Remove(a) })
}

// Remove drops the action. The pool disposes itself once empty.
func (p *ActionPool) Remove(a *Action) {
	if p == nil || p.disposed || a == nil {
		return
	}
	if cur, ok := p.members[a.owner]; !ok || cur != a {
		return
	}
	p.detach(a)
	delete(p.members, a.owner)
	for i, id := range p.order {
		if id == a.owner {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if len(p.members) == 0 {
		p.Dispose()
	}
}

func (p *ActionPool) detach(a *Action) {
	if disconnect, ok := p.conns[a.id]; ok {
		disconnect()
		delete(p.conns, a.id)
	}
}

// ActionOwnedBy returns the member owned by owner, or nil.
func (p *ActionPool) ActionOwnedBy(owner ID) *Action {
	if p == nil || p.disposed {
		return nil
	}
	return p.members[owner]
}

// Contains reports whether a is a member.
func (p *ActionPool) Contains(a *Action) bool {
	if p == nil || p.disposed || a == nil {
		return false
	}
	return p.members[a.owner] == a
}

// Len returns the number of members.
func (p *ActionPool) Len() int {
	if p == nil || p.disposed {
		return 0
	}
	return len(p.members)
}

// Actions returns the members in insertion order.
func (p *ActionPool) Actions() []*Action {
	if p == nil || p.disposed {
		return nil
	}
	out := make([]*Action, 0, len(p.order))
	for _, owner := range p.order {
		out = append(out, p.members[owner])
	}
	return out
}

// Disposed reports whether the pool has been torn down.
func (p *ActionPool) Disposed() bool {
	return p == nil || p.disposed
}

// Dispose tears the pool down. Holders must treat it as absent afterwards.
func (p *ActionPool) Dispose() {
	if p == nil || p.disposed {
		return
	}
	for _, disconnect := range p.conns {
		disconnect()
	}
	p.disposed = true
	p.members = nil
	p.order = nil
	p.conns = nil
	p.destroyed.emit(p)
	p.destroyed.reset()
}

func (p *ActionPool) key() string {
	return fmt.Sprintf("pool:%d", p.seq)
}
