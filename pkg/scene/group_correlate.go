package scene

import (
	"fmt"
	"slices"

	"github.com/aretw0/tableau/pkg/domain"
)

// newPool creates a pool owned by the group and tracks it.
func (g *Group) newPool() *ActionPool {
	p := newActionPool(g.id)
	g.adoptPool(p)
	return p
}

// adoptPool tracks p until it is disposed. Pools of a resource group are
// shared with its clone groups this way.
func (g *Group) adoptPool(p *ActionPool) {
	if p.Disposed() || slices.Contains(g.pools, p) {
		return
	}
	g.pools = append(g.pools, p)
	g.poolConns[p] = p.destroyed.connect(func(p *ActionPool) {
		g.pools = slices.DeleteFunc(g.pools, func(q *ActionPool) bool { return q == p })
		delete(g.poolConns, p)
	})
}

// poolOf returns the live pool holding a, or nil.
func (g *Group) poolOf(a *Action) *ActionPool {
	if a == nil {
		return nil
	}
	for _, p := range g.pools {
		if p.Contains(a) {
			return p
		}
	}
	return nil
}

// createCentral copies a into a new central action owned by the group.
func (g *Group) createCentral(a *Action, pool *ActionPool) *Action {
	central, err := g.reg.copyAction(a, g.id)
	if err != nil || central == nil {
		g.reg.logger.Debug("central action copy failed", "group", g.name, "err", err)
		return nil
	}
	g.central = append(g.central, central)
	if pool != nil {
		pool.Add(central)
	}
	return central
}

// dropCentral destroys a if it is one of the group's central actions.
func (g *Group) dropCentral(a *Action) {
	i := slices.Index(g.central, a)
	if i < 0 {
		return
	}
	g.central = slices.Delete(g.central, i, i+1)
	a.Destroy()
}

// cleanupCentral destroys central actions the group owns that nothing
// links to any more. A pool losing its last member disposes itself.
func (g *Group) cleanupCentral() {
	for i := len(g.central) - 1; i >= 0; i-- {
		a := g.central[i]
		if a.OwnedBy(g.id) && len(a.Clones()) == 0 {
			g.central = slices.Delete(g.central, i, i+1)
			a.Destroy()
		}
	}
}

// prunePools disposes owned pools left holding nothing but the group's own
// central action.
func (g *Group) prunePools() {
	for _, p := range slices.Clone(g.pools) {
		if p.Owner() == g.id && p.Len() == 1 && p.ActionOwnedBy(g.id) != nil {
			p.Dispose()
		}
	}
}

// initChildActions pools every action of the first child so later children
// can be correlated with it.
func (g *Group) initChildActions(child *Node) {
	if !g.objectsSynced {
		return
	}
	for _, ch := range domain.Channels {
		for _, a := range child.actions.list(ch) {
			pool := g.newPool()
			central := g.createCentral(a, pool)
			pool.Add(a)
			if central != nil {
				a.SetResource(central)
				bindSync(&g.objectsSyncChanged, a)
			}
		}
	}
}

// correlateChild links target's actions to the matching actions of source on
// every channel.
func (g *Group) correlateChild(source, target *Node) {
	for _, ch := range domain.Channels {
		g.correlate(ch, source, target)
	}
}

// correlate walks both lists of a channel in step. Matching positions share
// a pool and a resource; the walk stops at the first kind mismatch.
func (g *Group) correlate(ch domain.Channel, source, target *Node) {
	if source == nil || target == nil {
		return
	}
	resourceConnect := source.IsResource() && !target.IsResource()
	src, dst := source.actions.list(ch), target.actions.list(ch)

	for i := 0; i < len(src) && i < len(dst); i++ {
		sa, ta := src[i], dst[i]
		if sa.Kind() != ta.Kind() {
			g.reg.logger.Debug("correlation stopped", "group", g.name, "channel", ch.String(), "index", i)
			break
		}

		var res *Action
		direct := false
		pool, old := g.poolOf(sa), g.poolOf(ta)
		if pool != nil {
			res = pool.ActionOwnedBy(g.id)
			if old != pool {
				if old != nil {
					old.Remove(ta)
				}
				pool.Add(ta)
			}
		}
		if resourceConnect && res == nil {
			direct = true
			if res = sa.Resource(); res == nil {
				res = sa
			}
		}
		if res == nil {
			continue
		}

		ta.SetResource(res)
		ta.SetSynced(sa.IsSynced())
		if direct {
			bindSync(&g.link.syncChanged, ta)
		} else {
			bindSync(&g.objectsSyncChanged, ta)
		}
	}
}

// setResource swaps the resource, detaching from the previous one first.
func (g *Group) setResource(r *Node) {
	g.disconnectResourceGroup()
	g.Node.setResource(r)
	if rg := g.resourceGroup(); rg != nil {
		g.connectToResourceGroup(rg)
	}
}

// connectToResourceGroup subscribes to the resource group's structural
// events and correlates the children's actions with the resource's.
func (g *Group) connectToResourceGroup(rg *Group) {
	g.SetObjectsSynced(rg.objectsSynced)

	g.groupConns = append(g.groupConns,
		rg.objectActionInserted.connect(g.onResourceObjectInserted),
		rg.objectActionRemoved.connectUnique(g.connKey(), g.onResourceObjectRemoved),
		g.objectActionRemoved.connectUnique(rg.connKey(), rg.onResourceObjectRemoved),
		rg.objectActionMoved.connectUnique(g.connKey(), g.onResourceObjectMoved),
		g.objectActionMoved.connectUnique(rg.connKey(), rg.onResourceObjectMoved),
	)

	for _, p := range rg.Pools() {
		g.adoptPool(p)
	}
	for _, a := range rg.CentralActions() {
		if central := g.createCentral(a, rg.poolOf(a)); central != nil {
			central.SetResource(a)
		}
	}

	for i, c := range g.children {
		if rc := rg.Child(i); rc != nil {
			g.correlateChild(rc, c)
		} else if i > 0 {
			g.correlateChild(g.children[i-1], c)
		}
	}

	g.cleanupCentral()
}

func (g *Group) disconnectResourceGroup() {
	for _, disconnect := range g.groupConns {
		disconnect()
	}
	g.groupConns = nil
}

func (g *Group) connKey() string {
	return fmt.Sprintf("group:%d", g.id)
}
