package scene

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/domain"
)

// enterPropagation takes the group's propagation token, or reports that a
// fan-out is already in progress.
func (g *Group) enterPropagation() (propagating, bool) {
	if !g.propGuard.tryEnter() {
		return propagating{}, false
	}
	return propagating{&g.propGuard}, true
}

// followsOwnResource reports whether a was copied from the child's own
// library resource. Every sibling follows its own resource for those, so the
// group does not fan them out.
func followsOwnResource(child *Node, a *Action) bool {
	res := child.Resource()
	if res == nil {
		return false
	}
	src := a.Resource()
	return src != nil && src.OwnedBy(res.id)
}

func (g *Group) onChildActionInserted(child *Node, ev ActionInserted) {
	if ev.Action == nil {
		return
	}
	tok, ok := g.enterPropagation()
	if !ok {
		g.reg.logger.Debug("propagation suppressed", "group", g.name, "op", domain.OpInsert)
		return
	}
	defer tok.end()

	index := g.IndexOf(child)
	if index < 0 {
		return
	}

	var pool *ActionPool
	affected := 0
	if g.objectsSynced && !followsOwnResource(child, ev.Action) {
		var err error
		pool, affected, err = g.fanOutInsert(tok, child, ev)
		if err != nil {
			g.reg.logger.Debug("propagation abandoned", "group", g.name, "child", child.name, "err", err)
			return
		}
	}

	g.objectActionInserted.emit(ObjectActionInserted{
		ChildIndex: index,
		Channel:    ev.Channel,
		Index:      ev.Index,
		Action:     ev.Action,
		Pool:       pool,
	})
	g.reportPropagation(domain.OpInsert, ev.Channel, index, affected, false)
}

// fanOutInsert gives every sibling of child its own copy of the inserted
// action, all linked to a new central action owned by the group. Every copy
// is built before any sibling is touched.
func (g *Group) fanOutInsert(_ propagating, child *Node, ev ActionInserted) (*ActionPool, int, error) {
	central, err := g.reg.copyAction(ev.Action, g.id)
	if err != nil {
		return nil, 0, err
	}

	siblings := make([]*Node, 0, len(g.children)-1)
	for _, c := range g.children {
		if c != child {
			siblings = append(siblings, c)
		}
	}
	copies, err := g.buildCopies(central, siblings)
	if err != nil {
		central.Destroy()
		return nil, 0, err
	}

	pool := g.newPool()
	pool.Add(ev.Action)
	pool.Add(central)
	g.central = append(g.central, central)

	ev.Action.SetResource(central)
	bindSync(&g.objectsSyncChanged, ev.Action)

	g.insertCopies(siblings, copies, ev.Channel, ev.Index, central, pool, true)
	return pool, len(siblings), nil
}

// buildCopies asks the factory for one copy of src per target. On failure
// nothing built so far survives.
func (g *Group) buildCopies(src *Action, targets []*Node) ([]*Action, error) {
	copies := make([]*Action, 0, len(targets))
	for _, t := range targets {
		cp, err := g.reg.copyAction(src, t.id)
		if err != nil {
			for _, built := range copies {
				built.Destroy()
			}
			return nil, fmt.Errorf("failed to copy action for %q: %w", t.name, err)
		}
		copies = append(copies, cp)
	}
	return copies, nil
}

// insertCopies links each copy to res, pools it and inserts it into its
// target. With block set, each target's signals are suppressed for its own
// insert.
func (g *Group) insertCopies(targets []*Node, copies []*Action, ch domain.Channel, index int, res *Action, pool *ActionPool, block bool) {
	for i, t := range targets {
		cp := copies[i]
		cp.SetResource(res)
		bindSync(&g.objectsSyncChanged, cp)
		pool.Add(cp)

		blocked := t.signalsBlocked
		if block {
			t.BlockSignals(true)
		}
		t.InsertAction(ch, index, cp)
		t.BlockSignals(blocked)
	}
}

func (g *Group) onChildActionRemoved(child *Node, ev ActionRemoved) {
	if ev.Action == nil {
		return
	}
	tok, ok := g.enterPropagation()
	if !ok {
		g.reg.logger.Debug("propagation suppressed", "group", g.name, "op", domain.OpRemove)
		return
	}
	defer tok.end()

	index := g.IndexOf(child)
	if index < 0 {
		return
	}

	affected := 0
	if g.objectsSynced {
		if pool := g.poolOf(ev.Action); pool != nil {
			affected = g.removeFromPool(tok, ev.Channel, pool, ev.Delete)
			if res := ev.Action.Resource(); res != nil {
				g.dropCentral(res)
			}
		}
	}

	g.objectActionRemoved.emit(ObjectActionRemoved{
		ChildIndex: index,
		Channel:    ev.Channel,
		Action:     ev.Action,
		Delete:     ev.Delete,
	})
	g.reportPropagation(domain.OpRemove, ev.Channel, index, affected, false)
}

// removeFromPool removes every child's pooled action, each with that child's
// signals blocked. It returns how many children lost an action.
func (g *Group) removeFromPool(_ propagating, ch domain.Channel, pool *ActionPool, del bool) int {
	affected := 0
	for _, c := range g.Children() {
		a := pool.ActionOwnedBy(c.id)
		if a == nil || !c.HasAction(ch, a) {
			continue
		}
		blocked := c.BlockSignals(true)
		c.RemoveAction(ch, a, del)
		c.BlockSignals(blocked)
		affected++
	}
	return affected
}

func (g *Group) onChildActionMoved(child *Node, ev ActionMoved) {
	if ev.Action == nil {
		return
	}
	tok, ok := g.enterPropagation()
	if !ok {
		g.reg.logger.Debug("propagation suppressed", "group", g.name, "op", domain.OpMove)
		return
	}
	defer tok.end()

	index := g.IndexOf(child)
	if index < 0 {
		return
	}

	affected := 0
	if g.objectsSynced {
		if pool := g.poolOf(ev.Action); pool != nil {
			affected = g.moveInPool(tok, ev.Channel, pool, ev.To)
		}
	}

	g.objectActionMoved.emit(ObjectActionMoved{
		ChildIndex: index,
		Channel:    ev.Channel,
		Action:     ev.Action,
		Index:      ev.To,
	})
	g.reportPropagation(domain.OpMove, ev.Channel, index, affected, false)
}

// moveInPool moves every child's pooled action to index. Children already
// there are left alone.
func (g *Group) moveInPool(_ propagating, ch domain.Channel, pool *ActionPool, index int) int {
	affected := 0
	for _, c := range g.Children() {
		a := pool.ActionOwnedBy(c.id)
		if a == nil {
			continue
		}
		from := c.IndexOfAction(ch, a)
		if from < 0 {
			continue
		}
		blocked := c.BlockSignals(true)
		c.MoveAction(ch, a, index)
		c.BlockSignals(blocked)
		if c.IndexOfAction(ch, a) != from {
			affected++
		}
	}
	return affected
}

// onResourceObjectInserted replays an insert made in the resource group.
// With synced children every child gets a copy; otherwise only the child at
// the same index does.
func (g *Group) onResourceObjectInserted(ev ObjectActionInserted) {
	if ev.Action == nil || !g.alive {
		return
	}
	pool := ev.Pool
	if pool.Disposed() {
		pool = nil
	}

	affected := 0
	if g.objectsSynced {
		central, err := g.reg.copyAction(ev.Action, g.id)
		if err != nil {
			g.reg.logger.Debug("replay abandoned", "group", g.name, "err", err)
			return
		}
		targets := g.Children()
		copies, err := g.buildCopies(central, targets)
		if err != nil {
			central.Destroy()
			g.reg.logger.Debug("replay abandoned", "group", g.name, "err", err)
			return
		}
		g.central = append(g.central, central)
		if pool != nil {
			pool.Add(central)
		}
		res := ev.Action.Resource()
		if res == nil {
			res = ev.Action
		}
		central.SetResource(res)
		bindSync(&g.link.syncChanged, central)

		if pool == nil {
			pool = g.newPool()
			pool.Add(central)
		}
		g.insertCopies(targets, copies, ev.Channel, ev.Index, central, pool, true)
		affected = len(targets)
	} else if c := g.Child(ev.ChildIndex); c != nil {
		cp, err := g.reg.copyAction(ev.Action, c.id)
		if err != nil {
			g.reg.logger.Debug("replay abandoned", "group", g.name, "err", err)
			return
		}
		cp.SetResource(ev.Action)
		bindSync(&g.link.syncChanged, cp)
		if pool != nil {
			pool.Add(cp)
		}
		c.InsertAction(ev.Channel, ev.Index, cp)
		affected = 1
	}

	g.adoptPool(pool)
	g.reportPropagation(domain.OpInsert, ev.Channel, ev.ChildIndex, affected, true)
}

// onResourceObjectRemoved replays a removal made in the resource group or
// in a clone group.
func (g *Group) onResourceObjectRemoved(ev ObjectActionRemoved) {
	if ev.Action == nil || !g.alive || g.propGuard.active() {
		return
	}
	c := g.Child(ev.ChildIndex)
	pool := g.poolOf(ev.Action)

	switch {
	case pool != nil && c != nil:
		c.RemoveAction(ev.Channel, pool.ActionOwnedBy(c.id), ev.Delete)
	case pool != nil && g.objectsSynced:
		tok, ok := g.enterPropagation()
		if !ok {
			return
		}
		g.removeFromPool(tok, ev.Channel, pool, ev.Delete)
		tok.end()
	case c != nil:
		c.removeActionSync(ev.Channel, ev.Action, ev.Delete)
	default:
		return
	}
	g.reportPropagation(domain.OpRemove, ev.Channel, ev.ChildIndex, 1, true)
}

// onResourceObjectMoved replays a move made in the resource group or in a
// clone group.
func (g *Group) onResourceObjectMoved(ev ObjectActionMoved) {
	if ev.Action == nil || !g.alive || g.propGuard.active() {
		return
	}
	c := g.Child(ev.ChildIndex)
	pool := g.poolOf(ev.Action)

	switch {
	case pool != nil && c != nil:
		c.MoveAction(ev.Channel, pool.ActionOwnedBy(c.id), ev.Index)
	case pool != nil && g.objectsSynced:
		tok, ok := g.enterPropagation()
		if !ok {
			return
		}
		g.moveInPool(tok, ev.Channel, pool, ev.Index)
		tok.end()
	case c != nil:
		c.moveActionSync(ev.Channel, ev.Action, ev.Index)
	default:
		return
	}
	g.reportPropagation(domain.OpMove, ev.Channel, ev.ChildIndex, 1, true)
}

func (g *Group) reportPropagation(op domain.PropagationOp, ch domain.Channel, index, affected int, replayed bool) {
	if g.reg.hooks.OnPropagate == nil {
		return
	}
	g.reg.hooks.OnPropagate(&domain.PropagationEvent{
		Group:      g.name,
		Op:         op,
		Channel:    ch,
		ChildIndex: index,
		Affected:   affected,
		Replayed:   replayed,
	})
}
