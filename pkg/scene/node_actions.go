package scene

import "github.com/aretw0/tableau/pkg/domain"

// Actions returns a copy of the channel's ordered action list.
func (n *Node) Actions(ch domain.Channel) []*Action {
	return append([]*Action(nil), n.actions.list(ch)...)
}

// ActionAt returns the action at index, or nil.
func (n *Node) ActionAt(ch domain.Channel, index int) *Action {
	return n.actions.at(ch, index)
}

// IndexOfAction returns the position of a in the channel, or -1.
func (n *Node) IndexOfAction(ch domain.Channel, a *Action) int {
	return n.actions.indexOf(ch, a)
}

// HasAction reports whether a is in the channel's list.
func (n *Node) HasAction(ch domain.Channel, a *Action) bool {
	return n.actions.indexOf(ch, a) >= 0
}

// InsertAction places a in the channel at index, clamped to [0, len].
// A nil action is ignored. An action owned by this node's resource is
// copied first, and the copy links back to it. Unowned actions are adopted.
func (n *Node) InsertAction(ch domain.Channel, index int, a *Action) {
	if a == nil || !a.alive || !n.alive || !n.actions.valid(ch) {
		return
	}

	if res := n.Resource(); res != nil && a.OwnedBy(res.id) {
		cp, err := n.reg.copyAction(a, n.id)
		if err != nil {
			n.reg.logger.Debug("resource action copy failed", "node", n.name, "err", err)
			return
		}
		cp.SetResource(a)
		cp.SetSynced(n.IsSynced())
		bindSync(&n.link.syncChanged, cp)
		a = cp
	}

	if a.owner == 0 {
		a.owner = n.id
	}

	index = n.actions.insert(ch, index, a)
	if !n.signalsBlocked {
		n.actionInserted.emit(ActionInserted{Channel: ch, Index: index, Action: a})
	}
}

// AppendAction inserts a at the end of the channel.
func (n *Node) AppendAction(ch domain.Channel, a *Action) {
	n.InsertAction(ch, n.actions.len(ch), a)
}

// RemoveActionAt removes the action at index. Out of range is a no-op.
// When del is true and the node owns the action, it is destroyed; otherwise
// it only leaves every pool that still lists it.
func (n *Node) RemoveActionAt(ch domain.Channel, index int, del bool) {
	a := n.actions.removeAt(ch, index)
	if a == nil {
		return
	}
	if !n.signalsBlocked {
		n.actionRemoved.emit(ActionRemoved{Channel: ch, Index: index, Action: a, Delete: del})
	}
	if del && a.OwnedBy(n.id) {
		a.Destroy()
		return
	}
	a.released.emit(a)
}

// RemoveAction removes a from the channel if present.
func (n *Node) RemoveAction(ch domain.Channel, a *Action, del bool) {
	if a == nil {
		return
	}
	n.RemoveActionAt(ch, n.actions.indexOf(ch, a), del)
}

// RemoveActions clears a channel without emitting structural events.
func (n *Node) RemoveActions(ch domain.Channel, del bool) {
	for _, a := range n.actions.replace(ch, nil) {
		if del && a.OwnedBy(n.id) {
			a.Destroy()
			continue
		}
		a.released.emit(a)
	}
}

// MoveAction relocates a within the channel. It is observed as one move.
func (n *Node) MoveAction(ch domain.Channel, a *Action, index int) {
	from := n.actions.indexOf(ch, a)
	if from < 0 {
		return
	}
	to := n.actions.move(ch, from, index)
	if to < 0 || to == from {
		return
	}
	if !n.signalsBlocked {
		n.actionMoved.emit(ActionMoved{Channel: ch, From: from, To: to, Action: a})
	}
}

// actionCopyOf finds the action in the channel whose resource is src.
func (n *Node) actionCopyOf(ch domain.Channel, src *Action) *Action {
	if src == nil {
		return nil
	}
	for _, a := range n.actions.list(ch) {
		if a.link.resource == src.id {
			return a
		}
	}
	return nil
}

func (n *Node) onResourceActionInserted(ev ActionInserted) {
	if !n.IsSynced() {
		return
	}
	n.InsertAction(ev.Channel, ev.Index, ev.Action)
}

func (n *Node) onResourceActionRemoved(ev ActionRemoved) {
	if !n.IsSynced() {
		return
	}
	n.RemoveAction(ev.Channel, n.actionCopyOf(ev.Channel, ev.Action), true)
}

func (n *Node) onResourceActionMoved(ev ActionMoved) {
	if !n.IsSynced() {
		return
	}
	n.MoveAction(ev.Channel, n.actionCopyOf(ev.Channel, ev.Action), ev.To)
}

// removeActionSync removes the local copy of a resource action.
func (n *Node) removeActionSync(ch domain.Channel, src *Action, del bool) {
	n.RemoveAction(ch, n.actionCopyOf(ch, src), del)
}

// moveActionSync moves the local copy of a resource action.
func (n *Node) moveActionSync(ch domain.Channel, src *Action, index int) {
	n.MoveAction(ch, n.actionCopyOf(ch, src), index)
}
