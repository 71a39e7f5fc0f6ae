package scene

import (
	"slices"

	"github.com/aretw0/tableau/pkg/domain"
)

// eventActions maps each channel to its ordered action list.
type eventActions struct {
	lists [3][]*Action
}

func (e *eventActions) valid(ch domain.Channel) bool {
	return ch >= 0 && int(ch) < len(e.lists)
}

func (e *eventActions) list(ch domain.Channel) []*Action {
	if !e.valid(ch) {
		return nil
	}
	return e.lists[ch]
}

func (e *eventActions) len(ch domain.Channel) int {
	return len(e.list(ch))
}

func (e *eventActions) at(ch domain.Channel, index int) *Action {
	l := e.list(ch)
	if index < 0 || index >= len(l) {
		return nil
	}
	return l[index]
}

func (e *eventActions) indexOf(ch domain.Channel, a *Action) int {
	if a == nil {
		return -1
	}
	return slices.Index(e.list(ch), a)
}

// insert places a at index clamped to [0, len] and returns the final index.
func (e *eventActions) insert(ch domain.Channel, index int, a *Action) int {
	if !e.valid(ch) {
		return -1
	}
	l := e.lists[ch]
	index = min(max(index, 0), len(l))
	e.lists[ch] = slices.Insert(l, index, a)
	return index
}

// removeAt takes the action at index. Out of range is a no-op.
func (e *eventActions) removeAt(ch domain.Channel, index int) *Action {
	l := e.list(ch)
	if index < 0 || index >= len(l) {
		return nil
	}
	a := l[index]
	e.lists[ch] = slices.Delete(l, index, index+1)
	return a
}

// move relocates the action at from to to, clamped to the list bounds.
func (e *eventActions) move(ch domain.Channel, from, to int) int {
	l := e.list(ch)
	if from < 0 || from >= len(l) {
		return -1
	}
	to = min(max(to, 0), len(l)-1)
	if to == from {
		return to
	}
	a := l[from]
	l = slices.Delete(l, from, from+1)
	e.lists[ch] = slices.Insert(l, to, a)
	return to
}

// replace swaps the whole list, returning the previous entries.
func (e *eventActions) replace(ch domain.Channel, actions []*Action) []*Action {
	if !e.valid(ch) {
		return nil
	}
	prev := e.lists[ch]
	e.lists[ch] = actions
	return prev
}

func (e *eventActions) all() []*Action {
	var out []*Action
	for _, l := range e.lists {
		out = append(out, l...)
	}
	return out
}
