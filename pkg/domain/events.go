package domain

// ChangeEvent is emitted by a scene entity whenever a setter changes observable
// state. Value and Previous use description encoding so a listener can feed
// them straight back into a Load.
type ChangeEvent struct {
	Key      string
	Value    any
	Previous any
}

// Description returns the event in the {key: value, previousValue: prev} shape.
func (e ChangeEvent) Description() Description {
	d := Description{e.Key: e.Value}
	if e.Previous != nil {
		d["previousValue"] = e.Previous
	}
	return d
}

// Compound change keys. Their events carry several description fields in a
// single map value so a multi-field setter notifies once.
const (
	ChangePosition = "position"
	ChangeSize     = "size"
	ChangeStyle    = "style"
)

// Data returns the description fields carried by the event, expanding
// compound keys into their members.
func (e ChangeEvent) Data() Description {
	switch e.Key {
	case ChangePosition, ChangeSize, ChangeStyle:
		if m, ok := e.Value.(map[string]any); ok {
			return Description(m).Clone()
		}
	}
	return Description{e.Key: e.Value}
}

// PropagationOp names the structural edit being fanned out.
type PropagationOp string

const (
	OpInsert PropagationOp = "insert"
	OpRemove PropagationOp = "remove"
	OpMove   PropagationOp = "move"
)

// PropagationEvent describes one completed group fan-out.
type PropagationEvent struct {
	Group      string
	Op         PropagationOp
	Channel    Channel
	ChildIndex int
	// Affected is the number of sibling children that received the edit.
	Affected int
	// Replayed is true when the edit arrived from a resource or clone group.
	Replayed bool
}

// LayoutEvent describes one completed alignment pass.
type LayoutEvent struct {
	Group    string
	Children int
	Spacing  int
	Bounds   Rect
}

// ResourceEvent describes a resource teardown.
type ResourceEvent struct {
	Resource string
	Clones   int
}

// Hooks defines optional callbacks for observing the scene core.
type Hooks struct {
	OnPropagate         func(*PropagationEvent)
	OnLayout            func(*LayoutEvent)
	OnResourceDestroyed func(*ResourceEvent)
}

// CombineHooks returns hooks that call each of the given hooks in order.
func CombineHooks(hooks ...Hooks) Hooks {
	var out Hooks
	for _, h := range hooks {
		if f := h.OnPropagate; f != nil {
			prev := out.OnPropagate
			out.OnPropagate = func(e *PropagationEvent) {
				if prev != nil {
					prev(e)
				}
				f(e)
			}
		}
		if f := h.OnLayout; f != nil {
			prev := out.OnLayout
			out.OnLayout = func(e *LayoutEvent) {
				if prev != nil {
					prev(e)
				}
				f(e)
			}
		}
		if f := h.OnResourceDestroyed; f != nil {
			prev := out.OnResourceDestroyed
			out.OnResourceDestroyed = func(e *ResourceEvent) {
				if prev != nil {
					prev(e)
				}
				f(e)
			}
		}
	}
	return out
}
