package scene

import "github.com/aretw0/tableau/pkg/domain"

// ActionInserted is emitted by a node after an action was inserted.
type ActionInserted struct {
	Channel domain.Channel
	Index   int
	Action  *Action
}

// ActionRemoved is emitted by a node after an action left one of its lists.
// Delete is true when the caller asked for the action to be destroyed.
type ActionRemoved struct {
	Channel domain.Channel
	Index   int
	Action  *Action
	Delete  bool
}

// ActionMoved is emitted by a node after an action changed position.
type ActionMoved struct {
	Channel domain.Channel
	From    int
	To      int
	Action  *Action
}

// ObjectActionInserted is emitted by a group once per structural insert on
// one of its children. Pool is nil when the group's children are not synced.
type ObjectActionInserted struct {
	ChildIndex int
	Channel    domain.Channel
	Index      int
	Action     *Action
	Pool       *ActionPool
}

// ObjectActionRemoved is emitted by a group once per structural removal on
// one of its children.
type ObjectActionRemoved struct {
	ChildIndex int
	Channel    domain.Channel
	Action     *Action
	Delete     bool
}

// ObjectActionMoved is emitted by a group once per move on one of its children.
type ObjectActionMoved struct {
	ChildIndex int
	Channel    domain.Channel
	Action     *Action
	Index      int
}
