package domain

// Channel is a pointer interaction category. Each channel owns an ordered
// list of actions executed in sequence.
type Channel int

const (
	PointerMove Channel = iota
	PointerDown
	PointerUp
)

// Channels lists every channel in a stable order.
var Channels = []Channel{PointerMove, PointerDown, PointerUp}

// Key returns the description key under which the channel's actions are stored.
func (c Channel) Key() string {
	switch c {
	case PointerMove:
		return "onMouseMove"
	case PointerDown:
		return "onMousePress"
	case PointerUp:
		return "onMouseRelease"
	}
	return ""
}

func (c Channel) String() string {
	switch c {
	case PointerMove:
		return "pointer-move"
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	}
	return "unknown"
}

// ChannelForKey maps a description key back to its channel.
func ChannelForKey(key string) (Channel, bool) {
	for _, c := range Channels {
		if c.Key() == key {
			return c, true
		}
	}
	return 0, false
}
