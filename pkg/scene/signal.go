package scene

// slot is one registered listener.
type slot[T any] struct {
	key  string
	fn   func(T)
	dead bool
}

// signal is an ordered, synchronous observer list. Listeners run in
// registration order; a listener disconnected during an emit is skipped.
type signal[T any] struct {
	slots []*slot[T]
}

// connect registers fn and returns a function that removes it.
func (s *signal[T]) connect(fn func(T)) func() {
	return s.connectKey("", fn)
}

// connectUnique registers fn under key unless a live listener already uses
// that key. Either way the returned function disconnects the keyed listener.
func (s *signal[T]) connectUnique(key string, fn func(T)) func() {
	for _, sl := range s.slots {
		if !sl.dead && sl.key == key {
			return s.disconnector(sl)
		}
	}
	return s.connectKey(key, fn)
}

func (s *signal[T]) connectKey(key string, fn func(T)) func() {
	sl := &slot[T]{key: key, fn: fn}
	s.slots = append(s.slots, sl)
	return s.disconnector(sl)
}

func (s *signal[T]) disconnector(sl *slot[T]) func() {
	return func() {
		if sl.dead {
			return
		}
		sl.dead = true
		s.compact()
	}
}

// disconnectKey removes every listener registered under key.
func (s *signal[T]) disconnectKey(key string) {
	for _, sl := range s.slots {
		if sl.key == key {
			sl.dead = true
		}
	}
	s.compact()
}

func (s *signal[T]) compact() {
	live := s.slots[:0:0]
	for _, sl := range s.slots {
		if !sl.dead {
			live = append(live, sl)
		}
	}
	s.slots = live
}

// reset drops every listener.
func (s *signal[T]) reset() {
	for _, sl := range s.slots {
		sl.dead = true
	}
	s.slots = nil
}

func (s *signal[T]) len() int {
	return len(s.slots)
}

func (s *signal[T]) emit(v T) {
	snapshot := append([]*slot[T](nil), s.slots...)
	for _, sl := range snapshot {
		if !sl.dead {
			sl.fn(v)
		}
	}
}
