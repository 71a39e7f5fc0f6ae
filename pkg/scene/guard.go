package scene

// guard marks a re-entrancy scope. A scope can only be entered once at a
// time; nested attempts are refused and the caller drops the work.
type guard struct {
	held bool
}

func (g *guard) active() bool {
	return g.held
}

func (g *guard) tryEnter() bool {
	if g.held {
		return false
	}
	g.held = true
	return true
}

func (g *guard) leave() {
	g.held = false
}

// aligning is the token held while a group lays out its children. Layout
// steps that must only run inside the pass take it as a parameter.
type aligning struct {
	g *guard
}

func (a aligning) end() { a.g.leave() }

// propagating is the token held while a group fans a structural action edit
// out to its children.
type propagating struct {
	g *guard
}

func (p propagating) end() { p.g.leave() }
