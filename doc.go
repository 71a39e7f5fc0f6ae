/*
Package tableau is the editing core of a visual-novel scene editor: scene
objects, object groups with automatic layout, a resource library of reusable
templates, and the propagation of actions between resources, their clones
and the members of synced groups.

# Concept

A project is a resource library plus a list of scenes. Every scene object
may be a clone of a library resource; a synced clone follows its resource's
data and actions. Groups lay their children out vertically and, when their
objects are synced, replay an action added to one child on every other
child, keeping the copies together in an action pool.

Projects persist as documents (JSON or YAML files, Redis, or memory). The
Engine wires a store, the action catalog, metrics and a workspace that
serializes edits per document.

# Usage

	eng, err := tableau.New("./scenes")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	groups, err := eng.Layout(ctx, "chapter-1")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("laid out", groups, "groups")

# Documents

Documents are easiest to write with the dsl package:

	b := dsl.New("chapter-1", "Chapter 1", 800, 600)
	b.Resource("door", domain.KindImage).Size(50, 80)
	b.Scene("intro").Object("door1").From("door").
		On(domain.PointerDown, dsl.Goto("hallway"))

# Serving

Engine.Handler exposes the documents over HTTP, including a Mermaid graph
of every project and Prometheus metrics when configured with WithMetrics.
The tableau command in cmd/tableau wraps the same operations.
*/
package tableau
