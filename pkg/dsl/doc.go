/*
Package dsl provides a fluent Go builder for tableau project documents.

It is an alternative to hand-written JSON or YAML documents, useful for tests,
examples and generated content.

Example usage:

	b := dsl.New("novel", "My Novel", 800, 600)

	b.Resource("door", domain.KindImage).Size(50, 80)

	intro := b.Scene("intro")
	intro.Object("door1").From("door").At(10, 20).
		On(domain.PointerDown, dsl.Wait(250), dsl.Goto("hallway"))

	menu := intro.Group("menu").ObjectsSynced(true)
	menu.Child("new", domain.KindButton).Size(120, 30)
	menu.Child("load", domain.KindButton).Size(120, 30).At(0, 40)

	project, err := b.Build()
*/
package dsl
