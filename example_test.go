package tableau_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/pkg/adapters/memory"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/dsl"
	"github.com/aretw0/tableau/pkg/schema"
)

// ExampleNew_memory lays out a document held in memory. Both doors are
// clones of the same library resource.
func ExampleNew_memory() {
	b := dsl.New("novel", "Novel", 640, 480)
	b.Resource("door", domain.KindImage).Size(50, 80)
	intro := b.Scene("intro")
	intro.Object("door1").From("door").At(10, 10)
	intro.Object("door2").From("door").At(100, 10)
	menu := intro.Menu("menu").Align(true)
	menu.Child("new", domain.KindButton).Size(100, 20)
	menu.Child("load", domain.KindButton).Size(100, 20)

	ctx := context.Background()
	store := memory.NewStore()
	if err := store.Save(ctx, "novel", b.Document()); err != nil {
		log.Fatal(err)
	}

	eng, err := tableau.New("", tableau.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}

	groups, err := eng.Layout(ctx, "novel")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("groups laid out:", groups)

	p, err := eng.Open(ctx, "novel")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("clones of door:", len(p.Library().Get("door").Clones()))

	// Output:
	// groups laid out: 1
	// clones of door: 2
}

// ExampleEngine_Validate reports a clone of a resource that does not exist.
func ExampleEngine_Validate() {
	b := dsl.New("broken", "Broken", 640, 480)
	b.Scene("intro").Object("door1").From("ghost")

	ctx := context.Background()
	store := memory.NewStore()
	if err := store.Save(ctx, "broken", b.Document()); err != nil {
		log.Fatal(err)
	}

	eng, err := tableau.New("", tableau.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range schema.ValidationErrors(eng.Validate(ctx, "broken")) {
		fmt.Println(e)
	}

	// Output:
	// scenes[intro].objects[door1]: unknown resource "ghost"
}
