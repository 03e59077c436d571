package engine_test

import (
	"context"
	"fmt"

	"github.com/gitrdm/gokanlogic/pkg/fol/engine"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

// ExampleKnowledgeBase tells a universal rule and a fact, then resolves a
// goal that follows from them by refutation.
func ExampleKnowledgeBase() {
	kb := engine.New()
	for _, src := range []string{
		"(forall X (implies (Man X) (Mortal X)))",
		"(Man socrates)",
	} {
		sentence, err := sexpr.Parse(src)
		if err != nil {
			fmt.Println(err)
			return
		}
		if _, err := kb.Tell(sentence); err != nil {
			fmt.Println(err)
			return
		}
	}

	goal, err := sexpr.Parse("(Mortal socrates)")
	if err != nil {
		fmt.Println(err)
		return
	}
	ok, err := kb.Ask(context.Background(), goal)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ok)
	// Output: true
}
