package grid_test

import (
	"fmt"

	"github.com/katalvlaran/crucible/grid"
)

// ExampleParseString decodes a digit grid and reads a few cells back.
func ExampleParseString() {
	g, err := grid.ParseString("241\n321\n325\n")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%dx%d grid, min cost %d\n", g.Width(), g.Height(), g.MinCost())
	cost, _ := g.Cost(g.BottomRight())
	fmt.Println("bottom-right costs", cost)
	// Output:
	// 3x3 grid, min cost 1
	// bottom-right costs 5
}
