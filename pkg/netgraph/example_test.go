package netgraph_test

import (
	"fmt"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

func ExampleStore() {
	s := netgraph.New()
	_, _ = s.AddNode("A", netgraph.White, netgraph.ShapeDot, "")
	_, _ = s.AddNode("B", netgraph.Red, netgraph.ShapeBox, "")
	_ = s.AddLink("A", "B", "path")

	// The link is stored on A but found from either side.
	l, _ := s.Link("B", "A")
	fmt.Println("message:", l.Message)

	_ = s.DeleteNode("A")
	b, _ := s.Node("B")
	fmt.Println("names:", s.NodeNames())
	fmt.Println("links on B:", len(b.Links))
	// Output:
	// message: path
	// names: [B]
	// links on B: 0
}

func ExampleStore_AddLink_duplicate() {
	s := netgraph.New()
	_, _ = s.AddNode("A", netgraph.White, netgraph.ShapeDot, "")
	_, _ = s.AddNode("B", netgraph.White, netgraph.ShapeDot, "")
	_ = s.AddLink("A", "B", "")

	err := s.AddLink("B", "A", "")
	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// DUPLICATE_LINK
	// a link between 'B' and 'A' already exists
}

func ExampleStore_Edges() {
	s := netgraph.New()
	_, _ = s.AddNode("Firelink", netgraph.Gold, netgraph.ShapeStar, "")
	_, _ = s.AddNode("Undead Burg", netgraph.Silver, netgraph.ShapeBox, "")
	_ = s.AddLink("Firelink", "Undead Burg", "aqueduct")
	_ = s.RenameNode("Undead Burg", "Burg")

	for _, e := range s.Edges() {
		fmt.Printf("%s -- %s (%s)\n", e.From, e.To, e.Message)
	}
	// Output:
	// Firelink -- Burg (aqueduct)
}
