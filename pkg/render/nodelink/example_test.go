package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/netgraph/pkg/netgraph"
	"github.com/matzehuels/netgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	s := netgraph.New()
	_, _ = s.AddNode("Firelink Shrine", netgraph.Gold, netgraph.ShapeStar, "")
	_, _ = s.AddNode("Undead Burg", netgraph.Silver, netgraph.ShapeBox, "")
	_ = s.AddLink("Firelink Shrine", "Undead Burg", "aqueduct")

	dot := nodelink.ToDOT(s, nodelink.Options{})

	// One undirected edge per link
	fmt.Println(strings.Count(dot, " -- "))
	// Output:
	// 1
}
