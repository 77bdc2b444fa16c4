package io

import (
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

const areasCSV = `Area, Colour, Shape
DEFAULT, Silver, box
Firelink Shrine, Gold, star
Depths, maroon, database
`

const networkCSV = `From, To, Gate Info
Firelink Shrine, Undead Burg, aqueduct
Undead Burg, Depths, sewer key
Depths, Undead Burg, same gate again
Firelink Shrine, Firelink Shrine, bonfire warp
`

func TestImportCSV(t *testing.T) {
	s, skipped, err := ImportCSV(strings.NewReader(areasCSV), strings.NewReader(networkCSV))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}

	tests := []struct {
		name   string
		colour netgraph.Colour
		shape  netgraph.Shape
	}{
		{"Firelink Shrine", netgraph.Gold, netgraph.ShapeStar},
		{"Depths", netgraph.Maroon, netgraph.ShapeDatabase},
		{"Undead Burg", netgraph.Silver, netgraph.ShapeBox},
	}
	for _, tt := range tests {
		n, err := s.Node(tt.name)
		if err != nil {
			t.Errorf("Node(%q): %v", tt.name, err)
			continue
		}
		if n.Colour != tt.colour || n.Shape != tt.shape {
			t.Errorf("%s = %s/%s, want %s/%s", tt.name, n.Colour, n.Shape, tt.colour, tt.shape)
		}
	}

	if l, err := s.Link("Depths", "Undead Burg"); err != nil || l.Message != "sewer key" {
		t.Errorf("Link() = %v, %v; want the first row's message", l, err)
	}
	if _, err := s.Link("Firelink Shrine", "Firelink Shrine"); err != nil {
		t.Errorf("self link: %v", err)
	}
}

func TestImportCSVWithoutDefaultRow(t *testing.T) {
	areas := "Area,Colour,Shape\n"
	network := "From,To,Gate Info\nA,B,\n"
	s, _, err := ImportCSV(strings.NewReader(areas), strings.NewReader(network))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	a, _ := s.Node("A")
	if a.Colour != netgraph.DefaultColour || a.Shape != netgraph.DefaultShape {
		t.Errorf("A = %+v, want default style", a)
	}
}

func TestImportCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		areas   string
		network string
	}{
		{"empty areas", "", "From,To,Gate Info\n"},
		{"missing column", "Area,Colour\nX,White\n", "From,To,Gate Info\n"},
		{"bad colour", "Area,Colour,Shape\nX,Beige,dot\n", "From,To,Gate Info\n"},
		{"bad shape", "Area,Colour,Shape\nX,White,blob\n", "From,To,Gate Info\n"},
		{"missing network column", "Area,Colour,Shape\n", "From,Gate Info\n"},
		{"empty node name", "Area,Colour,Shape\n", "From,To,Gate Info\n,B,x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ImportCSV(strings.NewReader(tt.areas), strings.NewReader(tt.network))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}
