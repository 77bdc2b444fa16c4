package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

func sequentialIDs() netgraph.Option {
	next := 0
	return netgraph.WithIDGenerator(func() string {
		next++
		return "n" + strconv.Itoa(next)
	})
}

func sampleStore(t *testing.T) *netgraph.Store {
	t.Helper()
	s := netgraph.New(sequentialIDs())
	for _, n := range []struct {
		name   string
		colour netgraph.Colour
		shape  netgraph.Shape
		notes  string
	}{
		{"B", netgraph.Red, netgraph.ShapeBox, ""},
		{"A", netgraph.White, netgraph.ShapeDot, "start here"},
		{"C", netgraph.Navy, netgraph.ShapeDatabase, ""},
	} {
		if _, err := s.AddNode(n.name, n.colour, n.shape, n.notes); err != nil {
			t.Fatal(err)
		}
	}
	for _, l := range [][3]string{{"A", "B", "path"}, {"A", "C", ""}, {"C", "B", "back"}} {
		if err := s.AddLink(l[0], l[1], l[2]); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	s := sampleStore(t)

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	again, err := Marshal(got)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("round trip changed the document:\n%s\nvs\n%s", data, again)
	}

	a, _ := got.Node("A")
	if a.ID != "n2" || a.Notes != "start here" || len(a.Links) != 2 {
		t.Errorf("A = %+v", a)
	}
	if l, err := got.Link("B", "A"); err != nil || l.Message != "path" {
		t.Errorf("Link(B, A) = %v, %v", l, err)
	}
}

func TestMarshalSortsByName(t *testing.T) {
	data, err := Marshal(sampleStore(t))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	ia := strings.Index(text, `"name": "A"`)
	ib := strings.Index(text, `"name": "B"`)
	ic := strings.Index(text, `"name": "C"`)
	if ia < 0 || ia > ib || ib > ic {
		t.Errorf("nodes not sorted by name:\n%s", text)
	}
	if !strings.Contains(text, `"version": 1`) {
		t.Error("missing version")
	}
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal(netgraph.New())
	if err != nil {
		t.Fatal(err)
	}
	s, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	doc := `{"nodes": [
		{"id": "1", "name": "A", "links": [{"to": "2"}]},
		{"id": "2", "name": "B", "colour": "Gold"}
	]}`

	s, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	a, _ := s.Node("A")
	if a.Colour != netgraph.White || a.Shape != netgraph.ShapeDot || a.Notes != "" {
		t.Errorf("A = %+v, want defaults", a)
	}
	b, _ := s.Node("B")
	if b.Colour != netgraph.Gold || b.Links == nil || len(b.Links) != 0 {
		t.Errorf("B = %+v", b)
	}
	if l, err := s.Link("B", "A"); err != nil || l.Message != "" {
		t.Errorf("Link(B, A) = %v, %v", l, err)
	}
}

func TestUnmarshalCorrupt(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"nodes": [`},
		{"trailing garbage", `{"version": 1, "nodes": []} this is not json`},
		{"second document", `{"version": 1, "nodes": []} {"version": 1}`},
		{"not an object", `[]`},
		{"future version", `{"version": 2, "nodes": []}`},
		{"negative version", `{"version": -1, "nodes": []}`},
		{"duplicate name", `{"nodes": [{"id": "1", "name": "A"}, {"id": "2", "name": "A"}]}`},
		{"duplicate id", `{"nodes": [{"id": "1", "name": "A"}, {"id": "1", "name": "B"}]}`},
		{"missing id", `{"nodes": [{"name": "A"}]}`},
		{"unknown colour", `{"nodes": [{"id": "1", "name": "A", "colour": "white"}]}`},
		{"unknown shape", `{"nodes": [{"id": "1", "name": "A", "shape": "blob"}]}`},
		{"dangling link", `{"nodes": [{"id": "1", "name": "A", "links": [{"to": "9"}]}]}`},
		{"duplicate link", `{"nodes": [
			{"id": "1", "name": "A", "links": [{"to": "2"}]},
			{"id": "2", "name": "B", "links": [{"to": "1"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc))
			if !errors.Is(err, errors.ErrCodeCorruptData) {
				t.Errorf("Unmarshal() error = %v, want CORRUPT_DATA", err)
			}
		})
	}
}

func TestReadWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleStore(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	s, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteFile(path, sampleStore(t)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	s, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if names := s.NodeNames(); strings.Join(names, ",") != "A,B,C" {
		t.Errorf("NodeNames() = %v", names)
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: error = %v, want FILE_NOT_FOUND", err)
	}

	_, err = ReadFile("")
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path: error = %v, want INVALID_PATH", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(bad)
	if !errors.Is(err, errors.ErrCodeCorruptData) {
		t.Errorf("bad file: error = %v, want CORRUPT_DATA", err)
	}
}

func TestReadOfficeExample(t *testing.T) {
	s, err := ReadFile(filepath.Join("..", "..", "examples", "office", "graph.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if s.Len() != 5 || len(s.Edges()) != 4 {
		t.Errorf("office graph has %d nodes and %d edges, want 5 and 4", s.Len(), len(s.Edges()))
	}
	if _, err := s.Link("ISP", "Router"); err != nil {
		t.Errorf("Link(ISP, Router): %v", err)
	}
}

func TestImportOfficeCSV(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "office")
	areas, err := os.Open(filepath.Join(dir, "areas.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer areas.Close()
	network, err := os.Open(filepath.Join(dir, "network.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer network.Close()

	s, skipped, err := ImportCSV(areas, network)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if s.Len() != 5 || len(s.Edges()) != 4 {
		t.Errorf("imported %d nodes and %d edges, want 5 and 4", s.Len(), len(s.Edges()))
	}
}
