package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
	graphio "github.com/matzehuels/netgraph/pkg/io"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// testEnv runs commands against a graph file in a temporary directory.
type testEnv struct {
	dir    string
	graph  string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	prev := stdout
	stdout = io.Discard
	t.Cleanup(func() { stdout = prev })
	env := &testEnv{
		dir:    dir,
		graph:  filepath.Join(dir, "graph.json"),
		config: filepath.Join(dir, "config.toml"),
	}
	env.writeConfig(t, "[cache]\nbackend = \"none\"\n")
	return env
}

func (e *testEnv) writeConfig(t *testing.T, text string) {
	t.Helper()
	if err := os.WriteFile(e.config, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--file", e.graph, "--config", e.config, "--no-render"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func (e *testEnv) load(t *testing.T) *netgraph.Store {
	t.Helper()
	s, err := graphio.ReadFile(e.graph)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return s
}

func TestNodeCommands(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun(t, "node", "add", "Router", "--colour", "blue", "--shape", "box", "--notes", "core")
	env.mustRun(t, "node", "add", "Switch")
	env.mustRun(t, "node", "add", "Printer", "--from", "Switch", "-m", "usb")

	s := env.load(t)
	if got := s.NodeNames(); !slices.Equal(got, []string{"Printer", "Router", "Switch"}) {
		t.Fatalf("NodeNames() = %v", got)
	}
	r, _ := s.Node("Router")
	if r.Colour != netgraph.Blue || r.Shape != netgraph.ShapeBox || r.Notes != "core" {
		t.Errorf("Router = %+v", r)
	}
	sw, _ := s.Node("Switch")
	if sw.Colour != netgraph.DefaultColour || sw.Shape != netgraph.DefaultShape {
		t.Errorf("Switch should use the default style, got %s/%s", sw.Colour, sw.Shape)
	}
	if l, err := s.Link("Printer", "Switch"); err != nil || l.Message != "usb" {
		t.Errorf("Link(Printer, Switch) = %v, %v", l, err)
	}

	// edit keeps attributes without a flag
	env.mustRun(t, "node", "edit", "Router", "--shape", "diamond")
	r, _ = env.load(t).Node("Router")
	if r.Colour != netgraph.Blue || r.Shape != netgraph.ShapeDiamond || r.Notes != "core" {
		t.Errorf("after edit Router = %+v", r)
	}

	env.mustRun(t, "node", "rename", "Router", "Gateway")
	out := env.mustRun(t, "node", "show", "Gateway")
	if !strings.Contains(out, "Gateway") || !strings.Contains(out, "diamond") {
		t.Errorf("node show output = %q", out)
	}

	env.mustRun(t, "node", "delete", "Switch")
	s = env.load(t)
	if s.Contains("Switch") || len(s.Edges()) != 0 {
		t.Errorf("delete should cascade: nodes %v, edges %v", s.NodeNames(), s.Edges())
	}
}

func TestNodeCommandErrors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "node", "add", "A")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"duplicate", []string{"node", "add", "A"}, errors.ErrCodeDuplicateName},
		{"blank name", []string{"node", "add", "  "}, errors.ErrCodeValidation},
		{"bad colour", []string{"node", "add", "B", "--colour", "Mauve"}, errors.ErrCodeValidation},
		{"missing from", []string{"node", "add", "B", "--from", "Nowhere"}, errors.ErrCodeNodeNotFound},
		{"rename missing", []string{"node", "rename", "Z", "Y"}, errors.ErrCodeNodeNotFound},
		{"show missing", []string{"node", "show", "Z"}, errors.ErrCodeNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if got := env.load(t).NodeNames(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("failed commands changed the graph: %v", got)
	}
}

func TestLinkCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "node", "add", "A")
	env.mustRun(t, "node", "add", "B")

	env.mustRun(t, "link", "add", "A", "B", "cable")
	if _, err := env.run(t, "link", "add", "B", "A"); !errors.Is(err, errors.ErrCodeDuplicateLink) {
		t.Errorf("reverse duplicate error = %v, want DUPLICATE_LINK", err)
	}

	env.mustRun(t, "link", "edit", "B", "A", "fibre")
	out := env.mustRun(t, "link", "show", "A", "B")
	if !strings.Contains(out, "fibre") {
		t.Errorf("link show output = %q", out)
	}

	env.mustRun(t, "link", "remove", "B", "A")
	if _, err := env.run(t, "link", "show", "A", "B"); !errors.Is(err, errors.ErrCodeLinkNotFound) {
		t.Errorf("show after remove = %v, want LINK_NOT_FOUND", err)
	}
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "node", "add", "Alpha", "--notes", "first")
	env.mustRun(t, "node", "add", "Beta")
	env.mustRun(t, "link", "add", "Alpha", "Beta", "hop")

	out := env.mustRun(t, "list")
	for _, want := range []string{"Alpha", "Beta", "first", "2 nodes", "1 link"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	out = env.mustRun(t, "list", "--links")
	if !strings.Contains(out, "hop") {
		t.Errorf("list --links output missing message:\n%s", out)
	}
}

func TestImportCommands(t *testing.T) {
	env := newTestEnv(t)
	areas := filepath.Join(env.dir, "areas.csv")
	network := filepath.Join(env.dir, "network.csv")
	pjson := filepath.Join(env.dir, "legacy.json")

	files := map[string]string{
		areas:   "Area,Colour,Shape\nDEFAULT,Silver,dot\nCore,Red,box\n",
		network: "From,To,Gate Info\nCore,Edge1,north\nCore,Edge2,south\nEdge1,Core,again\n",
		pjson:   `{"_nodes": {"X": {"name": "X", "colour": "teal", "shape": "star"}}}`,
	}
	for path, text := range files {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	env.mustRun(t, "import", "csv", areas, network)
	s := env.load(t)
	if s.Len() != 3 || len(s.Edges()) != 2 {
		t.Fatalf("csv import: %d nodes, %d edges", s.Len(), len(s.Edges()))
	}
	core, _ := s.Node("Core")
	if core.Colour != netgraph.Red || core.Shape != netgraph.ShapeBox {
		t.Errorf("Core = %s/%s, want Red/box", core.Colour, core.Shape)
	}

	if _, err := env.run(t, "import", "pjson", pjson); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("import over a non-empty graph = %v, want INVALID_INPUT", err)
	}
	env.mustRun(t, "import", "pjson", "--force", pjson)
	if got := env.load(t).NodeNames(); !slices.Equal(got, []string{"X"}) {
		t.Errorf("pjson import: %v", got)
	}
}

func TestRenderDOT(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "node", "add", "A", "--colour", "navy")
	env.mustRun(t, "node", "add", "B")
	env.mustRun(t, "link", "add", "A", "B", "msg")

	out := filepath.Join(env.dir, "out", "diagram")
	env.mustRun(t, "render", "-F", "dot", "-o", out)

	data, err := os.ReadFile(out + ".dot")
	if err != nil {
		t.Fatalf("read rendered DOT: %v", err)
	}
	for _, want := range []string{"graph G", "--", `tooltip="msg"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("DOT missing %q:\n%s", want, data)
		}
	}

	if _, err := env.run(t, "render", "-F", "gif"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad format error = %v, want INVALID_INPUT", err)
	}
	if _, err := env.run(t, "render", "-F", "dot", "-e", "spring"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad engine error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderMissingGraph(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "render", "-F", "dot"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("render without a graph = %v, want FILE_NOT_FOUND", err)
	}
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[defaults]\ncolour = \"Gold\"\nshape = \"star\"\n\n[cache]\nbackend = \"none\"\n")

	out := env.mustRun(t, "config", "show")
	if !strings.Contains(out, `colour = "Gold"`) {
		t.Errorf("config show output:\n%s", out)
	}
	if out := env.mustRun(t, "config", "path"); strings.TrimSpace(out) != env.config {
		t.Errorf("config path = %q, want %q", out, env.config)
	}

	// New nodes pick up the configured defaults.
	env.mustRun(t, "node", "add", "N")
	n, _ := env.load(t).Node("N")
	if n.Colour != netgraph.Gold || n.Shape != netgraph.ShapeStar {
		t.Errorf("N = %s/%s, want Gold/star", n.Colour, n.Shape)
	}

	env.writeConfig(t, "[render]\nengine = \"spring\"\n")
	if _, err := env.run(t, "list"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid config error = %v, want INVALID_INPUT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "")

	out := env.mustRun(t, "cache", "path")
	if want := filepath.Join(env.dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
	env.mustRun(t, "cache", "clear")

	env.writeConfig(t, "[cache]\nbackend = \"redis\"\nredis_addr = \"cache.internal:6380\"\n")
	if out := env.mustRun(t, "cache", "path"); strings.TrimSpace(out) != "redis://cache.internal:6380" {
		t.Errorf("cache path = %q, want the redis address", out)
	}
}

func TestCompletion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "completion", "bash")
	if !strings.Contains(out, appName) {
		t.Error("bash completion script should mention the program name")
	}
}

func TestCompleteNodeNames(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "node", "add", "Router")
	env.mustRun(t, "node", "add", "Repeater")
	env.mustRun(t, "node", "add", "Switch")

	c := New(io.Discard, LogInfo)
	c.graphFile = env.graph

	got, _ := c.completeNodeNames(2)(nil, nil, "R")
	if !slices.Equal(got, []string{"Repeater", "Router"}) {
		t.Errorf("completion for R = %v", got)
	}
	if got, _ := c.completeNodeNames(1)(nil, []string{"Router"}, ""); got != nil {
		t.Errorf("completion past max args = %v, want nil", got)
	}
}
