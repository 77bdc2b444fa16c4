package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.Limit != 100 || cfg.Render.Engine != "neato" {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	text := `
[defaults]
colour = "navy"

[history]
limit = 20

[render]
engine = "dot"
formats = ["svg", "png"]

[cache]
backend = "none"
`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Colour() != netgraph.Navy || cfg.Shape() != netgraph.ShapeDot {
		t.Errorf("defaults = %s/%s", cfg.Colour(), cfg.Shape())
	}
	if cfg.History.Limit != 20 || cfg.Render.Engine != "dot" || len(cfg.Render.Formats) != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Render.Background != "#222222" {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Cache.Backend != "none" || cfg.Cache.TTL().Hours() != 168 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code errors.Code
	}{
		{"bad toml", "[history\nlimit = 1", errors.ErrCodeInvalidFormat},
		{"unknown key", "[history]\ndepth = 3", errors.ErrCodeInvalidInput},
		{"bad colour", "[defaults]\ncolour = \"beige\"", errors.ErrCodeInvalidInput},
		{"bad engine", "[render]\nengine = \"osage3d\"", errors.ErrCodeInvalidInput},
		{"bad format", "[render]\nformats = [\"gif\"]", errors.ErrCodeInvalidInput},
		{"no formats", "[render]\nformats = []", errors.ErrCodeInvalidInput},
		{"negative limit", "[history]\nlimit = -1", errors.ErrCodeInvalidInput},
		{"bad cache backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"redis without addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"\"", errors.ErrCodeInvalidInput},
		{"mongo bad uri", "[storage]\nbackend = \"mongo\"\nmongo_uri = \"http://x\"", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.text), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateNamesField(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTLHours = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "cache.TTLHours") {
		t.Errorf("Validate() = %v, want mention of cache.TTLHours", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse("[storage]\nbackend = \"mongo\"\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Storage.Backend != "mongo" || cfg.Storage.MongoDatabase != "netgraph" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	cfg, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse(Write()): %v", err)
	}
	if cfg.Render.Engine != "neato" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join("/tmp/xdg", "netgraph", "config.toml") {
		t.Errorf("Path() = %s", path)
	}
}
