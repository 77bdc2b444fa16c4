// Package config loads netgraph's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/netgraph/config.toml (by default
// ~/.config/netgraph/config.toml). A missing file means all defaults; keys
// missing from the file keep their defaults too:
//
//	[defaults]
//	colour = "White"
//	shape = "dot"
//
//	[history]
//	limit = 100
//
//	[render]
//	engine = "neato"
//	formats = ["html"]
//	labels = false
//	background = "#222222"
//
//	[cache]
//	backend = "file"        # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl_hours = 168
//
//	[storage]
//	backend = "file"        # file | mongo
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "netgraph"
//	mongo_collection = "graphs"
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

const appName = "netgraph"

// Config is the full configuration file.
type Config struct {
	Defaults Defaults `toml:"defaults"`
	History  History  `toml:"history"`
	Render   Render   `toml:"render"`
	Cache    Cache    `toml:"cache"`
	Storage  Storage  `toml:"storage"`
}

// Defaults styles nodes created without an explicit colour or shape.
type Defaults struct {
	Colour string `toml:"colour" validate:"required,colour"`
	Shape  string `toml:"shape" validate:"required,shape"`
}

// History bounds the undo and redo stacks.
type History struct {
	Limit int `toml:"limit" validate:"min=0,max=10000"`
}

// Render configures diagram output.
type Render struct {
	Engine     string   `toml:"engine" validate:"oneof=dot neato fdp circo twopi sfdp"`
	Formats    []string `toml:"formats" validate:"min=1,dive,oneof=dot svg html png pdf"`
	Labels     bool     `toml:"labels"`
	Background string   `toml:"background" validate:"required"`
}

// Cache selects where rendered artifacts are cached.
type Cache struct {
	Backend   string `toml:"backend" validate:"oneof=file redis none"`
	RedisAddr string `toml:"redis_addr" validate:"required_if=Backend redis,omitempty,hostname_port"`
	TTLHours  int    `toml:"ttl_hours" validate:"min=1"`
}

// TTL returns the cache lifetime.
func (c Cache) TTL() time.Duration { return time.Duration(c.TTLHours) * time.Hour }

// Storage selects where graphs are saved.
type Storage struct {
	Backend         string `toml:"backend" validate:"oneof=file mongo"`
	MongoURI        string `toml:"mongo_uri" validate:"required_if=Backend mongo,omitempty,startswith=mongodb"`
	MongoDatabase   string `toml:"mongo_database" validate:"required_if=Backend mongo"`
	MongoCollection string `toml:"mongo_collection" validate:"required_if=Backend mongo"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{Colour: string(netgraph.DefaultColour), Shape: string(netgraph.DefaultShape)},
		History:  History{Limit: 100},
		Render: Render{
			Engine:     "neato",
			Formats:    []string{"html"},
			Background: "#222222",
		},
		Cache: Cache{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			TTLHours:  168,
		},
		Storage: Storage{
			Backend:         "file",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   appName,
			MongoCollection: "graphs",
		},
	}
}

// Path returns the default config file path following the XDG convention.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default]. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML text on top of [Default] and validates it.
func Parse(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	return cfg, cfg.Validate()
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Colour returns the default node colour.
func (c Config) Colour() netgraph.Colour {
	col, err := netgraph.ParseColour(c.Defaults.Colour)
	if err != nil {
		return netgraph.DefaultColour
	}
	return col
}

// Shape returns the default node shape.
func (c Config) Shape() netgraph.Shape {
	sh, err := netgraph.ParseShape(c.Defaults.Shape)
	if err != nil {
		return netgraph.DefaultShape
	}
	return sh
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("colour", func(fl validator.FieldLevel) bool {
		_, err := netgraph.ParseColour(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("shape", func(fl validator.FieldLevel) bool {
		_, err := netgraph.ParseShape(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks every field against its constraints and reports all
// violations in one INVALID_INPUT error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInternal, err, "validate config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q (value %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value())
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid config: %s", strings.Join(msgs, "; "))
}

// configKey turns a validator namespace like "Config.Cache.TTLHours" into
// the section and Go field name, "cache.TTLHours".
func configKey(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	parts[0] = strings.ToLower(parts[0])
	return strings.Join(parts, ".")
}
