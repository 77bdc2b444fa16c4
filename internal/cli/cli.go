// Package cli implements the netgraph command-line interface.
//
// The commands edit one graph at a time, addressed with --file (graph.json
// by default). Every mutating command opens a [session.Session] over the
// graph, applies one undoable edit, saves and re-renders. The edit command
// runs the same session inside an interactive terminal program.
//
// # Commands
//
//   - edit: interactive editor with undo (ctrl+z) and redo (ctrl+y)
//   - node, link, list: one-shot edits and queries
//   - render: write the diagram as DOT, SVG, HTML, PNG or PDF
//   - import: build a graph from CSV tables or a legacy pickled-JSON dump
//   - cache, config: inspect and reset local state
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// held on [CLI] and also attached to the command context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/buildinfo"
	"github.com/matzehuels/netgraph/pkg/config"
	"github.com/matzehuels/netgraph/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "netgraph"

	// defaultGraphFile is the graph edited when --file is not given.
	defaultGraphFile = "graph.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	graphFile  string
	configPath string
	noRender   bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		graphFile: defaultGraphFile,
		cfg:       config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "netgraph edits labelled network graphs",
		Long:         `netgraph edits small labelled graphs of named, coloured nodes joined by annotated links, with unlimited undo and a Graphviz diagram refreshed after every change.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.NewLogHooks(c.Logger).Install()
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.graphFile, "file", "f", c.graphFile, "graph file to edit")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/netgraph/config.toml)")
	root.PersistentFlags().BoolVar(&c.noRender, "no-render", false, "do not re-render the diagram after edits")

	// Register all subcommands
	root.AddCommand(c.editCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("no config path", "err", err)
			return nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/netgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
