package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/cache"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/render"
	"github.com/matzehuels/netgraph/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command. Unset
// flags fall back to the [render] section of the config file.
type renderOpts struct {
	formats string  // comma-separated output formats
	output  string  // output base path
	engine  string  // Graphviz layout engine
	labels  bool    // draw link messages as edge labels
	scale   float64 // PNG scale factor
	noCache bool    // bypass the render cache
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the graph as DOT, SVG, HTML, PNG or PDF",
		Long: `Render the graph file with Graphviz.

Artifacts are written to the output base path with the format as extension,
for example graph.svg and graph.html next to graph.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := c.mergeRenderOpts(cmd, opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd, ro, opts.noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "F", "", "output format(s): "+strings.Join(render.Formats(), ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: graph file without extension)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "layout engine: "+strings.Join(nodelink.Engines(), ", "))
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw link messages as edge labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	_ = cmd.RegisterFlagCompletionFunc("engine", fixedCompletion(nodelink.Engines()))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(render.Formats()))

	return cmd
}

// mergeRenderOpts layers the flags that were set over the config defaults.
func (c *CLI) mergeRenderOpts(cmd *cobra.Command, opts renderOpts) (render.Options, error) {
	ro := c.renderOptions()
	ro.Scale = opts.scale

	if opts.formats != "" {
		formats, err := render.ParseFormats(opts.formats)
		if err != nil {
			return ro, err
		}
		ro.Formats = formats
	}
	if opts.output != "" {
		ro.Output = opts.output
	}
	if opts.engine != "" {
		if !slices.Contains(nodelink.Engines(), opts.engine) {
			return ro, errors.New(errors.ErrCodeInvalidInput, "invalid engine: %s (must be one of: %s)", opts.engine, strings.Join(nodelink.Engines(), ", "))
		}
		ro.Engine = opts.engine
	}
	if cmd.Flags().Changed("labels") {
		ro.Labels = opts.labels
	}
	return ro, nil
}

func (c *CLI) runRender(cmd *cobra.Command, ro render.Options, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	backend, name, err := c.newBackend(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	s, err := backend.Load(ctx, name)
	if err != nil {
		return err
	}

	rc := cache.NewNullCache()
	if !noCache {
		rc = c.newCache(ctx)
	}
	defer rc.Close()
	r := render.NewRenderer(ro, rc, logger)

	prog := newProgress(logger)
	spin := newSpinner(ctx, "Rendering "+strings.Join(ro.Formats, ", ")+"...")
	spin.Start()
	err = r.Render(ctx, s)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()
	prog.done("Rendered graph", "formats", len(ro.Formats))

	printSuccess("Rendered %s", name)
	printDetail("%s", formatStats(s))
	for _, f := range r.Options().Formats {
		printFile(r.Path(f))
	}
	return nil
}
