package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/netgraph"
	"github.com/matzehuels/netgraph/pkg/session"
)

// nodeCommand creates the node management command.
func (c *CLI) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add, change, delete and show nodes",
	}

	cmd.AddCommand(c.nodeAddCommand())
	cmd.AddCommand(c.nodeRenameCommand())
	cmd.AddCommand(c.nodeEditCommand())
	cmd.AddCommand(c.nodeDeleteCommand())
	cmd.AddCommand(c.nodeShowCommand())

	return cmd
}

// nodeOpts holds the styling flags shared by "node add" and "node edit".
type nodeOpts struct {
	colour string
	shape  string
	notes  string
}

func (o *nodeOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.colour, "colour", "c", "", "fill colour: "+strings.Join(colourNames(), ", "))
	cmd.Flags().StringVarP(&o.shape, "shape", "s", "", "outline shape: "+strings.Join(shapeNames(), ", "))
	cmd.Flags().StringVarP(&o.notes, "notes", "n", "", "free text shown in the tooltip")
	_ = cmd.RegisterFlagCompletionFunc("colour", fixedCompletion(colourNames()))
	_ = cmd.RegisterFlagCompletionFunc("shape", fixedCompletion(shapeNames()))
}

func (c *CLI) nodeAddCommand() *cobra.Command {
	var opts nodeOpts
	var from, message string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := session.NodeSpec{
				Name:       args[0],
				Colour:     c.cfg.Colour(),
				Shape:      c.cfg.Shape(),
				Notes:      opts.notes,
				LinkedFrom: from,
				Message:    message,
			}
			if err := parseStyle(opts, &spec.Colour, &spec.Shape); err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ctx context.Context, s *session.Session) error {
				if err := s.AddNode(ctx, spec); err != nil {
					return err
				}
				printSuccess("Added node %s", StyleHighlight.Render(strings.TrimSpace(spec.Name)))
				if from != "" {
					printDetail("linked from %s", from)
				}
				return nil
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "existing node to link to the new one")
	_ = cmd.RegisterFlagCompletionFunc("from", c.completeNodeNames(-1))
	cmd.Flags().StringVarP(&message, "message", "m", "", "message of the --from link")

	return cmd
}

func (c *CLI) nodeRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rename OLD NEW",
		Short:             "Rename a node",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNodeNames(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ctx context.Context, s *session.Session) error {
				if err := s.RenameNode(ctx, args[0], args[1]); err != nil {
					return err
				}
				printSuccess("Renamed %s %s %s", args[0], iconArrow, StyleHighlight.Render(strings.TrimSpace(args[1])))
				return nil
			})
		},
	}
}

func (c *CLI) nodeEditCommand() *cobra.Command {
	var opts nodeOpts

	cmd := &cobra.Command{
		Use:               "edit NAME",
		Short:             "Change a node's colour, shape or notes",
		Long:              `Change a node's colour, shape or notes. Attributes without a flag keep their current value.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodeNames(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ctx context.Context, s *session.Session) error {
				n, err := s.Store.Node(args[0])
				if err != nil {
					return err
				}
				colour, shape, notes := n.Colour, n.Shape, n.Notes
				if err := parseStyle(opts, &colour, &shape); err != nil {
					return err
				}
				if cmd.Flags().Changed("notes") {
					notes = opts.notes
				}
				if err := s.EditNode(ctx, n.Name, colour, shape, notes); err != nil {
					return err
				}
				printSuccess("Updated node %s", StyleHighlight.Render(n.Name))
				return nil
			})
		},
	}

	opts.register(cmd)

	return cmd
}

func (c *CLI) nodeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete NAME",
		Aliases:           []string{"rm"},
		Short:             "Delete a node and its links",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodeNames(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ctx context.Context, s *session.Session) error {
				if err := s.DeleteNode(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted node %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) nodeShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show NAME",
		Short:             "Show a node and its links",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodeNames(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeAll, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeAll()

			out, err := formatNode(s.Store, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// edit opens a session on the graph file and runs fn against it.
func (c *CLI) edit(ctx context.Context, fn func(context.Context, *session.Session) error) error {
	s, closeAll, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer closeAll()
	return fn(ctx, s)
}

// parseStyle overrides colour and shape with the flag values that are set.
func parseStyle(opts nodeOpts, colour *netgraph.Colour, shape *netgraph.Shape) error {
	if opts.colour != "" {
		c, err := netgraph.ParseColour(opts.colour)
		if err != nil {
			return err
		}
		*colour = c
	}
	if opts.shape != "" {
		s, err := netgraph.ParseShape(opts.shape)
		if err != nil {
			return err
		}
		*shape = s
	}
	return nil
}

// formatNode renders a node's attributes and every link touching it.
func formatNode(s *netgraph.Store, name string) (string, error) {
	n, err := s.Node(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(n.Name) + "\n")
	b.WriteString(formatKeyValue("colour", swatch(n.Colour)+" "+string(n.Colour)) + "\n")
	b.WriteString(formatKeyValue("shape", string(n.Shape)) + "\n")
	if n.Notes != "" {
		b.WriteString(formatKeyValue("notes", n.Notes) + "\n")
	}
	b.WriteString(formatKeyValue("id", StyleDim.Render(n.ID)) + "\n")

	for _, e := range s.Edges() {
		var other string
		switch n.Name {
		case e.From:
			other = e.To
		case e.To:
			other = e.From
		default:
			continue
		}
		line := "  " + StyleDim.Render(iconLink) + " " + StyleHighlight.Render(other)
		if e.Message != "" {
			line += " " + StyleDim.Render(e.Message)
		}
		b.WriteString(line + "\n")
	}
	return b.String(), nil
}

func colourNames() []string {
	names := make([]string, 0, len(netgraph.Colours()))
	for _, c := range netgraph.Colours() {
		names = append(names, string(c))
	}
	return names
}

func shapeNames() []string {
	names := make([]string, 0, len(netgraph.Shapes()))
	for _, s := range netgraph.Shapes() {
		names = append(names, string(s))
	}
	return names
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
