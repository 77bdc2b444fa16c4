package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/errors"
	graphio "github.com/matzehuels/netgraph/pkg/io"
	"github.com/matzehuels/netgraph/pkg/netgraph"
	"github.com/matzehuels/netgraph/pkg/session"
)

// importCommand creates the import command. Imports replace the whole graph
// as one edit, so they are saved and rendered like any other change.
func (c *CLI) importCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build the graph from CSV tables or a legacy pickled-JSON dump",
	}

	cmd.PersistentFlags().BoolVar(&force, "force", false, "replace a graph that already has nodes")

	cmd.AddCommand(&cobra.Command{
		Use:   "csv AREAS NETWORK",
		Short: "Import an areas table and a network table",
		Long: `Import a graph from two CSV tables.

The areas table styles nodes by name (columns: Area, Colour, Shape); a
DEFAULT row styles every other node. The network table lists one link per
row (columns: From, To, Gate Info).
Rows naming the same pair of nodes twice are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), force, func() (*netgraph.Store, error) {
				areas, err := os.Open(args[0])
				if err != nil {
					return nil, err
				}
				defer areas.Close()
				network, err := os.Open(args[1])
				if err != nil {
					return nil, err
				}
				defer network.Close()

				s, skipped, err := graphio.ImportCSV(areas, network)
				if skipped > 0 {
					printWarning("Skipped %s", plural(skipped, "duplicate row"))
				}
				return s, err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pjson FILE",
		Short: "Import a pickled-JSON graph dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), force, func() (*netgraph.Store, error) {
				f, err := os.Open(args[0])
				if err != nil {
					return nil, err
				}
				defer f.Close()
				return graphio.ImportPickle(f)
			})
		},
	})

	return cmd
}

func (c *CLI) runImport(ctx context.Context, force bool, load func() (*netgraph.Store, error)) error {
	prog := newProgress(loggerFromContext(ctx))
	imported, err := load()
	if err != nil {
		return err
	}

	return c.edit(ctx, func(ctx context.Context, s *session.Session) error {
		if s.Store.Len() > 0 && !force {
			return errors.New(errors.ErrCodeInvalidInput, "%s already has %s (use --force to replace it)", c.graphFile, plural(s.Store.Len(), "node"))
		}
		if err := s.SetGraph(ctx, imported); err != nil {
			return err
		}
		prog.done("Imported graph", "nodes", s.Store.Len())
		printSuccess("Imported %s into %s", formatStats(s.Store), c.graphFile)
		return nil
	})
}
