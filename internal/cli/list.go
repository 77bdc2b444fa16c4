package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

func (c *CLI) listCommand() *cobra.Command {
	var links bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the nodes (or links) of the graph",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeAll, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeAll()

			if s.Store.Len() == 0 {
				printInfo("Graph is empty")
				printNextStep("Add a node", appName+" node add NAME")
				return nil
			}
			if links {
				fmt.Fprintln(cmd.OutOrStdout(), linkTable(s.Store, -1))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), nodeTable(s.Store, -1))
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render(formatStats(s.Store)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&links, "links", "l", false, "list links instead of nodes")

	return cmd
}

// nodeTable renders every node, sorted by name. The row at index selected is
// highlighted; pass -1 for none.
func nodeTable(s *netgraph.Store, selected int) string {
	nodes := s.Nodes()
	degree := make(map[string]int, len(nodes))
	for _, e := range s.Edges() {
		degree[e.From]++
		if e.To != e.From {
			degree[e.To]++
		}
	}

	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		rows[i] = []string{
			swatch(n.Colour) + " " + n.Name,
			string(n.Colour),
			string(n.Shape),
			fmt.Sprint(degree[n.Name]),
			n.Notes,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Node", "Colour", "Shape", "Links", "Notes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == headerRow:
				return base.Inherit(styleHeader)
			case row == selected:
				return base.Foreground(colorAccent).Bold(true)
			case col == 0:
				return base.Foreground(colorBright)
			}
			return base.Foreground(colorLabel)
		}).
		Render()
}

// linkTable renders every link as a row; see nodeTable for selected.
func linkTable(s *netgraph.Store, selected int) string {
	edges := s.Edges()
	rows := make([][]string, len(edges))
	for i, e := range edges {
		rows[i] = []string{e.From, e.To, e.Message}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("From", "To", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == headerRow:
				return base.Inherit(styleHeader)
			case row == selected:
				return base.Foreground(colorAccent).Bold(true)
			}
			return base.Foreground(colorLabel)
		}).
		Render()
}
