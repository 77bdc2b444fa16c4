package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/session"
)

// linkCommand creates the link management command. Links are undirected:
// every subcommand finds the link between A and B whichever node holds it.
func (c *CLI) linkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Add, change, remove and show links",
	}

	cmd.AddCommand(c.linkAddCommand())
	cmd.AddCommand(c.linkEditCommand())
	cmd.AddCommand(c.linkRemoveCommand())
	cmd.AddCommand(c.linkShowCommand())

	return cmd
}

func (c *CLI) linkAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "add A B [MESSAGE]",
		Short:             "Link two nodes",
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: c.completeNodeNames(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := ""
			if len(args) == 3 {
				message = args[2]
			}
			return c.edit(cmd.Context(), func(ctx context.Context, s *session.Session) error {
				if err := s.AddLink(ctx, args[0], args[1], message); err != nil {
					return err
				}
				printSuccess("Linked %s %s %s", args[0], iconLink, args[1])
				return nil
			})
		},
	}
}

func (c *CLI) linkEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "edit A B MESSAGE",
		Short:             "Change a link's message",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeNodeNames(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ctx context.Context, s *session.Session) error {
				if err := s.EditLink(ctx, args[0], args[1], args[2]); err != nil {
					return err
				}
				printSuccess("Updated link %s %s %s", args[0], iconLink, args[1])
				return nil
			})
		},
	}
}

func (c *CLI) linkRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "remove A B",
		Aliases:           []string{"rm"},
		Short:             "Remove the link between two nodes",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNodeNames(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ctx context.Context, s *session.Session) error {
				if err := s.RemoveLink(ctx, args[0], args[1]); err != nil {
					return err
				}
				printSuccess("Unlinked %s %s %s", args[0], iconLink, args[1])
				return nil
			})
		},
	}
}

func (c *CLI) linkShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show A B",
		Short:             "Show the link between two nodes",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNodeNames(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeAll, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeAll()

			l, err := s.Store.Link(args[0], args[1])
			if err != nil {
				return err
			}
			var b strings.Builder
			b.WriteString(StyleTitle.Render(args[0]+" "+iconLink+" "+args[1]) + "\n")
			if l.Message != "" {
				b.WriteString(formatKeyValue("message", l.Message) + "\n")
			}
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
}
