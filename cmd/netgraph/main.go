// Command netgraph edits labelled network graphs from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/internal/cli"
	ngerrors "github.com/matzehuels/netgraph/pkg/errors"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitInterrupt = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line in args and returns the process exit code.
// Errors are printed to stderr.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	err := execute(ctx, args, stderr)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	}
	fmt.Fprintln(stderr, cli.StyleError.Render("✗ "+describe(err)))
	return exitFailure
}

// describe hides wrapped causes of graph errors; the code and message are
// what a user can act on.
func describe(err error) string {
	if ngerrors.IsModelError(err) {
		return ngerrors.UserMessage(err)
	}
	return err.Error()
}

func execute(ctx context.Context, args []string, stderr io.Writer) error {
	c := cli.New(stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(stderr)
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, a []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if setup == nil {
			return nil
		}
		return setup(cmd, a)
	}

	return root.ExecuteContext(ctx)
}
