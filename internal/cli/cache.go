package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears whichever
// cache the config selects.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached render artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := c.newCache(cmd.Context())
			defer rc.Close()

			var (
				count int
				where string
				err   error
			)
			switch rc := rc.(type) {
			case *cache.FileCache:
				count, err = rc.Clear()
				where = "Directory: " + rc.Dir()
			case *cache.RedisCache:
				count, err = rc.Clear(cmd.Context())
				where = "Redis: " + c.cfg.Cache.RedisAddr
			default:
				printInfo("Caching is disabled")
				return nil
			}
			if err != nil {
				return err
			}

			if count == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached entries", count)
			}
			printDetail("%s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where rendered artifacts are cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.cfg.Cache.Backend {
			case "none":
				printInfo("Caching is disabled")
				return nil
			case "redis":
				fmt.Fprintln(cmd.OutOrStdout(), "redis://"+c.cfg.Cache.RedisAddr)
				return nil
			}
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
