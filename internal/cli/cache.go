package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconsvg/pkg/cache"
	"github.com/matzehuels/iconsvg/pkg/config"
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

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached renders from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend := c.config.Cache.Backend

			if backend == config.BackendFile {
				dir, err := c.cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
			}

			store, err := c.newCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := clearCache(ctx, store)
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", backend)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// clearCache empties any backend that supports it.
func clearCache(ctx context.Context, store cache.Cache) (int, error) {
	switch s := store.(type) {
	case *cache.FileCache:
		return s.Clear()
	case interface {
		Clear(context.Context) (int, error)
	}:
		return s.Clear(ctx)
	case *cache.NullCache:
		return 0, nil
	default:
		return 0, fmt.Errorf("cache backend %T cannot be cleared", store)
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if c.config.Cache.Backend != config.BackendFile {
				printWarning("Configured backend is %s; the file cache is unused", c.config.Cache.Backend)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
