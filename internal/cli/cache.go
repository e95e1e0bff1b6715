package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerroute/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage stored graph snapshots",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [prefix...]",
		Short: "Remove graph snapshots",
		Long: `Clear removes every snapshot from the configured backend, or only the
snapshots of the given dataset prefixes (e.g. 1050400).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(cmd.Context(), &sourceFlags{})
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) > 0 {
				keyer := cache.NewDefaultKeyer()
				for _, prefix := range args {
					key := keyer.GraphKey(prefix)
					if err := store.Delete(cmd.Context(), key); err != nil {
						return fmt.Errorf("delete %s: %w", key, err)
					}
					printSuccess("Removed snapshot %s", StyleHighlight.Render(key))
				}
				return nil
			}

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %T cannot be cleared", store)
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d snapshots", n)
			printDetail("Location: %s", cacheLocation(store))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where snapshots are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(cmd.Context(), &sourceFlags{})
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintln(stdout, cacheLocation(store))
			return nil
		},
	}
}

// cacheLocation describes where store keeps its entries.
func cacheLocation(store cache.Cache) string {
	switch s := store.(type) {
	case *cache.FileCache:
		return s.Dir()
	case *cache.RedisCache:
		return "redis " + s.Namespace() + "*"
	default:
		return fmt.Sprint(store)
	}
}
