// Package cli implements the layerroute command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layerroute/pkg/buildinfo"
	"github.com/matzehuels/layerroute/pkg/cache"
	"github.com/matzehuels/layerroute/pkg/config"
	"github.com/matzehuels/layerroute/pkg/observability"
	"github.com/matzehuels/layerroute/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "layerroute"

	// defaultEdgeList is the file the edges command writes by default.
	defaultEdgeList = "all_edges.txt"
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

	configPath  string
	metricsFile string
	config      *config.Config
	metrics     *observability.PrometheusHooks
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "layerroute compares structural and category-augmented paths in layered graphs",
		Long: `layerroute builds a graph from a node file (L1+L2) and a category file (L2),
then compares the shortest structural (L1) paths between two nodes with the
cheapest paths that also use category (L2) relationships.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/layerroute/config.toml)")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.edgesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and installs metrics hooks.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	if c.metricsFile != "" && c.metrics == nil {
		c.metrics = observability.NewPrometheusHooks()
		observability.SetPipelineHooks(c.metrics)
		observability.SetCacheHooks(c.metrics)
	}
	return nil
}

func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("wrote metrics", "file", c.metricsFile)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f *sourceFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the snapshot backend: none with --no-cache, the explicit
// file with --cache, Redis when configured, else the cache directory.
func (c *CLI) newCache(ctx context.Context, f *sourceFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.cachePath != "":
		return cache.NewFileCacheAt(f.cachePath)
	case c.config.Cache.RedisURL != "":
		return cache.NewRedisCache(ctx, c.config.Cache.RedisURL, c.config.Cache.Namespace)
	default:
		return cache.NewFileCache(c.cacheDir())
	}
}

// cacheDir returns the configured cache directory, defaulting to the working
// directory so snapshots sit next to the source files they were built from.
func (c *CLI) cacheDir() string {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir
	}
	return "."
}

// buildOptions converts source flags and config into pipeline options.
func (c *CLI) buildOptions(f *sourceFlags) pipeline.BuildOptions {
	return pipeline.BuildOptions{
		NodesPath:      f.nodes,
		CategoriesPath: f.categories,
		Weights:        c.config.Weights,
		GroupLimit:     c.config.Assembly.GroupLimit,
		Force:          f.force,
		Logger:         c.Logger,
	}
}

// =============================================================================
// Source Flags
// =============================================================================

// sourceFlags are shared by every command that needs the assembled graph.
type sourceFlags struct {
	nodes      string // File A: nodes and L1 edges
	categories string // File B: categories and L2 edges
	cachePath  string // explicit snapshot file
	force      bool   // rebuild even if a snapshot exists
	noCache    bool   // neither read nor write snapshots
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nodes, "l1l2", "", "node file with L1 and L2 columns (required)")
	cmd.Flags().StringVar(&f.categories, "l2", "", "category file with L2 relationships (required)")
	cmd.Flags().StringVarP(&f.cachePath, "cache", "c", "", "snapshot file (default: <prefix>_graph.cache in the cache directory)")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "rebuild the graph even if a snapshot exists")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable snapshot caching")
	_ = cmd.MarkFlagRequired("l1l2")
	_ = cmd.MarkFlagRequired("l2")
	_ = cmd.MarkFlagFilename("l1l2", "txt")
	_ = cmd.MarkFlagFilename("l2", "txt")
	cmd.MarkFlagsMutuallyExclusive("cache", "no-cache")
}
