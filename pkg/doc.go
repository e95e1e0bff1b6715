// Package pkg provides the core libraries for layerroute path comparison.
//
// # Overview
//
// layerroute reads a two-layer dataset (nodes with a structural L1 label and
// an L2 category code, plus L1 edges in one file and L2 category edges in
// another), assembles an edge-classified undirected graph and compares the
// shortest paths that use only structural edges with the cheapest paths that
// may also use category relationships. The pkg directory is organized as:
//
//  1. [source] - Parsers for the node file (L1+L2) and the category file (L2)
//  2. [layered] - The classified graph and its assembler
//  3. [pathfind] - Structural k-shortest and augmented weighted path search
//  4. [render] - Comparison view, path strings, edge lists and diagrams
//  5. [cache] - Graph snapshots on disk or in Redis
//  6. [pipeline] - Orchestration (build → search → render)
//
// # Architecture
//
// The typical data flow:
//
//	File A (nodes, L1 edges)   File B (categories, L2 edges)
//	         ↓                            ↓
//	    [source] package (parse records and edge lines)
//	         ↓
//	    [layered] package (structural, induced and same-category edges)
//	         ↓
//	    [pathfind] package (structural paths, then augmented paths)
//	         ↓
//	    [render] package (view, DOT, SVG/PDF/PNG)
//
// # Quick Start
//
//	nodes, _ := source.LoadNodeFile("1050400_L1-L2_DB.txt")
//	categories, _ := source.LoadCategoryFile("1050400_L2_DB.txt")
//	g, _, _ := layered.Assemble(layered.FromSources(nodes, categories))
//
//	structural, _ := pathfind.Structural(g, 0, 25, 10)
//	allowed := pathfind.AllowedFromPaths(structural)
//	augmented, _ := pathfind.Augmented(g, allowed, 0, 25, 10)
//
//	view := render.BuildView(g, 0, 25, structural, augmented)
//	dot := nodelink.ToDOT(view, nodelink.Options{})
//	svg, _ := nodelink.RenderSVG(ctx, dot)
//
// Most callers use [pipeline.Runner] instead, which adds snapshot caching,
// run-scoped logging and observability hooks.
//
// # Supporting Packages
//
// [graph] - JSON node-link serialization used by snapshots and exports.
//
// [config] - TOML settings with validation.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Pipeline and cache hooks with a Prometheus implementation.
//
// [buildinfo] - Version information set at link time.
//
// [source]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/source
// [layered]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/layered
// [pathfind]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/pathfind
// [render]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/pipeline#Runner
// [graph]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/graph
// [config]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/layerroute/pkg/buildinfo
package pkg
