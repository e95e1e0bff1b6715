// Package layered provides the edge-classified undirected graph built from an
// L1 connectivity source and an L2 category source.
//
// # Edge Classes
//
// Every edge belongs to exactly one of three classes:
//
//   - [Structural] ("black"): a connection listed explicitly in File A.
//   - [Induced] ("red"): synthesized because the categories of the two nodes
//     are connected in File B.
//   - [SameCategory] ("blue", dotted): synthesized because the two nodes share
//     a category code.
//
// At most one edge exists per unordered node pair. When several classes
// apply to the same pair, the highest-precedence one wins:
// Structural > Induced > SameCategory. [Assemble] enforces this by inserting
// classes in precedence order and never replacing an edge that is already
// present.
//
// # Assembly
//
//	in := layered.FromSources(nodeSrc, categorySrc)
//	g, report, err := layered.Assemble(in, layered.WithGroupLimit(100))
//
// Same-category expansion is quadratic in group size. Groups larger than the
// configured limit are exempt from it and listed in [Report.ExemptGroups].
//
// # Concurrency
//
// A [Graph] is immutable once returned by [Assemble] or [Restore] and is safe
// for concurrent reads.
package layered
