// Package pathfind searches an assembled [layered.Graph] for routes between
// two nodes under two policies.
//
// [Structural] enumerates every shortest path that uses Structural edges
// only. [Augmented] enumerates simple paths over all edge classes in
// non-decreasing weight order and keeps the ones that use at least one
// Induced or SameCategory edge.
//
// Both searches are backed by lazy sequences ([StructuralSeq],
// [ShortestSimplePaths], [AugmentedSeq]). Each call creates a fresh
// generator; a consumer that stops ranging releases all of its state.
//
//	structural, err := pathfind.Structural(g, 0, 25, 10)
//	allowed := pathfind.AllowedFromPaths(structural)
//	augmented, err := pathfind.Augmented(g, allowed, 0, 25, 10)
//
// An empty search result is reported as an error with code NO_PATH_FOUND.
// Callers treat it as a displayable outcome, not a failure.
package pathfind
