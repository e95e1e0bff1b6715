// Package source parses the two hierarchical text databases that describe a
// facility layout.
//
// # File A: node/edge definitions (L1-L2)
//
// The first token of the first line is the node count N. The next N lines
// each describe one node:
//
//	0 ... L1  | pump|inlet L2  | P-01 # ...
//
// The segment between the "L1 |" marker and the "L2 |" marker is the
// structural label (pipe characters become line breaks). The segment
// between "L2 |" and the next "#" is the category code. Whitespace between
// the level tag and the pipe is free.
//
// A later line containing "# number of l1 edges" (any case) starts the edge
// section. Every following line whose first two tokens are integers is a
// structural edge.
//
// # File B: category definitions (L2)
//
// The first token of the first line is the category count M. The next M
// lines each begin with a category id and carry the category code between
// "encode_level: 2 |" and "Connected". A later "# number of l2 edges" line
// starts the category-edge section.
//
// # Errors
//
// A missing count line, missing record, missing delimiter or missing section
// marker is reported as an [errors.ErrCodeMalformedSource] error naming the
// file and line. Such errors are fatal: a partially parsed source cannot be
// assembled into a graph. Lines in an edge section that look like edges but
// cannot be read are collected as [Warning] values instead.
//
// [errors.ErrCodeMalformedSource]: github.com/matzehuels/layerroute/pkg/errors
package source
