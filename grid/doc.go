// Package grid holds the immutable cost grid that the run-constrained search
// walks over.
//
// What:
//
//   - Grid wraps a rectangular matrix of non-negative uint32 traversal costs.
//   - Coordinate is a comparable (x,y) value: x across columns, y down rows.
//   - Parse decodes puzzle-style text (one row per line) into a Grid.
//
// Why:
//
//   - A Grid is built once and then only read, so one instance may be shared
//     by any number of concurrent searches without locking.
//
// Complexity:
//
//   - New, Parse:       O(W×H) time and memory.
//   - Cost, Lookup:     O(1).
//   - Border:           O(W+H).
//
// Errors:
//
//   - ErrMalformedGrid: no rows, empty rows, ragged rows or an undecodable cell.
//   - ErrOutOfBounds:   a coordinate outside [0,W)×[0,H).
package grid
