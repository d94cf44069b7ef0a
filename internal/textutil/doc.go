// Package textutil provides the case folding and word classification shared by
// the corpus loader and the matching engine.
//
// All case-insensitive comparisons in the module go through Fold so that a
// response text folded once at load time compares equal to a query folded at
// search time.
package textutil
