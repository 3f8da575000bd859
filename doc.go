// Package stump implements a Utreexo-style cryptographic accumulator in
// stump mode: a compact, append-only forest of perfect binary trees
// summarized by a leaf count and a list of subtree root hashes. It
// supports inclusion proofs whose size is logarithmic in the size of the
// set, without ever materializing interior tree nodes.
//
// The hash primitive, the host application that supplies leaf hashes and
// proofs, and any persistence or serialization of the Stump are outside
// the scope of this package.
package stump
